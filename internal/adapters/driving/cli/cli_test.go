package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
	"github.com/veldt-labs/ragprep-cli/internal/core/ports/driving"
	"github.com/veldt-labs/ragprep-cli/internal/extractors"
)

// stubProcessor records the options it was called with and returns a
// canned report.
type stubProcessor struct {
	opts   driving.ProcessOptions
	report *domain.BatchReport
}

func (s *stubProcessor) ProcessBatch(_ context.Context, opts driving.ProcessOptions) (*domain.BatchReport, error) {
	s.opts = opts
	if s.report != nil {
		return s.report, nil
	}
	return &domain.BatchReport{}, nil
}

func (s *stubProcessor) ProcessFile(_ context.Context, path string, _ driving.ProcessOptions) domain.FileResult {
	return domain.FileResult{Path: path, Chunks: 1}
}

// memoryStore is an in-memory config store for tests.
type memoryStore struct {
	data map[string]any
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]any)}
}

func (m *memoryStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memoryStore) GetString(key string) string {
	if s, ok := m.data[key].(string); ok {
		return s
	}
	return ""
}

func (m *memoryStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (m *memoryStore) GetBool(key string) bool {
	b, _ := m.data[key].(bool)
	return b
}

func (m *memoryStore) GetFloat(key string) float64 {
	f, _ := m.data[key].(float64)
	return f
}

func (m *memoryStore) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

func (m *memoryStore) Save() error { return nil }

// setupTestServices installs stub services and returns a cleanup that
// restores the previous ones and resets flags.
func setupTestServices() (*stubProcessor, *memoryStore, func()) {
	prevProcessor := processorService
	prevRegistry := extractorRegistry
	prevStore := configStore

	processor := &stubProcessor{}
	store := newMemoryStore()
	SetServices(processor, extractors.Defaults(), store)

	return processor, store, func() {
		SetServices(prevProcessor, prevRegistry, prevStore)
		processInput = ""
		processOutput = ""
		processChunkSize = 0
		processEnrich = false
		processWatch = false
		processMaxKeywords = 0
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// Root Command Tests

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "ragprep", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "process")
	assert.Contains(t, names, "formats")
	assert.Contains(t, names, "config")
	assert.Contains(t, names, "version")
}

// Version Command Tests

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "ragprep version test-version-1.0.0")
}

// Formats Command Tests

func TestFormatsCmd_ListsExtensions(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "formats")

	require.NoError(t, err)
	assert.Contains(t, out, ".txt")
	assert.Contains(t, out, ".pdf")
	assert.Contains(t, out, ".docx")
	assert.Contains(t, out, ".pptx")
}

func TestFormatsCmd_NoRegistry(t *testing.T) {
	prev := extractorRegistry
	extractorRegistry = nil
	defer func() { extractorRegistry = prev }()

	_, err := execute(t, "formats")
	assert.Error(t, err)
}

// Process Command Tests

func TestProcessCmd_Use(t *testing.T) {
	assert.Equal(t, "process [file...]", processCmd.Use)
}

func TestProcessCmd_RequiresInputOrArgs(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "process", "--output", "out")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to process")
}

func TestProcessCmd_RequiresOutput(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "process", "--input", "in")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--output is required")
}

func TestProcessCmd_WatchRequiresInput(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "process", "--watch", "--output", "out", "file.txt")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--watch requires --input")
}

func TestProcessCmd_NoService(t *testing.T) {
	prev := processorService
	processorService = nil
	defer func() { processorService = prev }()

	_, err := execute(t, "process", "--input", "in", "--output", "out")
	assert.Error(t, err)
}

func TestProcessCmd_PassesOptions(t *testing.T) {
	processor, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "process",
		"--input", "indir",
		"--output", "outdir",
		"--chunk-size", "250",
		"--enrich",
		"--max-keywords", "3",
		"extra.txt")

	require.NoError(t, err)
	assert.Equal(t, "indir", processor.opts.InputDir)
	assert.Equal(t, "outdir", processor.opts.OutputDir)
	assert.Equal(t, 250, processor.opts.ChunkSize)
	assert.True(t, processor.opts.Enrich)
	assert.Equal(t, 3, processor.opts.MaxKeywords)
	assert.Equal(t, []string{"extra.txt"}, processor.opts.StagedFiles)
	assert.Contains(t, out, "Processed 0 of 0 files")
}

func TestProcessCmd_ChunkSizeFromConfig(t *testing.T) {
	processor, store, cleanup := setupTestServices()
	defer cleanup()

	require.NoError(t, store.Set("chunk_size", 750))

	_, err := execute(t, "process", "--input", "in", "--output", "out")

	require.NoError(t, err)
	assert.Equal(t, 750, processor.opts.ChunkSize)
}

func TestProcessCmd_ChunkSizeDefault(t *testing.T) {
	processor, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "process", "--input", "in", "--output", "out")

	require.NoError(t, err)
	assert.Equal(t, 500, processor.opts.ChunkSize)
}

func TestProcessCmd_ReportsFailures(t *testing.T) {
	processor, _, cleanup := setupTestServices()
	defer cleanup()

	processor.report = &domain.BatchReport{
		Results: []domain.FileResult{
			{Path: "good.txt", Chunks: 2, Artifacts: []string{"good_chunk1.txt", "good_chunk2.txt"}},
			{Path: "bad.csv", Err: &domain.StageError{
				Stage: domain.StageExtraction,
				Err:   domain.ErrUnsupportedFormat,
			}},
		},
	}

	out, err := execute(t, "process", "--input", "in", "--output", "out")

	assert.Error(t, err)
	assert.Contains(t, out, "Processed 1 of 2 files")
	assert.Contains(t, out, "bad.csv")
}

// Config Command Tests

func TestConfigCmd_SetAndGet(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "set", "chunk_size", "300")
	require.NoError(t, err)
	assert.Contains(t, out, "Set chunk_size = 300")

	out, err = execute(t, "config", "get", "chunk_size")
	require.NoError(t, err)
	assert.Contains(t, out, "chunk_size: 300")
}

func TestConfigCmd_GetUnset(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "get", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "missing: (not set)")
}

func TestConfigCmd_MasksAPIKey(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "set", "api_key", "pplx-supersecretvalue")
	require.NoError(t, err)
	assert.NotContains(t, out, "pplx-supersecretvalue")

	out, err = execute(t, "config", "get", "api_key")
	require.NoError(t, err)
	assert.NotContains(t, out, "pplx-supersecretvalue")
	assert.Contains(t, out, "pplx...alue")
}

func TestConfigCmd_NoStore(t *testing.T) {
	prev := configStore
	configStore = nil
	defer func() { configStore = prev }()

	_, err := execute(t, "config", "get", "anything")
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, int64(42), parseValue("42"))
	assert.Equal(t, 2.5, parseValue("2.5"))
	assert.Equal(t, "sonar", parseValue("sonar"))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", maskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}
