// Package perplexity provides a MetadataEnricher adapter using the
// Perplexity chat completions API.
package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
	"github.com/veldt-labs/ragprep-cli/internal/core/ports/driven"
)

// Ensure Enricher implements the interface.
var _ driven.MetadataEnricher = (*Enricher)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.perplexity.ai"
	DefaultModel   = "sonar"
	DefaultTimeout = 30 * time.Second

	// DefaultMaxPromptChars is the provider-imposed cap on chunk text
	// sent for enrichment. Longer chunks are truncated at the tail,
	// not summarized.
	DefaultMaxPromptChars = 4000
)

// systemPrompt is sent with every request.
const systemPrompt = "Be precise and concise."

// The three field prompts. Each field is obtained via an independent
// request so one failure cannot block the others.
const (
	summaryPrompt = "Summarize the following document chunk in 1-2 sentences:\n\n%s"
	keywordPrompt = "Extract 5-10 keywords or topics from the following document chunk:\n\n%s"
	sectionPrompt = "If this chunk is part of a chapter or section, provide the likely section or chapter title. If not, say 'None'.\n\n%s"
)

// Per-field response length caps, in tokens.
const (
	summaryMaxTokens = 128
	keywordMaxTokens = 64
	sectionMaxTokens = 32
)

// requestTemperature is the fixed low sampling temperature.
const requestTemperature = 0.2

// Config holds configuration for the Perplexity enricher. The API key
// is passed explicitly at construction; it is never read from global
// state here and must never appear in logs or output.
type Config struct {
	// APIKey is the bearer credential (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.perplexity.ai).
	BaseURL string

	// Model is the model to use (default: sonar).
	Model string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// MaxPromptChars caps the chunk text sent per request
	// (default: 4000).
	MaxPromptChars int
}

// Enricher obtains summary, keyword and section metadata for chunks
// from the Perplexity API. Requests are blocking network calls with a
// finite timeout and no automatic retry; retry and rate policy belong
// to the caller.
type Enricher struct {
	client         *http.Client
	baseURL        string
	apiKey         string
	model          string
	maxPromptChars int
}

// chatCompletionRequest is the chat completions request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the chat completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// New creates a new Perplexity enricher.
func New(cfg Config) (*Enricher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("perplexity: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxPromptChars == 0 {
		cfg.MaxPromptChars = DefaultMaxPromptChars
	}

	return &Enricher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		maxPromptChars: cfg.MaxPromptChars,
	}, nil
}

// Enrich requests the three metadata fields for a chunk. The requests
// are independent and issued concurrently; a failed request yields a
// descriptive error string as that field's value so the pipeline can
// continue and the failure reason survives in the output artifact.
// fullText is accepted as prompt context but not currently used.
func (e *Enricher) Enrich(ctx context.Context, chunkText, _ string) domain.EnrichedMetadata {
	cleaned := sanitize(truncate(chunkText, e.maxPromptChars))

	requests := []struct {
		prompt    string
		maxTokens int
		dest      *string
	}{
		{summaryPrompt, summaryMaxTokens, nil},
		{keywordPrompt, keywordMaxTokens, nil},
		{sectionPrompt, sectionMaxTokens, nil},
	}

	var meta domain.EnrichedMetadata
	requests[0].dest = &meta.Summary
	requests[1].dest = &meta.Keywords
	requests[2].dest = &meta.Section

	var wg sync.WaitGroup
	for _, r := range requests {
		wg.Add(1)
		go func(prompt string, maxTokens int, dest *string) {
			defer wg.Done()
			result, err := e.generate(ctx, fmt.Sprintf(prompt, cleaned), maxTokens)
			if err != nil {
				*dest = fmt.Sprintf("[enrichment error: %v]", err)
				return
			}
			*dest = result
		}(r.prompt, r.maxTokens, r.dest)
	}
	wg.Wait()

	return meta
}

// ModelName returns the name of the model being used.
func (e *Enricher) ModelName() string {
	return e.model
}

// generate issues a single chat completion request.
func (e *Enricher) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := chatCompletionRequest{
		Model: e.model,
		Messages: []chatCompletionMsg{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: requestTemperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		e.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("perplexity error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("perplexity error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("perplexity: no response choices returned")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// truncate caps text at max characters, cutting the tail.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max]
}

// sanitize strips everything outside printable ASCII except newline,
// tab and carriage return, to satisfy transport constraints.
func sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\t' || r == '\n' || r == '\r' || (r >= 0x20 && r <= 0x7E) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
