package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
)

func TestExtensions(t *testing.T) {
	e := New()
	assert.Equal(t, []string{".txt"}, e.Extensions())
}

func TestExtract_UTF8(t *testing.T) {
	e := New()
	doc := &domain.Document{Path: "a.txt", Content: []byte("héllo wörld")}

	text, err := e.Extract(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", text)
}

func TestExtract_Latin1Fallback(t *testing.T) {
	e := New()
	// "café" encoded as Latin-1: 0xE9 is not valid UTF-8 on its own.
	doc := &domain.Document{Path: "a.txt", Content: []byte{'c', 'a', 'f', 0xE9}}

	text, err := e.Extract(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "café", text)
}

func TestExtract_Empty(t *testing.T) {
	e := New()
	doc := &domain.Document{Path: "a.txt", Content: nil}

	text, err := e.Extract(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtract_NilDocument(t *testing.T) {
	e := New()
	_, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
