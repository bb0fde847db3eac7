package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/djherbis/times"
	"github.com/google/uuid"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
)

// LoadDocument reads a source file into an immutable Document. The
// bytes are read exactly once; size, timestamps and the content
// fingerprint are captured at load time. A missing or unreadable file
// (including unreadable stat data) is a hard failure.
func LoadDocument(path string) (*domain.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	created, modified := fileTimes(path, info.ModTime())

	digest := sha256.Sum256(content)

	return &domain.Document{
		ID:          uuid.New().String(),
		Path:        path,
		Content:     content,
		Size:        info.Size(),
		Created:     created,
		Modified:    modified,
		Fingerprint: hex.EncodeToString(digest[:]),
	}, nil
}

// fileTimes returns the creation and modification timestamps. Not
// every platform records a birth time; the modification time stands
// in when it is unavailable.
func fileTimes(path string, modTime time.Time) (created, modified time.Time) {
	ts, err := times.Stat(path)
	if err != nil {
		return modTime, modTime
	}

	modified = ts.ModTime()
	created = modified
	if ts.HasBirthTime() {
		created = ts.BirthTime()
	}
	return created, modified
}
