// Package pptx extracts text from PPTX (Office Open XML) presentations.
package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
	"github.com/veldt-labs/ragprep-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// slidePattern matches slide part names, capturing the slide number.
var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Extractor handles PPTX files. A PPTX is a ZIP archive with one XML
// part per slide; visible text lives in a:t runs grouped by a:p
// paragraphs. Slides are read in numeric order.
type Extractor struct{}

// New creates a new PPTX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pptx"}
}

// Extract returns the text of every slide, slides separated by a blank
// line, paragraphs by newlines.
func (e *Extractor) Extract(_ context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return "", fmt.Errorf("opening PPTX %s: %w", doc.Path, err)
	}

	slides, err := slideParts(reader)
	if err != nil {
		return "", fmt.Errorf("reading PPTX %s: %w", doc.Path, err)
	}
	if len(slides) == 0 {
		return "", fmt.Errorf("%w: %s has no slides", domain.ErrEmptyDocument, doc.Path)
	}

	var b strings.Builder
	for i, slide := range slides {
		text, err := parseSlideXML(slide)
		if err != nil {
			return "", fmt.Errorf("parsing slide %d of %s: %w", i+1, doc.Path, err)
		}
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
	}

	return b.String(), nil
}

// slideParts returns the slide XML payloads in slide-number order.
func slideParts(reader *zip.Reader) ([][]byte, error) {
	type numbered struct {
		number  int
		content []byte
	}

	var slides []numbered
	for _, file := range reader.File {
		m := slidePattern.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		slides = append(slides, numbered{number: number, content: content})
	}

	sort.Slice(slides, func(i, j int) bool {
		return slides[i].number < slides[j].number
	})

	parts := make([][]byte, len(slides))
	for i, s := range slides {
		parts[i] = s.content
	}
	return parts, nil
}

// parseSlideXML walks the slide XML and collects the text of every
// a:t run, closing each a:p paragraph with a newline. A token walk is
// used instead of struct unmarshalling because the drawing namespace
// nests text bodies at varying depths across shapes and tables.
func parseSlideXML(content []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var b strings.Builder
	inText := false
	paragraphHasText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.CharData:
			if inText {
				b.Write(t)
				paragraphHasText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if paragraphHasText {
					b.WriteString("\n")
					paragraphHasText = false
				}
			}
		}
	}

	return strings.TrimSpace(b.String()), nil
}
