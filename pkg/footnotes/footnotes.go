// Package footnotes separates footnote content from the body of a text so the
// body can be corrected on its own, and puts the content back afterwards.
package footnotes

import (
	"fmt"

	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/models"
)

var log = internal.GetLogger()

// Extractor splits a source into a footnote-free body and its footnotes.
// Extract is deterministic: the same source always yields the same
// Extraction.
type Extractor interface {
	Kind() models.InputKind
	Extract(src models.Source) (*Extraction, error)
	// Reintegrate rebuilds the full text from a (possibly corrected) body.
	Reintegrate(ext *Extraction, body string) string
}

// Block is a markdown footnote definition removed from a body, together with
// the body line it was cut before.
type Block struct {
	Text string `json:"text"`
	Line int    `json:"line"`
}

type Extraction struct {
	Kind models.InputKind
	Body string
	// Blocks holds markdown definitions in source order.
	Blocks []Block
	// Notes holds document footnotes in part order.
	Notes []models.FootnoteRecord
}

// Definitions returns the removed markdown definition texts.
func (e *Extraction) Definitions() []string {
	defs := make([]string, len(e.Blocks))
	for i, b := range e.Blocks {
		defs[i] = b.Text
	}
	return defs
}

// Mapping returns document footnote content keyed by id.
func (e *Extraction) Mapping() map[string]string {
	m := make(map[string]string, len(e.Notes))
	for _, n := range e.Notes {
		m[n.ID] = n.Content
	}
	return m
}

// For returns the extractor for an input kind.
func For(kind models.InputKind) (Extractor, error) {
	switch kind {
	case models.InputMarkdown, "":
		return &MarkdownExtractor{}, nil
	case models.InputDocument:
		return &DocumentExtractor{}, nil
	default:
		return nil, models.NewInputError(fmt.Sprintf("unknown input kind %q", kind), nil)
	}
}
