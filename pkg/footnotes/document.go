package footnotes

import (
	"strings"

	"github.com/notaspie/notaspie/pkg/models"
)

var _ Extractor = &DocumentExtractor{}

// DocumentExtractor reads a structured document. The body is the
// newline-joined paragraph text with footnote markers kept inline; only the
// footnote content is split out.
type DocumentExtractor struct{}

func (d *DocumentExtractor) Kind() models.InputKind {
	return models.InputDocument
}

func (d *DocumentExtractor) Extract(src models.Source) (*Extraction, error) {
	if src.Document == nil {
		return nil, models.NewInputError("no document to extract footnotes from", nil)
	}

	ext := &Extraction{
		Kind: models.InputDocument,
		Body: strings.Join(src.Document.Paragraphs(), "\n"),
	}
	for _, part := range src.Document.FootnoteParts() {
		ext.Notes = append(ext.Notes, models.FootnoteRecord{
			ID:      part.ID,
			Content: strings.TrimSpace(strings.Join(part.Texts, "")),
		})
	}

	log.Debugf("extracted %d document footnotes", len(ext.Notes))

	return ext, nil
}

// Reintegrate returns body unchanged. Document footnotes are never rewritten,
// and their markers never left the body.
func (d *DocumentExtractor) Reintegrate(_ *Extraction, body string) string {
	return body
}
