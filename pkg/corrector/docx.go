package corrector

import (
	"bytes"
	"context"

	"github.com/notaspie/notaspie/pkg/docx"
	"github.com/notaspie/notaspie/pkg/models"
)

// CorrectDOCX corrects the DOCX file held in data and returns the rewritten
// file. A file that cannot be opened is an InputError; one that cannot be
// written back is a SaveError.
func (c *Corrector) CorrectDOCX(
	ctx context.Context,
	data []byte,
	rewriteUnchanged bool,
	opts Options,
) ([]byte, *models.CorrectionResult, error) {
	doc, err := docx.Open(data)
	if err != nil {
		return nil, nil, err
	}
	doc.RewriteUnchanged = rewriteUnchanged

	result, err := c.CorrectDocument(ctx, doc, opts)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), result, nil
}
