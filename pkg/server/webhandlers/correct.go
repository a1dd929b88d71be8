package webhandlers

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/notaspie/notaspie/pkg/corrector"
	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/render"
	"github.com/notaspie/notaspie/pkg/server/apihandlers"
	"github.com/notaspie/notaspie/pkg/web"
)

type resultData struct {
	Highlighted template.HTML
	Preview     string
	Warnings    []string
	Stats       models.CorrectionStats
	DownloadURL string
	Filename    string
}

// CorrectHandler corrects the uploaded document, or the pasted text when no
// document was sent, and shows the result.
func CorrectHandler(appState *models.AppState) http.HandlerFunc {
	c := apihandlers.NewCorrector(appState)
	return func(w http.ResponseWriter, r *http.Request) {
		data, header, err := apihandlers.ReadUpload(w, r, appState, "file")
		if err != nil && !errors.Is(err, models.ErrBadRequest) {
			handleError(w, err, "failed to read upload")
			return
		}
		// the form is parsed by now, within the upload limit
		opts := corrector.Options{Language: r.FormValue("language")}

		var (
			result *models.CorrectionResult
			rd     resultData
			src    models.Source
		)
		if len(data) > 0 {
			doc, err := apihandlers.CorrectUpload(r, appState, c, data, header.Filename, opts)
			if err != nil {
				handleError(w, err, "failed to correct document")
				return
			}
			result = doc.Result
			rd.DownloadURL = apihandlers.DownloadURL(doc.ID)
			rd.Filename = doc.Filename
			src = models.Source{
				Kind:     models.InputDocument,
				Document: &correctedDocument{result: result},
			}
		} else {
			text := r.FormValue("text")
			if strings.TrimSpace(text) == "" {
				handleError(w, models.NewBadRequestError("no text or document"), "nothing to correct")
				return
			}
			result, err = c.CorrectText(r.Context(), text, opts)
			if err != nil {
				handleError(w, err, "failed to correct text")
				return
			}
			src = models.Source{Kind: models.InputMarkdown, Text: result.Text}
		}

		rd.Warnings = result.Warnings
		rd.Stats = result.Stats

		rd.Highlighted, err = web.Highlight(result.Text, "markdown")
		if err != nil {
			handleError(w, err, "failed to highlight text")
			return
		}

		var preview bytes.Buffer
		if err := render.Source(&preview, src); err != nil {
			handleError(w, err, "failed to render preview")
			return
		}
		rd.Preview = preview.String()

		page := web.NewPage("Corrected text", "", "/correct", []string{"templates/pages/result.html"}, rd)
		page.Render(w, r)
	}
}

// correctedDocument presents a corrected document's result as a read-only
// document for the preview.
type correctedDocument struct {
	result *models.CorrectionResult
}

func (d *correctedDocument) Paragraphs() []string {
	return d.result.Paragraphs
}

func (d *correctedDocument) FootnoteParts() []models.FootnotePart {
	parts := make([]models.FootnotePart, len(d.result.Footnotes))
	for i, n := range d.result.Footnotes {
		parts[i] = models.FootnotePart{ID: n.ID, Texts: []string{n.Content}}
	}
	return parts
}

func (d *correctedDocument) ReplaceParagraphs(_ []string) error {
	return errors.New("corrected document is read-only")
}

func (d *correctedDocument) Save(_ io.Writer) error {
	return errors.New("corrected document is read-only")
}
