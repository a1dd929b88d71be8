package apihandlers

import (
	"bytes"
	"net/http"

	"github.com/notaspie/notaspie/pkg/docx"
	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/render"
	"github.com/notaspie/notaspie/pkg/server/handlertools"
)

// PreviewHandler godoc
//
//	@Summary		Renders an HTML preview of a document
//	@Description	Accepts a DOCX document or a markdown text file. Footnote markers are
//	@Description	shown as superscripts and the footnotes are listed at the end.
//	@Tags			preview
//	@Accept			multipart/form-data
//	@Produce		html
//	@Param			file	formData	file	true	"DOCX or markdown file"
//	@Success		200		{string}	string	"HTML"
//	@Failure		400		{string}	string	"Bad Request"
//	@Failure		500		{string}	string	"Internal Server Error"
//
//	@Security		Bearer
//
//	@Router			/api/v1/preview [post]
func PreviewHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, header, err := ReadUpload(w, r, appState, "file")
		if err != nil {
			handlertools.RenderError(w, err, 0)
			return
		}

		src := models.Source{Kind: models.InputMarkdown, Text: string(data)}
		if IsDOCX(header.Filename) {
			doc, err := docx.Open(data)
			if err != nil {
				handlertools.RenderError(w, err, 0)
				return
			}
			src = models.Source{Kind: models.InputDocument, Document: doc}
		}

		var buf bytes.Buffer
		if err := render.Source(&buf, src); err != nil {
			handlertools.RenderError(w, err, 0)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Errorf("failed to write preview: %s", err)
		}
	}
}
