package apihandlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/notaspie/notaspie/pkg/corrector"
	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/server/handlertools"
	"github.com/notaspie/notaspie/pkg/storage"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type CorrectDocumentResponse struct {
	ID          string                  `json:"id"`
	Filename    string                  `json:"filename"`
	DownloadURL string                  `json:"download_url"`
	Footnotes   []models.FootnoteRecord `json:"footnotes,omitempty"`
	Warnings    []string                `json:"warnings"`
	Stats       models.CorrectionStats  `json:"stats"`
}

// CorrectedDocument is a corrected upload that has been stored for download.
type CorrectedDocument struct {
	ID       uuid.UUID
	Filename string
	Result   *models.CorrectionResult
}

// CorrectUpload corrects an uploaded DOCX file and stores the result.
func CorrectUpload(
	r *http.Request,
	appState *models.AppState,
	c *corrector.Corrector,
	data []byte,
	filename string,
	opts corrector.Options,
) (*CorrectedDocument, error) {
	if !IsDOCX(filename) {
		return nil, models.NewBadRequestError(fmt.Sprintf("%s is not a .docx file", filename))
	}

	out, result, err := c.CorrectDOCX(r.Context(), data, appState.Config.Document.RewriteUnchanged, opts)
	if err != nil {
		return nil, err
	}

	doc := &CorrectedDocument{
		ID:       uuid.New(),
		Filename: CorrectedFilename(filename),
		Result:   result,
	}
	if _, err := appState.Storage.Upload(r.Context(), doc.ID, doc.Filename, bytes.NewReader(out)); err != nil {
		return nil, err
	}
	return doc, nil
}

// CorrectedFilename is the name a corrected document is offered under.
func CorrectedFilename(filename string) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_corrected" + strings.ToLower(ext)
}

// DownloadURL is where a stored document can be fetched.
func DownloadURL(id uuid.UUID) string {
	return "/api/v1/documents/" + id.String()
}

// CorrectDocumentHandler godoc
//
//	@Summary		Corrects a DOCX document
//	@Description	The corrected document is stored and can be fetched from download_url.
//	@Description	Footnote content is not checked.
//	@Tags			correction
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"DOCX document"
//	@Param			language	formData	string	false	"Language name or code"
//	@Param			max_words	formData	int		false	"Words per checker call"
//	@Success		200			{object}	CorrectDocumentResponse
//	@Failure		400			{string}	string	"Bad Request"
//	@Failure		401			{string}	string	"Unauthorized"
//	@Failure		413			{string}	string	"Request Entity Too Large"
//	@Failure		500			{string}	string	"Internal Server Error"
//
//	@Security		Bearer
//
//	@Router			/api/v1/correct/document [post]
func CorrectDocumentHandler(appState *models.AppState) http.HandlerFunc {
	c := NewCorrector(appState)
	return func(w http.ResponseWriter, r *http.Request) {
		data, header, err := ReadUpload(w, r, appState, "file")
		if err != nil {
			handlertools.RenderError(w, err, 0)
			return
		}

		maxWords, err := handlertools.IntFromForm(r, "max_words")
		if err != nil {
			handlertools.RenderError(w, err, 0)
			return
		}

		doc, err := CorrectUpload(r, appState, c, data, header.Filename, corrector.Options{
			Language: r.FormValue("language"),
			MaxWords: maxWords,
		})
		if err != nil {
			handlertools.RenderError(w, err, 0)
			return
		}

		response := CorrectDocumentResponse{
			ID:          doc.ID.String(),
			Filename:    doc.Filename,
			DownloadURL: DownloadURL(doc.ID),
		}
		if err := copier.Copy(&response, doc.Result); err != nil {
			handlertools.RenderError(
				w,
				fmt.Errorf("failed to build response: %w", err),
				http.StatusInternalServerError,
			)
			return
		}

		if err := handlertools.EncodeJSON(w, response); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetDocumentHandler godoc
//
//	@Summary	Downloads a corrected document
//	@Tags		correction
//	@Produce	application/vnd.openxmlformats-officedocument.wordprocessingml.document
//	@Param		documentID	path		string	true	"Document ID"
//	@Success	200			{file}		binary
//	@Failure	400			{string}	string	"Bad Request"
//	@Failure	404			{string}	string	"Not Found"
//	@Failure	500			{string}	string	"Internal Server Error"
//
//	@Security	Bearer
//
//	@Router		/api/v1/documents/{documentID} [get]
func GetDocumentHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		documentID := handlertools.UUIDFromURL(r, w, "documentID")
		if documentID == uuid.Nil {
			return
		}

		rc, err := appState.Storage.Download(
			r.Context(),
			storage.DocumentPath(documentID, ".docx"),
		)
		if err != nil {
			handlertools.RenderError(w, err, 0)
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", docxContentType)
		w.Header().Set(
			"Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s.docx"`, documentID),
		)
		if _, err := io.Copy(w, rc); err != nil {
			log.Errorf("failed to send document %s: %s", documentID, err)
		}
	}
}

// DeleteDocumentHandler godoc
//
//	@Summary		Deletes a corrected document
//	@Description	Removes a stored document once it has been downloaded. Deleting a
//	@Description	document that is already gone succeeds.
//	@Tags			correction
//	@Param			documentID	path	string	true	"Document ID"
//	@Success		204
//	@Failure		400	{string}	string	"Bad Request"
//	@Failure		401	{string}	string	"Unauthorized"
//	@Failure		500	{string}	string	"Internal Server Error"
//
//	@Security		Bearer
//
//	@Router			/api/v1/documents/{documentID} [delete]
func DeleteDocumentHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		documentID := handlertools.UUIDFromURL(r, w, "documentID")
		if documentID == uuid.Nil {
			return
		}

		if err := appState.Storage.Delete(
			r.Context(),
			storage.DocumentPath(documentID, ".docx"),
		); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		log.Debugf("deleted document %s", documentID)
		w.WriteHeader(http.StatusNoContent)
	}
}
