package apihandlers

import (
	"fmt"
	"net/http"

	"github.com/jinzhu/copier"

	"github.com/notaspie/notaspie/pkg/corrector"
	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/server/handlertools"
)

type CorrectTextRequest struct {
	Text     string `json:"text"      validate:"required"`
	Language string `json:"language"`
	MaxWords int    `json:"max_words" validate:"gte=0"`
}

type CorrectTextResponse struct {
	Text      string                  `json:"text"`
	Footnotes []models.FootnoteRecord `json:"footnotes,omitempty"`
	Warnings  []string                `json:"warnings"`
	Stats     models.CorrectionStats  `json:"stats"`
}

// CorrectTextHandler godoc
//
//	@Summary		Corrects a text
//	@Description	Markdown footnote definitions are not checked. Passages the grammar
//	@Description	checker failed on are returned as they were, with a warning.
//	@Tags			correction
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CorrectTextRequest	true	"Text to correct"
//	@Success		200		{object}	CorrectTextResponse
//	@Failure		400		{string}	string	"Bad Request"
//	@Failure		401		{string}	string	"Unauthorized"
//	@Failure		500		{string}	string	"Internal Server Error"
//
//	@Security		Bearer
//
//	@Router			/api/v1/correct/text [post]
func CorrectTextHandler(appState *models.AppState) http.HandlerFunc {
	c := NewCorrector(appState)
	return func(w http.ResponseWriter, r *http.Request) {
		var request CorrectTextRequest
		if err := handlertools.DecodeJSON(r, &request); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		if err := validate.Struct(request); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		result, err := c.CorrectText(r.Context(), request.Text, corrector.Options{
			Language: request.Language,
			MaxWords: request.MaxWords,
		})
		if err != nil {
			handlertools.RenderError(w, err, 0)
			return
		}

		var response CorrectTextResponse
		if err := copier.Copy(&response, result); err != nil {
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
