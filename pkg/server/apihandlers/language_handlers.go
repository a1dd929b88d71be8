package apihandlers

import (
	"net/http"

	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/server/handlertools"
)

// GetLanguagesHandler godoc
//
//	@Summary	Lists the languages text can be corrected in
//	@Tags		correction
//	@Produce	json
//	@Success	200	{array}		models.Language
//	@Failure	500	{string}	string	"Internal Server Error"
//	@Router		/api/v1/languages [get]
func GetLanguagesHandler(_ *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handlertools.EncodeJSON(w, models.Languages); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
