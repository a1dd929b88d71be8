package webhandlers

import (
	"net/http"

	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/web"
)

type indexData struct {
	Languages     []models.Language
	Language      string
	MaxUploadSize int64
}

func IndexHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		language := appState.Config.Correction.Language
		if lang, err := models.ParseLanguage(language); err == nil {
			language = lang.Code
		}

		page := web.NewPage(
			"Correct a text",
			"Upload a Word document or paste text. Footnotes and quotations are left alone.",
			"/",
			[]string{"templates/pages/index.html"},
			indexData{
				Languages:     models.Languages,
				Language:      language,
				MaxUploadSize: appState.Config.Server.MaxUploadSize,
			},
		)

		page.Render(w, r)
	}
}
