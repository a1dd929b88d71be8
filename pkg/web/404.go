package web

import (
	"html/template"
	"net/http"
)

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tmpl, err := template.New("404.html").Funcs(TemplateFuncs()).ParseFS(
			TemplatesFS,
			"templates/pages/404.html",
		)
		if err != nil {
			log.Errorf("Failed to parse template: %s", err)
			http.Error(w, "Failed to parse template", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)

		err = tmpl.ExecuteTemplate(w, "404.html", r.URL.Path)
		if err != nil {
			log.Errorf("Failed to execute template: %s", err)
			return
		}
	}
}
