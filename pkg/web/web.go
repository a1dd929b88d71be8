// Package web renders the browser pages of the correction service.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"regexp"
	"strings"

	"github.com/notaspie/notaspie/internal"
)

var log = internal.GetLogger()

var LayoutTemplates = []string{
	"templates/pages/layout.html",
	"templates/components/*.html",
}

//go:embed static/*
var StaticFS embed.FS

//go:embed templates/*
var TemplatesFS embed.FS

func NewPage(
	title, subTitle, path string,
	templates []string,
	data interface{},
) *Page {
	return &Page{
		Title:     title,
		SubTitle:  subTitle,
		Templates: templates,
		Path:      path,
		Slug:      slugify(title),
		Data:      data,
	}
}

type Page struct {
	Title     string
	SubTitle  string
	Templates []string
	Path      string
	Slug      string
	Data      interface{}
}

func (p *Page) Render(w http.ResponseWriter, r *http.Request) {
	// If HX-Request header is set, render content template only
	// If the page was loaded directly, render full layout
	if r.Header.Get("HX-Request") == "true" {
		p.render(w, p.Templates, "Content")
	} else {
		templates := append(append([]string{}, LayoutTemplates...), p.Templates...)
		p.render(w, templates, "Layout")
	}
}

func (p *Page) render(w http.ResponseWriter, templates []string, name string) {
	tmpl, err := template.New(p.Title).Funcs(TemplateFuncs()).ParseFS(
		TemplatesFS,
		templates...,
	)
	if err != nil {
		log.Errorf("Failed to parse template: %s", err)
		http.Error(w, "Failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err = tmpl.ExecuteTemplate(w, name, p)
	if err != nil {
		log.Errorf("Failed to execute template: %s", err)
		http.Error(w, "Failed to execute template", http.StatusInternalServerError)
		return
	}
}

// slugify converts a string to an alpha-only lowercase string
func slugify(s string) string {
	reg := regexp.MustCompile("[^a-zA-Z]+")
	processedString := reg.ReplaceAllString(s, "")
	return strings.ToLower(processedString)
}
