// Package render turns corrected text into reader-facing output: plain text
// with superscript footnote markers, or an HTML preview.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/notaspie/notaspie/pkg/footnotes"
	"github.com/notaspie/notaspie/pkg/models"
)

//go:embed templates/*
var templatesFS embed.FS

var previewTemplate = template.Must(template.ParseFS(templatesFS, "templates/preview.html"))

// definitionPrefix matches the "[^id]:" that opens a markdown definition.
var definitionPrefix = regexp.MustCompile(`^\[\^[^\[\]\s]+\]:\s*`)

// numericMarker matches markers with a numeric id such as [^12].
var numericMarker = regexp.MustCompile(`\[\^(\d+)\]`)

var superscripts = strings.NewReplacer(
	"0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
	"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹",
)

// FootnotesTitle heads the footnote list of a preview.
const FootnotesTitle = "Footnotes"

// Superscript converts the digits of s to Unicode superscript digits.
func Superscript(s string) string {
	return superscripts.Replace(s)
}

// PlainText rewrites numeric markers such as [^12] as [¹²].
func PlainText(text string) string {
	return numericMarker.ReplaceAllStringFunc(text, func(m string) string {
		return "[" + Superscript(numericMarker.FindStringSubmatch(m)[1]) + "]"
	})
}

type preview struct {
	Paragraphs     []template.HTML
	Footnotes      []string
	FootnotesTitle string
}

// HTML writes an HTML preview of text to w. Each non-blank line becomes a
// paragraph with numeric markers shown as superscripts, and footnotes are
// listed in order after a rule.
func HTML(w io.Writer, text string, footnotes []string) error {
	p := preview{Footnotes: footnotes, FootnotesTitle: FootnotesTitle}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		escaped := template.HTMLEscapeString(line)
		html := numericMarker.ReplaceAllString(escaped, "<sup>[$1]</sup>")
		p.Paragraphs = append(p.Paragraphs, template.HTML(html)) //nolint:gosec
	}
	return previewTemplate.Execute(w, p)
}

// HTMLString is HTML rendered to a string.
func HTMLString(text string, footnotes []string) (string, error) {
	var buf bytes.Buffer
	if err := HTML(&buf, text, footnotes); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Source writes the preview of src. Markdown definitions and document
// footnotes are listed after the body, in source order.
func Source(w io.Writer, src models.Source) error {
	extractor, err := footnotes.For(src.Kind)
	if err != nil {
		return err
	}
	ext, err := extractor.Extract(src)
	if err != nil {
		return err
	}

	var notes []string
	if src.Kind == models.InputDocument {
		for _, n := range ext.Notes {
			notes = append(notes, n.Content)
		}
	} else {
		for _, def := range ext.Definitions() {
			notes = append(notes, strings.TrimSpace(definitionPrefix.ReplaceAllString(def, "")))
		}
	}
	return HTML(w, ext.Body, notes)
}
