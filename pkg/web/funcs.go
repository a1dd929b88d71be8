package web

import (
	"html/template"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/getzep/sprig/v3"

	"github.com/notaspie/notaspie/pkg/render"
)

func percent(a, b int) int {
	if b == 0 {
		return 0
	}
	return int(float32(a) / float32(b) * 100)
}

func humanBytes(n int64) string {
	if n < 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(n))
}

// TemplateFuncs is sprig's function map plus the helpers used by the pages.
func TemplateFuncs() template.FuncMap {
	funcs := sprig.FuncMap()
	for name, fn := range (template.FuncMap{
		"ToLower":     strings.ToLower,
		"Percent":     percent,
		"Bytes":       humanBytes,
		"Superscript": render.Superscript,
		"PlainText":   render.PlainText,
	}) {
		funcs[name] = fn
	}
	return funcs
}
