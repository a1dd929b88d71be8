package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testData struct {
	Languages []struct{ Name, Code string }
	Language  string

	MaxUploadSize int64
}

func indexPage() *Page {
	return NewPage(
		"Correct a text",
		"",
		"/",
		[]string{"templates/pages/index.html"},
		testData{
			Languages: []struct{ Name, Code string }{
				{Name: "Spanish", Code: "es"},
				{Name: "French", Code: "fr"},
			},
			Language:      "fr",
			MaxUploadSize: 20_000_000,
		},
	)
}

func TestPageRenderFull(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	indexPage().Render(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `<option value="fr" selected>French</option>`)
	assert.Contains(t, body, `<option value="es">Spanish</option>`)
	assert.Contains(t, body, "up to 20 MB")
	assert.Contains(t, body, `class="page-correctatext"`)
}

func TestPageRenderPartial(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	indexPage().Render(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `<form action="/correct"`)
}

func TestHighlight(t *testing.T) {
	out, err := Highlight("He doesn't know[^1].\n\n[^1]: A note.", "markdown")
	require.NoError(t, err)
	assert.Contains(t, string(out), `class="corrected"`)
	assert.Contains(t, string(out), "know")

	out, err = Highlight("plain <b>text</b>", "no-such-lexer")
	require.NoError(t, err)
	assert.Contains(t, string(out), "&lt;b&gt;")
}

func TestNotFoundHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()

	NotFoundHandler()(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<code>/missing</code>")
}
