package web

import (
	"bytes"
	"html/template"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
)

type wrappingPre struct{}

// Start is called to write a start <pre> element.
// The code flag tells whether this block surrounds
// highlighted code. This will be false when surrounding
// line numbers.
func (p *wrappingPre) Start(code bool, _ string) string {
	if code {
		return `<pre tabindex="0" class="corrected" style="-moz-tab-size:2;-o-tab-size:2;tab-size:2;white-space:pre-wrap;word-break:break-word;">`
	}
	return "<pre>"
}

// End is called to write the end </pre> element.
func (p *wrappingPre) End(_ bool) string {
	return "</pre>"
}

// Highlight renders text with the named chroma lexer, so corrected markdown
// shows its footnote markers and definitions apart from the prose. Unknown
// lexers fall back to plain text.
func Highlight(text string, lexer string) (template.HTML, error) {
	l := lexers.Get(lexer)
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	formatter := html.New(
		html.WrapLongLines(true),
		html.TabWidth(2),
		html.WithPreWrapper(&wrappingPre{}),
	)

	iterator, err := l.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, styles.Get("github"), iterator); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil //nolint:gosec
}
