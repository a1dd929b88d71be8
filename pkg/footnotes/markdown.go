package footnotes

import (
	"regexp"
	"strings"

	"github.com/notaspie/notaspie/pkg/models"
)

// definitionStart matches a line opening a footnote definition, e.g. "[^3]: ".
var definitionStart = regexp.MustCompile(`^\[\^[^\[\]\s]+\]:`)

var _ Extractor = &MarkdownExtractor{}

// MarkdownExtractor removes "[^id]: ..." definition blocks from a text. A
// block runs from its opening line up to the next opening line or the end of
// the text. Markers in the body are left alone.
type MarkdownExtractor struct{}

func (m *MarkdownExtractor) Kind() models.InputKind {
	return models.InputMarkdown
}

func (m *MarkdownExtractor) Extract(src models.Source) (*Extraction, error) {
	ext := &Extraction{Kind: models.InputMarkdown}

	var body strings.Builder
	bodyLines := 0
	for _, line := range strings.SplitAfter(src.Text, "\n") {
		switch {
		case definitionStart.MatchString(line):
			ext.Blocks = append(ext.Blocks, Block{Text: line, Line: bodyLines})
		case len(ext.Blocks) > 0:
			ext.Blocks[len(ext.Blocks)-1].Text += line
		default:
			body.WriteString(line)
			bodyLines++
		}
	}
	ext.Body = body.String()

	log.Debugf("extracted %d markdown footnote definitions", len(ext.Blocks))

	return ext, nil
}

// Reintegrate inserts every block back before the body line it was cut
// from. Blocks whose line no longer exists go to the end.
func (m *MarkdownExtractor) Reintegrate(ext *Extraction, body string) string {
	if ext == nil || len(ext.Blocks) == 0 {
		return body
	}
	lines := strings.SplitAfter(body, "\n")

	var sb strings.Builder
	next := 0
	for i, line := range lines {
		for next < len(ext.Blocks) && ext.Blocks[next].Line <= i {
			sb.WriteString(ext.Blocks[next].Text)
			next++
		}
		sb.WriteString(line)
	}
	if next < len(ext.Blocks) && !strings.HasSuffix(sb.String(), "\n") && sb.Len() > 0 {
		sb.WriteString("\n")
	}
	for ; next < len(ext.Blocks); next++ {
		sb.WriteString(ext.Blocks[next].Text)
	}
	return sb.String()
}
