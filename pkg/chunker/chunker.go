// Package chunker splits a body of text into pieces small enough for a
// grammar checker to accept, in a way that can be reassembled exactly.
package chunker

import (
	"strings"
	"unicode"

	"github.com/notaspie/notaspie/pkg/models"
)

var _ models.Chunker = &Chunker{}

type Chunker struct{}

func New() *Chunker {
	return &Chunker{}
}

// Chunk splits body on newlines. A line with more than maxWords words is cut
// into groups of maxWords words, the last group possibly shorter. Cuts fall
// at word starts, so whitespace between words stays with the preceding chunk.
// maxWords <= 0 disables word splitting.
func (c *Chunker) Chunk(body string, maxWords int) []models.Chunk {
	lines := strings.Split(body, "\n")
	chunks := make([]models.Chunk, 0, len(lines))
	for i, line := range lines {
		sep := "\n"
		if i == len(lines)-1 {
			sep = ""
		}
		pieces := splitWords(line, maxWords)
		for j, piece := range pieces {
			chunk := models.Chunk{Text: piece, SourceParagraphIndex: i}
			if j == len(pieces)-1 {
				chunk.Separator = sep
			}
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// splitWords cuts line before every maxWords-th word start.
func splitWords(line string, maxWords int) []string {
	if maxWords <= 0 {
		return []string{line}
	}
	var cuts []int
	words := 0
	prevSpace := true
	for i, r := range line {
		space := unicode.IsSpace(r)
		if prevSpace && !space {
			if words > 0 && words%maxWords == 0 {
				cuts = append(cuts, i)
			}
			words++
		}
		prevSpace = space
	}
	if len(cuts) == 0 {
		return []string{line}
	}
	pieces := make([]string, 0, len(cuts)+1)
	start := 0
	for _, cut := range cuts {
		pieces = append(pieces, line[start:cut])
		start = cut
	}
	return append(pieces, line[start:])
}

// Join reassembles chunks. Join(Chunk(body, n)) == body for any n.
func Join(chunks []models.Chunk) string {
	var sb strings.Builder
	for _, c := range chunks {
		sb.WriteString(c.Text)
		sb.WriteString(c.Separator)
	}
	return sb.String()
}

// Paragraphs regroups chunk texts by source paragraph. Separators are
// dropped; the result has one entry per paragraph index up to the highest
// one seen.
func Paragraphs(chunks []models.Chunk) []string {
	count := 0
	for _, c := range chunks {
		if c.SourceParagraphIndex+1 > count {
			count = c.SourceParagraphIndex + 1
		}
	}
	builders := make([]strings.Builder, count)
	for _, c := range chunks {
		if c.SourceParagraphIndex < 0 {
			continue
		}
		builders[c.SourceParagraphIndex].WriteString(c.Text)
	}
	paragraphs := make([]string, count)
	for i := range builders {
		paragraphs[i] = builders[i].String()
	}
	return paragraphs
}
