package checker

import (
	"unicode/utf16"

	"github.com/notaspie/notaspie/pkg/models"
)

// OffsetUnit is the unit a checking service counts offsets in.
type OffsetUnit string

const (
	OffsetRune OffsetUnit = "rune"
	// OffsetUTF16 is used by services backed by Java strings, LanguageTool
	// among them.
	OffsetUTF16 OffsetUnit = "utf16"
)

// utf16RuneIndex maps each UTF-16 code unit position of text, and the end
// position, to the index of the rune it belongs to.
func utf16RuneIndex(text string) []int {
	idx := make([]int, 0, len(text)+1)
	n := 0
	for _, r := range text {
		units := len(utf16.Encode([]rune{r}))
		if units < 1 {
			units = 1
		}
		for u := 0; u < units; u++ {
			idx = append(idx, n)
		}
		n++
	}
	return append(idx, n)
}

// toRuneOffsets rewrites UTF-16 match coordinates as rune coordinates.
// Matches that fall outside text are left alone for the merger to skip.
func toRuneOffsets(text string, matches []models.Match) {
	idx := utf16RuneIndex(text)
	for i := range matches {
		m := &matches[i]
		start, end := m.Offset, m.Offset+m.Length
		if start < 0 || m.Length < 0 || end >= len(idx) {
			continue
		}
		m.Offset = idx[start]
		m.Length = idx[end] - idx[start]
	}
}
