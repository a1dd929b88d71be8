// Package merge applies offset-based corrections to a text.
//
// Edits are anchored to the original text. They are applied right to left,
// so every edit still waiting to be applied sits left of all the text changed
// so far and its offsets stay valid.
package merge

import (
	"sort"

	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/models"
)

var log = internal.GetLogger()

var _ models.Merger = &Merger{}

// Merger applies edits under an overlap policy.
type Merger struct {
	policy models.OverlapPolicy
}

// New creates a Merger. An empty or unknown policy means last-write-wins.
func New(policy models.OverlapPolicy) *Merger {
	if !policy.Valid() {
		policy = models.OverlapLastWriteWins
	}
	return &Merger{policy: policy}
}

func (m *Merger) Policy() models.OverlapPolicy {
	return m.policy
}

// MergeMatches applies the first suggested replacement of each match.
// Matches without a suggestion are counted as skipped.
func (m *Merger) MergeMatches(
	original string,
	matches []models.Match,
	guard models.Guard,
) models.MergeResult {
	edits := make([]models.Edit, 0, len(matches))
	noSuggestion := 0
	for _, match := range matches {
		edit, ok := match.Edit()
		if !ok {
			noSuggestion++
			continue
		}
		edits = append(edits, edit)
	}
	result := m.Merge(original, edits, guard)
	result.Skipped += noSuggestion
	return result
}

// Merge applies edits to original. Edits touching a span the guard protects
// are skipped, as are edits with coordinates outside the text. Overlapping
// edits are resolved by the merger's policy; the result does not depend on
// the order of edits.
func (m *Merger) Merge(original string, edits []models.Edit, guard models.Guard) models.MergeResult {
	if guard == nil {
		guard = models.NoGuard
	}
	result := models.MergeResult{Text: original}
	if len(edits) == 0 {
		return result
	}

	ordered := make([]models.Edit, len(edits))
	copy(ordered, edits)
	SortDescending(ordered)

	text := []rune(original)
	originalLen := len(text)
	// origin maps each rune of text to its offset in original, or -1 for
	// runes a replacement put there.
	origin := make([]int, originalLen)
	for i := range origin {
		origin[i] = i
	}
	// lowWater is the offset of the leftmost edit applied so far. Text left
	// of it is still byte for byte the original.
	lowWater := originalLen

	for _, e := range ordered {
		if e.Offset < 0 || e.Length < 0 || e.End() > originalLen {
			log.Debugf("skipping out of range edit at %d+%d", e.Offset, e.Length)
			result.Skipped++
			continue
		}
		if guard.Protected(e.Offset, e.Length) {
			log.Debugf("skipping protected edit at %d+%d", e.Offset, e.Length)
			result.Skipped++
			continue
		}

		end := e.End()
		if end > lowWater {
			if m.policy == models.OverlapReject {
				log.Debugf("rejecting overlapping edit at %d+%d", e.Offset, e.Length)
				result.Skipped++
				continue
			}
			if end > len(text) {
				end = len(text)
			}
			// Past lowWater the text has shifted: check the original runes
			// the edit would now cover.
			if coversProtected(origin[lowWater:end], guard) {
				log.Debugf("skipping overlapping edit at %d+%d: it reaches protected text", e.Offset, e.Length)
				result.Skipped++
				continue
			}
		}

		replacement := []rune(e.Replacement)
		text = splice(text, e.Offset, end, replacement)
		origin = splice(origin, e.Offset, end, inserted(len(replacement)))
		lowWater = e.Offset
		result.Applied++
	}

	result.Text = string(text)
	return result
}

// SortDescending orders edits for right-to-left application: by offset
// descending, then longer ranges first, then by replacement so equal inputs
// always produce the same order.
func SortDescending(edits []models.Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		a, b := edits[i], edits[j]
		if a.Offset != b.Offset {
			return a.Offset > b.Offset
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		return a.Replacement < b.Replacement
	})
}

func splice[T any](text []T, start, end int, replacement []T) []T {
	out := make([]T, 0, len(text)-(end-start)+len(replacement))
	out = append(out, text[:start]...)
	out = append(out, replacement...)
	return append(out, text[end:]...)
}

func inserted(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = -1
	}
	return out
}

func coversProtected(origins []int, guard models.Guard) bool {
	for _, o := range origins {
		if o >= 0 && guard.Protected(o, 1) {
			return true
		}
	}
	return false
}
