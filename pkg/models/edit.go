package models

// Edit is one proposed change anchored to the original (pre-correction) text.
// Offset and Length are in characters (runes) of that text.
type Edit struct {
	Offset      int    `json:"offset"`
	Length      int    `json:"length"`
	Replacement string `json:"replacement"`
}

// End returns the exclusive end offset of the edited range.
func (e Edit) End() int {
	return e.Offset + e.Length
}

// OverlapPolicy decides what the merger does with two edits claiming
// overlapping ranges.
type OverlapPolicy string

const (
	// OverlapLastWriteWins applies every edit right to left; an edit that
	// reaches into an already applied one splices over the replaced text.
	OverlapLastWriteWins OverlapPolicy = "last_write_wins"
	// OverlapReject skips an edit whose range reaches into an edit applied before it.
	OverlapReject OverlapPolicy = "reject"
)

// Valid reports whether p is a known policy. The empty policy is not valid.
func (p OverlapPolicy) Valid() bool {
	return p == OverlapLastWriteWins || p == OverlapReject
}

// MergeResult is the outcome of applying a set of edits to one text.
type MergeResult struct {
	Text    string `json:"text"`
	Applied int    `json:"applied"`
	Skipped int    `json:"skipped"`
}
