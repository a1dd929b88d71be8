package models

// Protector masks quoted material and builds the guard used to veto edits.
type Protector interface {
	Protect(text string) (string, *RestoreMap)
	Restore(text string, m *RestoreMap) string
	// Missing lists placeholders of m no longer present in text.
	Missing(text string, m *RestoreMap) []string
	// Guard returns the protected spans of a (possibly masked) text.
	Guard(text string) ProtectedSpans
}

// Merger applies offset-based edits to a text.
type Merger interface {
	Merge(original string, edits []Edit, guard Guard) MergeResult
	MergeMatches(original string, matches []Match, guard Guard) MergeResult
}

// Chunker splits a body into checker-sized chunks.
type Chunker interface {
	Chunk(body string, maxWords int) []Chunk
}
