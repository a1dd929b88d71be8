package models

import "io"

// Document is a structured document read at paragraph level.
type Document interface {
	// Paragraphs returns the visible text of every paragraph in document order.
	Paragraphs() []string
	// FootnoteParts returns the footnotes reachable from the document.
	FootnoteParts() []FootnotePart
	// ReplaceParagraphs writes corrected texts back. texts must be parallel
	// to Paragraphs.
	ReplaceParagraphs(texts []string) error
	// Save serialises the document.
	Save(w io.Writer) error
}
