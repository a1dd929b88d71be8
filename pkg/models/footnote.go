package models

// FootnoteRecord is one footnote's content keyed by its id.
type FootnoteRecord struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// FootnotePart is a footnote as a structured document yields it: the id and
// the text of each of its text nodes, in order.
type FootnotePart struct {
	ID    string
	Texts []string
}

// InputKind selects the footnote extraction strategy.
type InputKind string

const (
	InputMarkdown InputKind = "markdown"
	InputDocument InputKind = "document"
)

// Source is the raw input of one correction request. Text is set for
// InputMarkdown, Document for InputDocument.
type Source struct {
	Kind     InputKind
	Text     string
	Document Document
}
