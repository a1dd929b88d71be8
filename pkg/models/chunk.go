package models

// Chunk is a contiguous slice of a body sent to the checker in one call.
// Joining every chunk's Text followed by its Separator, in order, gives back
// the body.
type Chunk struct {
	Text                 string `json:"text"`
	SourceParagraphIndex int    `json:"source_paragraph_index"`
	Separator            string `json:"separator"`
}
