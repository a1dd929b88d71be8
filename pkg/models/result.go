package models

// CorrectionStats counts what happened during one correction request.
type CorrectionStats struct {
	Chunks          int `json:"chunks"`
	ServiceCalls    int `json:"service_calls"`
	ServiceFailures int `json:"service_failures"`
	Applied         int `json:"applied"`
	Skipped         int `json:"skipped"`
}

// CorrectionResult is handed to the caller once a request completes.
// Text is always set; Paragraphs only for document input.
type CorrectionResult struct {
	Text        string           `json:"text"`
	Paragraphs  []string         `json:"paragraphs,omitempty"`
	Footnotes   []FootnoteRecord `json:"footnotes,omitempty"`
	Definitions []string         `json:"definitions,omitempty"`
	Warnings    []string         `json:"warnings"`
	Stats       CorrectionStats  `json:"stats"`
}
