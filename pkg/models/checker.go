package models

import "context"

// CheckRequest is one call to the grammar checking service.
type CheckRequest struct {
	Text        string
	Language    string
	EnabledOnly bool
}

type Replacement struct {
	Value string `json:"value"`
}

type MatchContext struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

type MatchRule struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Match is a problem reported by the checker. Offset and Length are runes
// into the text that was checked.
type Match struct {
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Message      string        `json:"message"`
	Replacements []Replacement `json:"replacements"`
	Context      MatchContext  `json:"context"`
	Rule         MatchRule     `json:"rule"`
}

// Edit turns the match into an edit using its first suggested replacement.
// Alternate suggestions are discarded. ok is false when there is no suggestion.
func (m Match) Edit() (Edit, bool) {
	if len(m.Replacements) == 0 {
		return Edit{}, false
	}
	return Edit{Offset: m.Offset, Length: m.Length, Replacement: m.Replacements[0].Value}, true
}

// Software identifies the service build that answered a check.
type Software struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	APIVersion int    `json:"apiVersion"`
}

type CheckResponse struct {
	Software Software `json:"software"`
	Matches  []Match  `json:"matches"`
}

// Checker is the external grammar checking service.
type Checker interface {
	Check(ctx context.Context, req CheckRequest) (*CheckResponse, error)
}
