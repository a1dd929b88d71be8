package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the languages offered to users.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Languages is the fixed set of selectable languages, in display order.
var Languages = []Language{
	{Name: "Spanish", Code: "es"},
	{Name: "English (US)", Code: "en-US"},
	{Name: "French", Code: "fr"},
	{Name: "German", Code: "de"},
}

// ParseLanguage resolves a language by display name or by code. Codes are
// canonicalised first, so "en-us" and "EN_us" both resolve to en-US.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, l := range Languages {
		if strings.EqualFold(l.Name, s) {
			return l, nil
		}
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return Language{}, NewInputError(fmt.Sprintf("unknown language %q", s), err)
	}
	code := tag.String()
	for _, l := range Languages {
		if l.Code == code {
			return l, nil
		}
	}
	return Language{}, NewInputError(fmt.Sprintf("unsupported language %q", s), nil)
}
