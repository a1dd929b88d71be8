package testutils

import (
	"context"
	"sort"
	"sync"
	"unicode"

	"github.com/notaspie/notaspie/pkg/models"
)

var _ models.Checker = &WordChecker{}

// WordChecker is a grammar checker that suggests a fixed replacement for
// every whole-word occurrence of the words in Replace. Offsets are runes, like the
// real client returns them. Err, when set, fails every call.
type WordChecker struct {
	Replace map[string]string
	Err     error

	mu    sync.Mutex
	texts []string
}

func (c *WordChecker) Check(_ context.Context, req models.CheckRequest) (*models.CheckResponse, error) {
	c.mu.Lock()
	c.texts = append(c.texts, req.Text)
	c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	resp := &models.CheckResponse{
		Software: models.Software{Name: "LanguageTool", Version: "6.4", APIVersion: 1},
		Matches:  []models.Match{},
	}
	runes := []rune(req.Text)
	for _, word := range sortedKeys(c.Replace) {
		w := []rune(word)
		for i := 0; i+len(w) <= len(runes); i++ {
			if string(runes[i:i+len(w)]) != word || !wordBoundary(runes, i, i+len(w)) {
				continue
			}
			resp.Matches = append(resp.Matches, models.Match{
				Offset:       i,
				Length:       len(w),
				Message:      "Possible spelling mistake found.",
				Replacements: []models.Replacement{{Value: c.Replace[word]}},
				Rule:         models.MatchRule{ID: "MORFOLOGIK_RULE", Description: "Possible spelling mistake"},
			})
		}
	}
	return resp, nil
}

// Texts returns the texts checked so far.
func (c *WordChecker) Texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.texts...)
}

func wordBoundary(runes []rune, start, end int) bool {
	if start > 0 && unicode.IsLetter(runes[start-1]) {
		return false
	}
	return end == len(runes) || !unicode.IsLetter(runes[end])
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
