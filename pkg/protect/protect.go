// Package protect keeps quoted material and footnote markers away from the
// grammar checker's edits.
//
// Two strategies coexist. Quotes are masked: each quoted substring is swapped
// for an opaque placeholder before the text is checked and swapped back
// afterwards. Footnote markers stay in the text and are protected by offset
// veto: the merger drops any edit that would touch them. Placeholders are
// vetoed the same way, so an edit can never damage one.
package protect

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/models"
)

var log = internal.GetLogger()

// QuoteMode selects how quoted material is protected.
type QuoteMode string

const (
	QuoteMask QuoteMode = "mask"
	QuoteVeto QuoteMode = "veto"
	QuoteOff  QuoteMode = "off"
)

const placeholderTag = "QUOTE"

// DefaultQuoteStyles are the opening/closing pairs treated as double quotes.
var DefaultQuoteStyles = []string{`""`, `“”`, `«»`}

// markerPattern matches inline footnote markers such as [^1] or [^note].
var markerPattern = regexp.MustCompile(`\[\^[^\[\]\s]+\]`)

var _ models.Protector = &Protector{}

// Protector detects protected spans. The zero value is not usable; use New.
type Protector struct {
	mode     QuoteMode
	quotes   *regexp.Regexp
	sentinel *regexp.Regexp
}

// New creates a Protector. styles are two-rune strings holding an opening and
// a closing quote; invalid entries are ignored and an empty list means
// DefaultQuoteStyles.
func New(mode QuoteMode, styles []string) *Protector {
	if mode == "" {
		mode = QuoteMask
	}
	return &Protector{
		mode:     mode,
		quotes:   quotePattern(styles),
		sentinel: regexp.MustCompile(`<<<[A-Z]+_\d+>>>`),
	}
}

// quotePattern builds a non-greedy pattern for every quote style. A quote
// never spans a line break.
func quotePattern(styles []string) *regexp.Regexp {
	if len(styles) == 0 {
		styles = DefaultQuoteStyles
	}
	var alts []string
	for _, style := range styles {
		runes := []rune(style)
		if len(runes) != 2 {
			log.Warnf("ignoring quote style %q: want an opening and a closing quote", style)
			continue
		}
		open, closing := regexp.QuoteMeta(string(runes[0])), regexp.QuoteMeta(string(runes[1]))
		alts = append(alts, fmt.Sprintf(`%s[^%s\n]*?%s`, open, closing, closing))
	}
	if len(alts) == 0 {
		return quotePattern(DefaultQuoteStyles)
	}
	return regexp.MustCompile(strings.Join(alts, "|"))
}

func (p *Protector) Mode() QuoteMode {
	return p.mode
}

// Protect replaces every quoted substring with a placeholder unique within
// text. Outside mask mode text is returned as is with an empty map.
func (p *Protector) Protect(text string) (string, *models.RestoreMap) {
	restore := models.NewRestoreMap()
	if p.mode != QuoteMask {
		return text, restore
	}

	tag := placeholderTag
	for strings.Contains(text, "<<<"+tag+"_") {
		tag += "X"
	}

	var b strings.Builder
	last := 0
	for i, loc := range p.quotes.FindAllStringIndex(text, -1) {
		token := fmt.Sprintf("<<<%s_%d>>>", tag, i)
		restore.Add(token, text[loc[0]:loc[1]])
		b.WriteString(text[last:loc[0]])
		b.WriteString(token)
		last = loc[1]
	}
	if restore.Len() == 0 {
		return text, restore
	}
	b.WriteString(text[last:])
	log.Debugf("masked %d quoted spans", restore.Len())
	return b.String(), restore
}

// Restore puts the original quoted substrings back. A placeholder that was
// altered after masking can't be found and stays in the text; use Missing to
// detect that.
func (p *Protector) Restore(text string, m *models.RestoreMap) string {
	if m.Len() == 0 {
		return text
	}
	pairs := make([]string, 0, 2*m.Len())
	for _, token := range m.Tokens {
		pairs = append(pairs, token, m.Originals[token])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Missing returns the placeholders of m that no longer appear in text.
func (p *Protector) Missing(text string, m *models.RestoreMap) []string {
	if m.Len() == 0 {
		return nil
	}
	var missing []string
	for _, token := range m.Tokens {
		if !strings.Contains(text, token) {
			missing = append(missing, token)
		}
	}
	return missing
}

// Guard returns the spans of text no edit may touch: footnote markers, and
// depending on the mode either placeholders or the quotes themselves.
func (p *Protector) Guard(text string) models.ProtectedSpans {
	var spans models.ProtectedSpans
	switch p.mode {
	case QuoteMask:
		spans = append(spans, runeSpans(text, p.sentinel, models.SpanQuote)...)
	case QuoteVeto:
		spans = append(spans, runeSpans(text, p.quotes, models.SpanQuote)...)
	}
	return append(spans, MarkerSpans(text)...)
}

// Spans returns the quote and footnote marker spans of an unmasked text.
func (p *Protector) Spans(text string) models.ProtectedSpans {
	spans := runeSpans(text, p.quotes, models.SpanQuote)
	return append(spans, MarkerSpans(text)...)
}

// MarkerSpans returns the rune spans of every footnote marker in text.
func MarkerSpans(text string) models.ProtectedSpans {
	return runeSpans(text, markerPattern, models.SpanFootnoteMarker)
}

// IsProtected reports whether the rune offset falls inside a footnote marker.
func IsProtected(offset int, text string) bool {
	return MarkerSpans(text).Contains(offset)
}

// runeSpans converts the byte matches of re into rune-offset spans.
func runeSpans(text string, re *regexp.Regexp, kind models.SpanKind) models.ProtectedSpans {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make(models.ProtectedSpans, 0, len(locs))
	pos, runes := 0, 0
	for _, loc := range locs {
		runes += utf8.RuneCountInString(text[pos:loc[0]])
		start := runes
		runes += utf8.RuneCountInString(text[loc[0]:loc[1]])
		pos = loc[1]
		spans = append(spans, models.ProtectedSpan{Start: start, End: runes, Kind: kind})
	}
	return spans
}
