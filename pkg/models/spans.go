package models

// SpanKind tells which protection pass detected a span.
type SpanKind int

const (
	SpanQuote SpanKind = iota
	SpanFootnoteMarker
)

func (k SpanKind) String() string {
	switch k {
	case SpanQuote:
		return "quote"
	case SpanFootnoteMarker:
		return "footnote_marker"
	default:
		return "unknown"
	}
}

// ProtectedSpan is a half-open rune range [Start, End) that must never be altered.
type ProtectedSpan struct {
	Start int      `json:"start"`
	End   int      `json:"end"`
	Kind  SpanKind `json:"kind"`
}

// Guard vetoes edits. Protected reports whether an edit of length runes at
// offset would alter protected content.
type Guard interface {
	Protected(offset, length int) bool
}

// GuardFunc adapts an ordinary function to a Guard.
type GuardFunc func(offset, length int) bool

func (f GuardFunc) Protected(offset, length int) bool {
	return f(offset, length)
}

// NoGuard protects nothing.
var NoGuard Guard = GuardFunc(func(int, int) bool { return false })

// ProtectedSpans is the unified set of spans from every detection pass.
// Spans of one kind never overlap; spans of different kinds may.
type ProtectedSpans []ProtectedSpan

var _ Guard = ProtectedSpans{}

// Contains reports whether offset falls inside any span.
func (ps ProtectedSpans) Contains(offset int) bool {
	for _, s := range ps {
		if offset >= s.Start && offset < s.End {
			return true
		}
	}
	return false
}

// Protected reports whether an edit intersects a span. A zero-length
// insertion is protected only when it falls strictly inside a span, since
// inserting at a boundary leaves the span's content intact.
func (ps ProtectedSpans) Protected(offset, length int) bool {
	end := offset + length
	for _, s := range ps {
		if length == 0 {
			if offset > s.Start && offset < s.End {
				return true
			}
			continue
		}
		if offset < s.End && end > s.Start {
			return true
		}
	}
	return false
}

// Window returns the spans reaching into [start, end], moved so start becomes
// offset 0. Spans are not clipped: one running past either end keeps
// protecting the edges of the window.
func (ps ProtectedSpans) Window(start, end int) ProtectedSpans {
	var out ProtectedSpans
	for _, s := range ps {
		if s.End < start || s.Start > end {
			continue
		}
		out = append(out, ProtectedSpan{Start: s.Start - start, End: s.End - start, Kind: s.Kind})
	}
	return out
}

// OfKind returns the spans of a single kind.
func (ps ProtectedSpans) OfKind(kind SpanKind) ProtectedSpans {
	var out ProtectedSpans
	for _, s := range ps {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// RestoreMap records the placeholders a protector put in a text, in the
// order they were created.
type RestoreMap struct {
	Tokens    []string          `json:"tokens"`
	Originals map[string]string `json:"originals"`
}

func NewRestoreMap() *RestoreMap {
	return &RestoreMap{Originals: map[string]string{}}
}

// Add records token as standing in for original.
func (m *RestoreMap) Add(token, original string) {
	m.Tokens = append(m.Tokens, token)
	m.Originals[token] = original
}

func (m *RestoreMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Tokens)
}
