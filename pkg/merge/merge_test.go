package merge

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/protect"
)

func TestMergeEmptyEditsIsIdentity(t *testing.T) {
	gofakeit.Seed(0)
	m := New(models.OverlapLastWriteWins)
	for i := 0; i < 20; i++ {
		original := gofakeit.Paragraph(2, 3, 8, "\n")
		result := m.Merge(original, nil, nil)
		assert.Equal(t, original, result.Text)
		assert.Zero(t, result.Applied)
		assert.Zero(t, result.Skipped)
	}
}

func TestMergeSingleEditIsSplice(t *testing.T) {
	tests := []struct {
		name     string
		original string
		edit     models.Edit
		want     string
	}{
		{
			name:     "grammar fix",
			original: "He was happy and he dont know.",
			edit:     models.Edit{Offset: 20, Length: 4, Replacement: "doesn't"},
			want:     "He was happy and he doesn't know.",
		},
		{
			name:     "insertion",
			original: "abc",
			edit:     models.Edit{Offset: 3, Length: 0, Replacement: "d"},
			want:     "abcd",
		},
		{
			name:     "deletion",
			original: "the the cat",
			edit:     models.Edit{Offset: 0, Length: 4, Replacement: ""},
			want:     "the cat",
		},
		{
			name:     "multibyte offsets are runes",
			original: "El niño esta aquí.",
			edit:     models.Edit{Offset: 8, Length: 4, Replacement: "está"},
			want:     "El niño está aquí.",
		},
	}
	m := New("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.Merge(tt.original, []models.Edit{tt.edit}, nil)
			assert.Equal(t, tt.want, result.Text)
			assert.Equal(t, 1, result.Applied)

			runes := []rune(tt.original)
			splice := string(runes[:tt.edit.Offset]) + tt.edit.Replacement + string(runes[tt.edit.End():])
			assert.Equal(t, splice, result.Text)
		})
	}
}

// randomEdits returns non-overlapping edits over a text of n runes, with
// replacements whose length differs from the replaced range.
func randomEdits(r *rand.Rand, n int) []models.Edit {
	var edits []models.Edit
	pos := 0
	for pos < n {
		pos += r.Intn(5)
		length := r.Intn(4)
		if pos+length > n {
			break
		}
		edits = append(edits, models.Edit{
			Offset:      pos,
			Length:      length,
			Replacement: strings.Repeat("x", length+1+r.Intn(3)),
		})
		pos += length + 1
	}
	return edits
}

// randomOverlappingEdits returns edits at random positions over a text of n
// runes. Ranges may overlap and share offsets.
func randomOverlappingEdits(r *rand.Rand, n int) []models.Edit {
	edits := make([]models.Edit, 1+r.Intn(8))
	for i := range edits {
		offset := r.Intn(n + 1)
		length := r.Intn(6)
		if offset+length > n {
			length = n - offset
		}
		edits[i] = models.Edit{
			Offset:      offset,
			Length:      length,
			Replacement: strings.Repeat("y", r.Intn(3)),
		}
	}
	return edits
}

func TestMergeOrderIndependence(t *testing.T) {
	gofakeit.Seed(42)
	r := rand.New(rand.NewSource(42))
	m := New(models.OverlapReject)

	for i := 0; i < 50; i++ {
		original := gofakeit.Sentence(12)
		edits := randomEdits(r, len([]rune(original)))
		want := m.Merge(original, edits, nil)
		assert.Zero(t, want.Skipped)

		shuffled := make([]models.Edit, len(edits))
		copy(shuffled, edits)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := m.Merge(original, shuffled, nil)
		assert.Equal(t, want.Text, got.Text)
		assert.Equal(t, New(models.OverlapLastWriteWins).Merge(original, shuffled, nil).Text, got.Text)
	}
}

// applyAscending splices edits left to right without adjusting offsets.
func applyAscending(original string, edits []models.Edit) string {
	text := []rune(original)
	for _, e := range edits {
		if e.End() > len(text) {
			continue
		}
		text = append(append(append([]rune{}, text[:e.Offset]...), []rune(e.Replacement)...), text[e.End():]...)
	}
	return string(text)
}

func TestAscendingApplicationBreaks(t *testing.T) {
	original := "I has a apple and he dont know."
	edits := []models.Edit{
		{Offset: 2, Length: 3, Replacement: "have"},
		{Offset: 6, Length: 1, Replacement: "an"},
		{Offset: 21, Length: 4, Replacement: "doesn't"},
	}
	want := "I have an apple and he doesn't know."

	assert.Equal(t, want, New("").Merge(original, edits, nil).Text)
	assert.NotEqual(t, want, applyAscending(original, edits))
}

func TestMergeProtectedSpansUntouched(t *testing.T) {
	p := protect.New(protect.QuoteVeto, nil)
	m := New("")

	original := `She said "he dont care"[^1][^2] yesterday, he dont know.`
	guard := p.Guard(original)

	edits := []models.Edit{
		// inside the quote: a false positive
		{Offset: 13, Length: 4, Replacement: "doesn't"},
		// across the adjacent markers
		{Offset: 24, Length: 6, Replacement: "X"},
		// insertion between the two markers is a boundary, not inside
		{Offset: 27, Length: 0, Replacement: ","},
		// outside everything
		{Offset: 46, Length: 4, Replacement: "doesn't"},
	}
	result := m.Merge(original, edits, guard)

	assert.Equal(t, `She said "he dont care"[^1],[^2] yesterday, he doesn't know.`, result.Text)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 2, result.Skipped)
	for _, span := range guard {
		protected := string([]rune(original)[span.Start:span.End])
		assert.Contains(t, result.Text, protected)
	}
}

func TestMergeProtectedSpansProperty(t *testing.T) {
	gofakeit.Seed(7)
	r := rand.New(rand.NewSource(7))
	p := protect.New(protect.QuoteVeto, nil)

	for i := 0; i < 50; i++ {
		words := strings.Fields(gofakeit.Sentence(10))
		for j := range words {
			switch r.Intn(5) {
			case 0:
				words[j] += "[^" + gofakeit.DigitN(1) + "]"
			case 1:
				words[j] = `"` + words[j] + `"`
			}
		}
		original := strings.Join(words, " ")
		guard := p.Guard(original)
		n := len([]rune(original))

		for _, policy := range []models.OverlapPolicy{models.OverlapLastWriteWins, models.OverlapReject} {
			m := New(policy)
			for _, edits := range [][]models.Edit{randomEdits(r, n), randomOverlappingEdits(r, n)} {
				result := m.Merge(original, edits, guard)
				for _, span := range guard {
					protected := string([]rune(original)[span.Start:span.End])
					assert.Contains(t, result.Text, protected, "%s: original %q edits %v", policy, original, edits)
				}
			}
		}
	}
}

func TestMergeOverlapKeepsShiftedMarker(t *testing.T) {
	original := "abcdefghij[^1] end"
	guard := protect.MarkerSpans(original)
	edits := []models.Edit{
		{Offset: 5, Length: 5, Replacement: "X"},
		// reaches past the first edit's replacement into the marker
		{Offset: 3, Length: 4, Replacement: "Y"},
	}

	result := New(models.OverlapLastWriteWins).Merge(original, edits, guard)
	assert.Equal(t, "abcdeX[^1] end", result.Text)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Skipped)

	// without a guard the later edit splices over the shifted text
	unguarded := New(models.OverlapLastWriteWins).Merge(original, edits, nil)
	assert.Equal(t, "abcY^1] end", unguarded.Text)
	assert.Equal(t, 2, unguarded.Applied)
}

func TestMergeOverlapPolicies(t *testing.T) {
	original := "abcdefgh"
	edits := []models.Edit{
		{Offset: 4, Length: 2, Replacement: "XYZ"},
		{Offset: 2, Length: 3, Replacement: "Q"},
	}

	lww := New(models.OverlapLastWriteWins).Merge(original, edits, nil)
	assert.Equal(t, "abQYZgh", lww.Text)
	assert.Equal(t, 2, lww.Applied)

	reject := New(models.OverlapReject).Merge(original, edits, nil)
	assert.Equal(t, "abcdXYZgh", reject.Text)
	assert.Equal(t, 1, reject.Applied)
	assert.Equal(t, 1, reject.Skipped)
}

func TestMergeOutOfRange(t *testing.T) {
	original := "short"
	edits := []models.Edit{
		{Offset: 3, Length: 10, Replacement: "x"},
		{Offset: -1, Length: 1, Replacement: "x"},
		{Offset: 9, Length: 0, Replacement: "x"},
		{Offset: 0, Length: 1, Replacement: "S"},
	}
	result := New("").Merge(original, edits, nil)
	assert.Equal(t, "Short", result.Text)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 3, result.Skipped)
}

func TestMergeSameOffsetInsertions(t *testing.T) {
	edits := []models.Edit{
		{Offset: 1, Length: 0, Replacement: "b"},
		{Offset: 1, Length: 0, Replacement: "a"},
	}
	reversed := []models.Edit{edits[1], edits[0]}
	m := New(models.OverlapReject)
	assert.Equal(t, m.Merge("xy", edits, nil).Text, m.Merge("xy", reversed, nil).Text)
}

func TestMergeMatches(t *testing.T) {
	matches := []models.Match{
		{
			Offset:       20,
			Length:       4,
			Message:      "Possible agreement error",
			Replacements: []models.Replacement{{Value: "doesn't"}, {Value: "don't"}},
		},
		{Offset: 0, Length: 2, Message: "No suggestion"},
	}
	result := New("").MergeMatches("He was happy and he dont know.", matches, nil)
	require.Equal(t, "He was happy and he doesn't know.", result.Text)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Skipped)
}
