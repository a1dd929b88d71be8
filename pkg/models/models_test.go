package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedSpans(t *testing.T) {
	spans := ProtectedSpans{
		{Start: 5, End: 10, Kind: SpanQuote},
		{Start: 20, End: 24, Kind: SpanFootnoteMarker},
	}

	tests := []struct {
		name   string
		offset int
		length int
		want   bool
	}{
		{"before all spans", 0, 3, false},
		{"ends at span start", 2, 3, false},
		{"reaches into span", 3, 3, true},
		{"inside span", 6, 1, true},
		{"covers span", 0, 30, true},
		{"starts at span end", 10, 2, false},
		{"insertion at span start", 5, 0, false},
		{"insertion inside span", 7, 0, true},
		{"insertion at span end", 10, 0, false},
		{"marker", 21, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spans.Protected(tt.offset, tt.length))
		})
	}

	assert.True(t, spans.Contains(20))
	assert.False(t, spans.Contains(24))
	assert.Len(t, spans.OfKind(SpanFootnoteMarker), 1)
}

func TestMatchEdit(t *testing.T) {
	m := Match{
		Offset: 20,
		Length: 4,
		Replacements: []Replacement{
			{Value: "doesn't"},
			{Value: "don't"},
		},
	}
	edit, ok := m.Edit()
	require.True(t, ok)
	assert.Equal(t, Edit{Offset: 20, Length: 4, Replacement: "doesn't"}, edit)

	_, ok = Match{Offset: 1, Length: 2}.Edit()
	assert.False(t, ok)
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"es", "es", false},
		{"Spanish", "es", false},
		{"en-us", "en-US", false},
		{"en_US", "en-US", false},
		{"English (US)", "en-US", false},
		{"fr", "fr", false},
		{"DE", "de", false},
		{"it", "", true},
		{"not a language!", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Code)
		})
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("connection refused")

	svc := fmt.Errorf("chunk 2: %w", NewServiceError("check failed", 0, cause))
	assert.ErrorIs(t, svc, ErrService)
	assert.ErrorIs(t, svc, cause)
	assert.NotErrorIs(t, svc, ErrInput)

	var serviceErr *ServiceError
	require.ErrorAs(t, svc, &serviceErr)
	assert.Equal(t, "check failed", serviceErr.Message)

	assert.ErrorIs(t, NewInputError("bad zip", nil), ErrInput)
	assert.ErrorIs(t, NewSaveError("write", cause), ErrSave)
	assert.ErrorIs(t, NewBadRequestError("missing text"), ErrBadRequest)
	assert.ErrorIs(t, NewNotFoundError("document"), ErrNotFound)
	assert.Contains(t, NewServiceError("bad status", 503, nil).Error(), "503")
}
