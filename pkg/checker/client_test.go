package checker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notaspie/notaspie/config"
	"github.com/notaspie/notaspie/pkg/models"
)

const dontResponse = `{
  "software": {"name": "LanguageTool", "version": "6.4"},
  "matches": [{
    "message": "Did you mean \"doesn't\"?",
    "offset": %d,
    "length": 4,
    "replacements": [{"value": "doesn't"}, {"value": "don't"}],
    "context": {"text": "He was happy and he dont know.", "offset": 20, "length": 4},
    "rule": {"id": "HE_VERB_AGR", "description": "Agreement"}
  }]
}`

func testClient(url string, mutate func(*config.CheckerConfig)) *Client {
	cfg := config.CheckerConfig{URL: url, Timeout: 5, OffsetUnit: "rune"}
	if mutate != nil {
		mutate(&cfg)
	}
	return newClient(cfg, time.Millisecond, 5*time.Millisecond)
}

func TestCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/check", r.URL.Path)
		assert.Equal(t, config.UserAgent(), r.UserAgent())
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "He was happy and he dont know.", r.PostForm.Get("text"))
		assert.Equal(t, "en-US", r.PostForm.Get("language"))
		assert.Equal(t, "false", r.PostForm.Get("enabledOnly"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, dontResponse, 20)
	}))
	defer server.Close()

	c := testClient(server.URL+"/", nil)
	resp, err := c.Check(context.Background(), models.CheckRequest{
		Text:     "He was happy and he dont know.",
		Language: "en-US",
	})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)

	m := resp.Matches[0]
	assert.Equal(t, 20, m.Offset)
	assert.Equal(t, 4, m.Length)
	assert.Equal(t, "HE_VERB_AGR", m.Rule.ID)
	edit, ok := m.Edit()
	require.True(t, ok)
	assert.Equal(t, "doesn't", edit.Replacement)
}

func TestCheckUTF16Offsets(t *testing.T) {
	text := "😀 he dont know"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the emoji is two UTF-16 code units, so "dont" starts at unit 6
		fmt.Fprintf(w, dontResponse, 6)
	}))
	defer server.Close()

	c := testClient(server.URL, func(cfg *config.CheckerConfig) { cfg.OffsetUnit = "utf16" })
	resp, err := c.Check(context.Background(), models.CheckRequest{Text: text, Language: "en-US"})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, 5, resp.Matches[0].Offset)
	assert.Equal(t, 4, resp.Matches[0].Length)
	assert.Equal(t, "dont", string([]rune(text)[5:9]))
}

func TestToRuneOffsets(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		offset     int
		length     int
		wantOffset int
		wantLength int
	}{
		{"ascii", "abc def", 4, 3, 4, 3},
		{"bmp multibyte", "año bueno", 4, 5, 4, 5},
		{"astral before", "𝄞 x", 3, 1, 2, 1},
		{"astral inside", "a𝄞b", 1, 2, 1, 1},
		{"out of range untouched", "abc", 2, 5, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := []models.Match{{Offset: tt.offset, Length: tt.length}}
			toRuneOffsets(tt.text, matches)
			assert.Equal(t, tt.wantOffset, matches[0].Offset)
			assert.Equal(t, tt.wantLength, matches[0].Length)
		})
	}
}

func TestCheckServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "internal", http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "bad request",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Error: Missing 'language' parameter", http.StatusBadRequest)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>not json</html>"))
			},
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := testClient(server.URL, nil).
				Check(context.Background(), models.CheckRequest{Text: "x", Language: "es"})
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrService)

			var serviceErr *models.ServiceError
			require.True(t, errors.As(err, &serviceErr))
			assert.Equal(t, tt.wantStatus, serviceErr.StatusCode)
		})
	}
}

func TestCheckTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := testClient(url, nil).
		Check(context.Background(), models.CheckRequest{Text: "x", Language: "es"})
	assert.ErrorIs(t, err, models.ErrService)
}

func TestCheckRateLimited(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprintf(w, dontResponse, 20)
	}))
	defer server.Close()

	c := testClient(server.URL, func(cfg *config.CheckerConfig) { cfg.RateLimitRetries = 2 })
	resp, err := c.Check(context.Background(), models.CheckRequest{Text: "x", Language: "en-US"})
	require.NoError(t, err)
	assert.Len(t, resp.Matches, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCheckRateLimitExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := testClient(server.URL, func(cfg *config.CheckerConfig) { cfg.RateLimitRetries = 2 })
	_, err := c.Check(context.Background(), models.CheckRequest{Text: "x", Language: "en-US"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrService)

	var serviceErr *models.ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, http.StatusTooManyRequests, serviceErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())

	// without rate limit retries a 429 fails at once
	calls.Store(0)
	_, err = testClient(server.URL, nil).
		Check(context.Background(), models.CheckRequest{Text: "x", Language: "en-US"})
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCheckDefaultConfigMakesOneCall(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		status int
	}{
		{"rate limited", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			checkerCfg := cfg.Checker
			checkerCfg.URL = server.URL
			_, err := NewClient(checkerCfg).
				Check(context.Background(), models.CheckRequest{Text: "x", Language: "en-US"})
			assert.ErrorIs(t, err, models.ErrService)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestCheckDefaultConfigUTF16Offsets(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	text := "😀 he dont know"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, dontResponse, 6)
	}))
	defer server.Close()

	checkerCfg := cfg.Checker
	checkerCfg.URL = server.URL
	resp, err := NewClient(checkerCfg).Check(context.Background(), models.CheckRequest{Text: text, Language: "en-US"})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, 5, resp.Matches[0].Offset)
}
