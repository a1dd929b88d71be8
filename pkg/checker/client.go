// Package checker talks to a LanguageTool-compatible grammar checking service.
package checker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/notaspie/notaspie/config"
	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/models"
)

var log = internal.GetLogger()

// ErrRateLimited is wrapped by the ServiceError returned for a 429 response.
var ErrRateLimited = errors.New("rate limited by grammar checker")

const checkPath = "/v2/check"

// maxErrorBody bounds how much of an error response ends up in a message.
const maxErrorBody = 512

var _ models.Checker = &Client{}

type Client struct {
	baseURL     string
	enabledOnly bool
	offsetUnit  OffsetUnit
	httpClient  *http.Client
	rateLimit   retrypolicy.RetryPolicy[*models.CheckResponse]
	versionOnce sync.Once
}

// NewClient creates a client for the service configured in cfg.
func NewClient(cfg config.CheckerConfig) *Client {
	return newClient(cfg, time.Second, 10*time.Second)
}

func newClient(cfg config.CheckerConfig, backoff, maxBackoff time.Duration) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.URL, "/"),
		enabledOnly: cfg.EnabledOnly,
		offsetUnit:  OffsetUnit(cfg.OffsetUnit),
		httpClient: NewRetryableHTTPClient(
			cfg.RetryMax,
			time.Duration(cfg.Timeout)*time.Second,
		),
	}
	if cfg.RateLimitRetries > 0 {
		c.rateLimit = retrypolicy.Builder[*models.CheckResponse]().
			HandleErrors(ErrRateLimited).
			WithBackoff(backoff, maxBackoff).
			WithMaxRetries(cfg.RateLimitRetries).
			Build()
	}
	return c
}

// Check sends req.Text to the service. Any failure is returned as a
// *models.ServiceError. Match offsets in the response are runes into
// req.Text whatever unit the service uses.
func (c *Client) Check(
	ctx context.Context,
	req models.CheckRequest,
) (*models.CheckResponse, error) {
	if c.rateLimit == nil {
		return c.check(ctx, req)
	}

	resp, err := failsafe.Get(func() (*models.CheckResponse, error) {
		return c.check(ctx, req)
	}, c.rateLimit)
	if err != nil {
		if !errors.Is(err, models.ErrService) {
			err = models.NewServiceError("rate limit retries exhausted", http.StatusTooManyRequests, err)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) check(
	ctx context.Context,
	req models.CheckRequest,
) (*models.CheckResponse, error) {
	form := url.Values{}
	form.Set("text", req.Text)
	form.Set("language", req.Language)
	form.Set("enabledOnly", strconv.FormatBool(req.EnabledOnly || c.enabledOnly))

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+checkPath,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, models.NewServiceError("failed to build check request", 0, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", config.UserAgent())

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, models.NewServiceError("check request failed", 0, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewServiceError("failed to read check response", resp.StatusCode, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		log.Warnf("grammar checker rate limited the request (%s)", req.Language)
		return nil, models.NewServiceError("rate limited", resp.StatusCode, ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.NewServiceError(errorMessage(bodyBytes), resp.StatusCode, nil)
	}

	var response models.CheckResponse
	if err := json.Unmarshal(bodyBytes, &response); err != nil {
		return nil, models.NewServiceError("failed to decode check response", resp.StatusCode, err)
	}

	c.versionOnce.Do(func() { checkServiceVersion(response.Software) })

	if c.offsetUnit == OffsetUTF16 {
		toRuneOffsets(req.Text, response.Matches)
	}

	log.Debugf(
		"checked %s of %s text in %s: %d matches",
		humanize.Bytes(uint64(len(req.Text))),
		req.Language,
		time.Since(start).Round(time.Millisecond),
		len(response.Matches),
	)

	return &response, nil
}

func errorMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "unexpected status from grammar checker"
	}
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("grammar checker responded: %s", msg)
}
