package chesscom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/owenk/chessinsights/internal/logger"
)

const defaultBaseURL = "https://api.chess.com"

// referenceZone is the zone the upstream uses to partition monthly archives.
// Computing year/month anywhere else miscounts games near month boundaries.
const referenceZone = "America/Los_Angeles"

// Client fetches player game archives from the public chess.com API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
	loc        *time.Location
	now        func() time.Time
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryPolicy sets the maximum attempt count (>= 1) and the fixed delay
// between attempts.
func WithRetryPolicy(maxRetries int, retryDelay time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 1 {
			c.maxRetries = maxRetries
		}
		if retryDelay >= 0 {
			c.retryDelay = retryDelay
		}
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithClock overrides the time source. Used by tests to pin the archive month.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a Client with sane defaults. Redirects are not followed: the
// upstream answers 301 for renamed players, which is a permanent condition.
func New(opts ...Option) *Client {
	log := logger.Default().WithPrefix("chesscom")

	loc, err := time.LoadLocation(referenceZone)
	if err != nil {
		log.Warn("could not load zone %s, falling back to UTC: %v", referenceZone, err)
		loc = time.UTC
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL:    defaultBaseURL,
		maxRetries: 3,
		retryDelay: time.Second,
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
		loc:        loc,
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ArchiveURL returns the monthly archive endpoint for username, with year and
// zero-padded month computed in the upstream's reference zone.
func (c *Client) ArchiveURL(username string) string {
	t := c.now().In(c.loc)
	return fmt.Sprintf("%s/pub/player/%s/games/%d/%02d",
		c.baseURL, url.PathEscape(strings.ToLower(username)), t.Year(), int(t.Month()))
}

// FetchGames retrieves the current month's games for a player, retrying
// transient failures up to the configured attempt budget with a fixed delay
// between attempts. A 404 fails immediately with ErrUserNotFound; a redirect
// fails immediately with ErrFetchFailed.
func (c *Client) FetchGames(ctx context.Context, username string) ([]Game, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", username)
	target := c.ArchiveURL(username)
	log.Debug("fetching monthly archive: %s", target)

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		games, err := c.fetchOnce(ctx, target)
		if err == nil {
			log.Info("fetched %d games on attempt %d", len(games), attempt)
			return games, nil
		}
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrFetchFailed) {
			log.Warn("aborting fetch: %v", err)
			return nil, err
		}

		lastErr = err
		log.Warn("attempt %d/%d failed: %v", attempt, c.maxRetries, err)
		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrMaxRetriesExceeded, c.maxRetries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, target string) ([]Game, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom")

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	// Games accumulate during the month; every call must see the latest data.
	req.Header.Set("Cache-Control", "no-store")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("archive response received in %v, status=%d", time.Since(start), resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusOK:
		// handled below
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUserNotFound
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("archive status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Games []Game `json:"games"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}

	games := make([]Game, 0, len(payload.Games))
	dropped := 0
	for _, g := range payload.Games {
		if !g.valid() {
			dropped++
			continue
		}
		games = append(games, g)
	}
	if dropped > 0 {
		log.Warn("dropped %d malformed archive entries", dropped)
	}
	return games, nil
}
