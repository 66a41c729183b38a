// Package feed is a typed client for the remote feed service (Adafruit IO
// REST API v2). The service stores every value as an untyped string; this
// package is where those strings become models.Value.
package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/picarx/gateway/internal/config"
	"github.com/picarx/gateway/internal/errors"
	"github.com/picarx/gateway/internal/httpx"
	"github.com/picarx/gateway/internal/models"
)

// Publisher sends a single scalar value to a feed.
type Publisher interface {
	Publish(ctx context.Context, key, value string) error
}

// datum is one element of GET /feeds/{key}/data.
type datum struct {
	Value     any    `json:"value"`
	CreatedAt string `json:"created_at"`
}

type publishRequest struct {
	Value string `json:"value"`
}

// Client talks to the feed service over REST.
type Client struct {
	http     *httpx.Client
	base     string
	username string
	key      string
}

// NewClient creates a Client from the feed configuration.
func NewClient(cfg config.Feed) *Client {
	return &Client{
		http:     httpx.NewClient(cfg.Timeout),
		base:     strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		key:      cfg.Key,
	}
}

// LatestHistory returns the last limit readings of feed key, oldest first.
// Values that are not numbers are kept as models.Unavailable.
func (c *Client) LatestHistory(ctx context.Context, key string, limit int) ([]models.Reading, error) {
	if limit < 1 {
		return nil, errors.Newf(errors.ErrInvalidArgument, "limit must be >= 1, got %d", limit)
	}

	data, err := c.data(ctx, key, limit)
	if err != nil {
		return nil, err
	}

	// the service answers most-recent-first
	readings := make([]models.Reading, len(data))
	for i, d := range data {
		readings[len(data)-1-i] = toReading(d)
	}
	return readings, nil
}

// LatestValue returns the most recent raw value of feed key. Any failure,
// including an empty feed, is reported as absence.
func (c *Client) LatestValue(ctx context.Context, key string) (string, bool) {
	data, err := c.data(ctx, key, 1)
	if err != nil {
		slog.Debug("latest feed value unavailable", "feed", key, "error", err)
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return rawString(data[0].Value), true
}

// Publish sends value to feed key. It makes one attempt.
func (c *Client) Publish(ctx context.Context, key, value string) error {
	if err := c.credentials(); err != nil {
		return err
	}

	start := time.Now()
	err := c.http.PostJSON(ctx, c.dataURL(key, 0), c.header(), publishRequest{Value: value}, nil)
	if err != nil {
		return errors.Wrap(errors.ErrRemoteUnavailable, fmt.Errorf("publish to %s: %w", key, err))
	}

	slog.Info("feed value published",
		"feed", key,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Healthy returns nil when the feed service answers for the configured
// user.
func (c *Client) Healthy(ctx context.Context) error {
	if err := c.credentials(); err != nil {
		return err
	}
	resp, err := c.http.Get(ctx, c.base+"/"+url.PathEscape(c.username)+"/feeds?limit=1", c.header())
	if err != nil {
		return errors.Wrap(errors.ErrRemoteUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

func (c *Client) data(ctx context.Context, key string, limit int) ([]datum, error) {
	if err := c.credentials(); err != nil {
		return nil, err
	}

	var data []datum
	if err := c.http.GetJSON(ctx, c.dataURL(key, limit), c.header(), &data); err != nil {
		return nil, errors.Wrap(errors.ErrRemoteUnavailable, fmt.Errorf("read %s: %w", key, err))
	}
	return data, nil
}

func (c *Client) credentials() error {
	if c.username == "" || c.key == "" {
		return errors.New(errors.ErrMisconfiguredCredentials)
	}
	return nil
}

func (c *Client) header() http.Header {
	return http.Header{"X-AIO-Key": {c.key}}
}

func (c *Client) dataURL(key string, limit int) string {
	u := c.base + "/" + url.PathEscape(c.username) + "/feeds/" + url.PathEscape(key) + "/data"
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	return u
}

func toReading(d datum) models.Reading {
	raw := rawString(d.Value)
	r := models.Reading{
		Label: timeLabel(d.CreatedAt),
		Raw:   raw,
		Value: models.Coerce(raw),
	}
	if t, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
		r.Time = t.UTC()
	}
	return r
}

// timeLabel keeps the time of day of an ISO-8601 timestamp.
func timeLabel(createdAt string) string {
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		return models.Label(t)
	}
	if len(createdAt) >= 19 {
		return createdAt[11:19]
	}
	return createdAt
}

// rawString renders a JSON value as the text the feed stored. The service
// normally sends strings, but numbers and null show up for some feeds.
func rawString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
