package feed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picarx/gateway/internal/config"
	"github.com/picarx/gateway/internal/errors"
	"github.com/picarx/gateway/internal/feed"
	"github.com/picarx/gateway/internal/models"
)

// fakeService mimics the feed service for one user.
type fakeService struct {
	t        *testing.T
	data     map[string]string // feed key -> JSON body for GET
	status   int               // forced status for every request, 0 = normal
	calls    atomic.Int64
	lastPost atomic.Value // map[string]string
	lastPath atomic.Value // string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	f.lastPath.Store(r.URL.Path)

	if r.Header.Get("X-AIO-Key") != "aio_secret" {
		http.Error(w, `{"error":"not authorized"}`, http.StatusUnauthorized)
		return
	}
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if r.URL.Path == "/operator/feeds" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		key := r.URL.Path[len("/operator/feeds/") : len(r.URL.Path)-len("/data")]
		body, ok := f.data[key]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	case http.MethodPost:
		var in map[string]string
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			f.t.Errorf("decode publish body: %v", err)
		}
		f.lastPost.Store(in)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"0F1","value":"` + in["value"] + `"}`))
	}
}

func newClient(t *testing.T, f *fakeService, username, key string) *feed.Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	return feed.NewClient(config.Feed{
		Username: username,
		Key:      key,
		BaseURL:  srv.URL + "/",
		Timeout:  time.Second,
	})
}

func TestLatestHistory_ChronologicalAndCoerced(t *testing.T) {
	f := &fakeService{t: t, data: map[string]string{
		"ultrasonic-distance": `[
			{"value":"abc","created_at":"2025-06-01T10:00:10Z"},
			{"value":"21.5","created_at":"2025-06-01T10:00:05.123Z"},
			{"value":"20","created_at":"2025-06-01T10:00:00Z"}
		]`,
	}}
	c := newClient(t, f, "operator", "aio_secret")

	readings, err := c.LatestHistory(context.Background(), "ultrasonic-distance", 3)
	require.NoError(t, err)
	require.Len(t, readings, 3)

	assert.Equal(t, "10:00:00", readings[0].Label)
	assert.Equal(t, models.Num(20), readings[0].Value)
	assert.Equal(t, "10:00:05", readings[1].Label)
	assert.Equal(t, models.Num(21.5), readings[1].Value)

	// the unparsable value keeps its label and slot
	assert.Equal(t, "10:00:10", readings[2].Label)
	assert.Equal(t, models.Unavailable, readings[2].Value)
	assert.Equal(t, "abc", readings[2].Raw)

	assert.Equal(t, "/operator/feeds/ultrasonic-distance/data", f.lastPath.Load())
}

func TestLatestHistory_NumericAndOddTimestamps(t *testing.T) {
	f := &fakeService{t: t, data: map[string]string{
		"grayscale-mid": `[
			{"value":612,"created_at":"2025-06-01 10:00:07 UTC"},
			{"value":null,"created_at":"bad"}
		]`,
	}}
	c := newClient(t, f, "operator", "aio_secret")

	readings, err := c.LatestHistory(context.Background(), "grayscale-mid", 2)
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assert.Equal(t, "bad", readings[0].Label)
	assert.Equal(t, models.Unavailable, readings[0].Value)
	assert.Equal(t, "10:00:07", readings[1].Label)
	assert.Equal(t, models.Num(612), readings[1].Value)
}

func TestLatestHistory_InvalidLimit(t *testing.T) {
	f := &fakeService{t: t}
	c := newClient(t, f, "operator", "aio_secret")

	_, err := c.LatestHistory(context.Background(), "tts", 0)
	assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
	assert.Zero(t, f.calls.Load())
}

func TestLatestHistory_RemoteFailure(t *testing.T) {
	f := &fakeService{t: t, status: http.StatusInternalServerError}
	c := newClient(t, f, "operator", "aio_secret")

	_, err := c.LatestHistory(context.Background(), "ultrasonic-distance", 20)
	assert.Equal(t, errors.ErrRemoteUnavailable, errors.CodeOf(err))
}

func TestLatestValue(t *testing.T) {
	f := &fakeService{t: t, data: map[string]string{
		"tts":   `[{"value":"hello there","created_at":"2025-06-01T10:00:00Z"}]`,
		"empty": `[]`,
	}}
	c := newClient(t, f, "operator", "aio_secret")
	ctx := context.Background()

	v, ok := c.LatestValue(ctx, "tts")
	assert.True(t, ok)
	assert.Equal(t, "hello there", v)

	// absent twice in a row, no caching artifacts
	for i := 0; i < 2; i++ {
		v, ok = c.LatestValue(ctx, "empty")
		assert.False(t, ok)
		assert.Empty(t, v)
	}

	// remote errors are swallowed
	v, ok = c.LatestValue(ctx, "no-such-feed")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestLatestValue_NetworkFailureIsAbsence(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := feed.NewClient(config.Feed{Username: "operator", Key: "aio_secret", BaseURL: srv.URL, Timeout: time.Second})
	_, ok := c.LatestValue(context.Background(), "tts")
	assert.False(t, ok)
}

func TestPublish(t *testing.T) {
	f := &fakeService{t: t}
	c := newClient(t, f, "operator", "aio_secret")

	err := c.Publish(context.Background(), "picarx-command", "forward")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"value": "forward"}, f.lastPost.Load())
	assert.Equal(t, "/operator/feeds/picarx-command/data", f.lastPath.Load())
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestPublish_MissingCredentials(t *testing.T) {
	for _, tc := range []struct{ user, key string }{{"", "aio_secret"}, {"operator", ""}, {"", ""}} {
		f := &fakeService{t: t}
		c := newClient(t, f, tc.user, tc.key)

		err := c.Publish(context.Background(), "picarx-command", "stop")
		assert.Equal(t, errors.ErrMisconfiguredCredentials, errors.CodeOf(err))
		assert.Zero(t, f.calls.Load(), "no remote call without credentials")
	}
}

func TestPublish_RemoteRejects(t *testing.T) {
	f := &fakeService{t: t}
	c := newClient(t, f, "operator", "wrong-key")

	err := c.Publish(context.Background(), "picarx-command", "stop")
	assert.Equal(t, errors.ErrRemoteUnavailable, errors.CodeOf(err))
	assert.EqualValues(t, 1, f.calls.Load(), "no retry")
}

func TestHealthy(t *testing.T) {
	f := &fakeService{t: t}
	c := newClient(t, f, "operator", "aio_secret")
	assert.NoError(t, c.Healthy(context.Background()))

	c = newClient(t, f, "", "")
	assert.Equal(t, errors.ErrMisconfiguredCredentials, errors.CodeOf(c.Healthy(context.Background())))
}
