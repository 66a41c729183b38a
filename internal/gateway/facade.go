// Package gateway is the single entry point for operator commands and
// dashboard reads. It composes the command validator, the feed client and
// the history service, and reports every failure in one result shape.
package gateway

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/picarx/gateway/internal/command"
	"github.com/picarx/gateway/internal/config"
	"github.com/picarx/gateway/internal/errors"
	"github.com/picarx/gateway/internal/feed"
	"github.com/picarx/gateway/internal/history"
	"github.com/picarx/gateway/internal/models"
	"github.com/picarx/gateway/internal/series"
)

// NoTTSText stands in for the spoken text when the TTS feed has none.
const NoTTSText = "(no TTS data)"

// Names of the live lines and of the sources a snapshot reads.
const (
	LineUltrasonic = "ultrasonic"
	LineGrayMid    = "gray_mid"
	SourceHistory  = "grayscale_history"
)

// FeedReader reads recent values from the feed service; *feed.Client
// implements it.
type FeedReader interface {
	LatestHistory(ctx context.Context, key string, limit int) ([]models.Reading, error)
	LatestValue(ctx context.Context, key string) (string, bool)
}

// HistoryReader serves date-scoped store reads; *history.Service
// implements it.
type HistoryReader interface {
	Table(ctx context.Context, rawDate string) (history.Table, error)
	Chart(ctx context.Context, rawDate, sensor string) (history.Chart, error)
	Aligned(ctx context.Context, rawDate string, sensors []string) (history.Chart, error)
	Grayscale(ctx context.Context, rawDate string) (history.Chart, error)
	Ultrasonic(ctx context.Context, rawDate string) (history.Chart, error)
}

// CommandResult is the outcome of one operator command.
type CommandResult struct {
	Status    string      `json:"status" example:"ok"`
	CommandID string      `json:"command_id,omitempty" example:"7c0e9f0e-5a43-4a8e-9a53-0c6b2f1d1f4e"`
	Error     string      `json:"error,omitempty" example:"invalid drive command: drive=\"sideways\""`
	Code      errors.Code `json:"code,omitempty" swaggertype:"string" example:"invalid_command"`
}

// OK reports whether the command was accepted.
func (r CommandResult) OK() bool { return r.Status == "ok" }

// Snapshot is the live dashboard payload. Ultrasonic and GrayMid share
// Labels; a line whose source failed is all null.
type Snapshot struct {
	Labels      []string       `json:"labels"`
	Ultrasonic  []models.Value `json:"ultrasonic" swaggertype:"array,number"`
	GrayMid     []models.Value `json:"gray_mid" swaggertype:"array,number"`
	TTS         string         `json:"tts" example:"hello there"`
	Grayscale   *history.Chart `json:"grayscale,omitempty"`
	Unavailable []string       `json:"unavailable"`
}

// Facade composes the gateway components.
type Facade struct {
	feeds     FeedReader
	publisher feed.Publisher
	history   HistoryReader
	channels  config.Channels
	liveLimit int
}

// New creates a Facade. Commands go out through publisher, live reads use
// feeds, and channel keys and LIVE_LIMIT come from cfg.
func New(feeds FeedReader, publisher feed.Publisher, hist HistoryReader, cfg config.Gateway) *Facade {
	return &Facade{
		feeds:     feeds,
		publisher: publisher,
		history:   hist,
		channels:  cfg.Channels,
		liveLimit: cfg.LiveLimit,
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// Command validates intent for role and publishes it to the role's feed.
// Nothing is published when validation fails.
func (f *Facade) Command(ctx context.Context, role models.Role, rawIntent string) CommandResult {
	intent, err := command.Validate(role, rawIntent)
	if err != nil {
		return failed(role, err)
	}

	key, ok := f.channels.Key(role)
	if !ok {
		return failed(role, errors.Newf(errors.ErrInternal, "no feed configured for %s", role))
	}

	if err := f.publisher.Publish(ctx, key, intent); err != nil {
		return failed(role, err)
	}

	id := uuid.NewString()
	slog.Info("command sent", "role", role, "feed", key, "command_id", id)
	return CommandResult{Status: "ok", CommandID: id}
}

func failed(role models.Role, err error) CommandResult {
	e := errors.From(err)
	if StatusFor(e.Code) >= 500 {
		slog.Error("command failed", "role", role, "code", e.Code, "error", err)
	} else {
		slog.Info("command rejected", "role", role, "code", e.Code, "error", err)
	}
	return CommandResult{Status: "error", Error: e.Error(), Code: e.Code}
}

// ---------------------------------------------------------------------------
// Telemetry
// ---------------------------------------------------------------------------

// Telemetry reads the live ultrasonic and grayscale-mid feeds, the last
// spoken text and today's grayscale history. Sources that fail are listed
// in Unavailable; an error is returned only when all of them fail.
func (f *Facade) Telemetry(ctx context.Context) (Snapshot, *errors.Error) {
	snap := Snapshot{Unavailable: []string{}}
	var lastErr error

	live := map[string][]models.Reading{}
	for _, src := range []struct {
		line string
		role models.Role
	}{
		{LineUltrasonic, models.RoleUltrasonic},
		{LineGrayMid, models.RoleGrayscaleMid},
	} {
		readings, err := f.readLive(ctx, src.role)
		if err != nil {
			slog.Warn("live feed unavailable", "role", src.role, "error", err)
			snap.Unavailable = append(snap.Unavailable, src.line)
			lastErr = err
			continue
		}
		live[src.line] = readings
	}

	aligned := series.AlignChannels([]string{LineUltrasonic, LineGrayMid}, live)
	snap.Labels = aligned.Labels
	snap.Ultrasonic, _ = aligned.Line(LineUltrasonic)
	snap.GrayMid, _ = aligned.Line(LineGrayMid)

	snap.TTS = NoTTSText
	if key, ok := f.channels.Key(models.RoleTextToSpeech); ok {
		if text, ok := f.feeds.LatestValue(ctx, key); ok && text != "" {
			snap.TTS = text
		}
	}

	gray, err := f.history.Grayscale(ctx, "")
	if err != nil {
		slog.Warn("grayscale history unavailable", "error", err)
		snap.Unavailable = append(snap.Unavailable, SourceHistory)
		lastErr = err
	} else {
		snap.Grayscale = &gray
	}

	if len(snap.Unavailable) == 3 {
		return Snapshot{}, errors.Wrap(errors.ErrRemoteUnavailable, lastErr)
	}
	return snap, nil
}

func (f *Facade) readLive(ctx context.Context, role models.Role) ([]models.Reading, error) {
	key, ok := f.channels.Key(role)
	if !ok {
		return nil, errors.Newf(errors.ErrInternal, "no feed configured for %s", role)
	}
	return f.feeds.LatestHistory(ctx, key, f.liveLimit)
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

// Table returns the day's readings, newest first.
func (f *Facade) Table(ctx context.Context, rawDate string) (history.Table, *errors.Error) {
	t, err := f.history.Table(ctx, rawDate)
	return t, errors.From(err)
}

// Chart returns one sensor's readings of the day as a series.
func (f *Facade) Chart(ctx context.Context, rawDate, sensor string) (history.Chart, *errors.Error) {
	c, err := f.history.Chart(ctx, rawDate, sensor)
	return c, errors.From(err)
}

// Aligned returns several sensors of the day on one label axis.
func (f *Facade) Aligned(ctx context.Context, rawDate string, sensors []string) (history.Chart, *errors.Error) {
	c, err := f.history.Aligned(ctx, rawDate, sensors)
	return c, errors.From(err)
}

// Grayscale returns the day's three grayscale sensors aligned.
func (f *Facade) Grayscale(ctx context.Context, rawDate string) (history.Chart, *errors.Error) {
	c, err := f.history.Grayscale(ctx, rawDate)
	return c, errors.From(err)
}

// Ultrasonic returns the day's ultrasonic distance chart.
func (f *Facade) Ultrasonic(ctx context.Context, rawDate string) (history.Chart, *errors.Error) {
	c, err := f.history.Ultrasonic(ctx, rawDate)
	return c, errors.From(err)
}
