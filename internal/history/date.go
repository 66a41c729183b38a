package history

import (
	"log/slog"
	"strings"
	"time"

	"github.com/picarx/gateway/internal/errors"
)

// DateLayout is the ISO calendar date accepted from the date picker.
const DateLayout = "2006-01-02"

// ParseDate resolves a user supplied YYYY-MM-DD date. An empty or invalid
// value resolves to today (UTC) with ok == false; it is never an error.
func ParseDate(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Day(now), false
	}

	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		slog.Debug("date falls back to today",
			"code", errors.ErrInvalidDate,
			"date", raw,
			"error", err,
		)
		return Day(now), false
	}
	return d, true
}
