package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/picarx/gateway/internal/errors"
	"github.com/picarx/gateway/internal/models"
)

// Order is the ts_utc ordering of a query result.
type Order int

const (
	Asc Order = iota
	Desc
)

func (o Order) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

// Query selects readings of one UTC calendar day.
type Query struct {
	Date    time.Time // any instant of the day; only the UTC date is used
	Sensors []string  // empty means every sensor
	Limit   int
	Order   Order
}

// Store provides read-only access to the sensor_readings table.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// QueryByDate returns at most q.Limit rows of q.Date's readings in q.Order.
func (s *Store) QueryByDate(ctx context.Context, q Query) ([]models.SensorReading, error) {
	if q.Limit < 1 {
		return nil, errors.Newf(errors.ErrInvalidArgument, "limit must be >= 1, got %d", q.Limit)
	}

	start := Day(q.Date)
	args := make([]any, 0, len(q.Sensors)+3)
	args = append(args, start, start.AddDate(0, 0, 1))
	for _, name := range q.Sensors {
		args = append(args, name)
	}
	args = append(args, q.Limit)

	rows, err := s.db.QueryContext(ctx, buildQuery(q), args...)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	readings := []models.SensorReading{}
	for rows.Next() {
		var (
			r     models.SensorReading
			value sql.NullString
		)
		if err := rows.Scan(&r.Timestamp, &r.SensorName, &value); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		r.Timestamp = r.Timestamp.UTC()
		// NULL reads as empty, which coerces to unavailable
		r.Value = value.String
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// Day truncates t to midnight of its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
