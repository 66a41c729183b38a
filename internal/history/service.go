package history

import (
	"context"
	"time"

	"github.com/picarx/gateway/internal/errors"
	"github.com/picarx/gateway/internal/models"
	"github.com/picarx/gateway/internal/series"
)

// Row caps per view.
const (
	TableLimit = 200
	ChartLimit = 500
)

// Sensor names written by the vehicle's collector.
const (
	SensorUltrasonic     = "ultrasonic_distance"
	SensorGrayscaleLeft  = "grayscale_left"
	SensorGrayscaleMid   = "grayscale_mid"
	SensorGrayscaleRight = "grayscale_right"
)

// GrayscaleSensors are the three grayscale channels, in display order.
var GrayscaleSensors = []string{SensorGrayscaleLeft, SensorGrayscaleMid, SensorGrayscaleRight}

// Querier is the read path Service depends on; *Store implements it.
type Querier interface {
	QueryByDate(ctx context.Context, q Query) ([]models.SensorReading, error)
}

// Table is the tabular view of one day, most recent first.
type Table struct {
	Date string                 `json:"date" example:"2025-06-01"`
	Rows []models.SensorReading `json:"rows"`
}

// Chart is a chart-ready series for one day.
type Chart struct {
	Date string `json:"date" example:"2025-06-01"`
	series.Series
}

// Service applies row caps, ordering and a per-call timeout on top of a
// Querier.
type Service struct {
	q       Querier
	timeout time.Duration
	now     func() time.Time
}

// NewService creates a Service whose queries time out after timeout.
func NewService(q Querier, timeout time.Duration) *Service {
	return &Service{q: q, timeout: timeout, now: time.Now}
}

// Table returns up to TableLimit rows of the day, newest first.
func (s *Service) Table(ctx context.Context, rawDate string) (Table, error) {
	day := s.day(rawDate)
	rows, err := s.query(ctx, Query{Date: day, Limit: TableLimit, Order: Desc})
	if err != nil {
		return Table{}, err
	}
	return Table{Date: day.Format(DateLayout), Rows: rows}, nil
}

// Chart returns one sensor's readings of the day as a single-line series,
// up to ChartLimit points in chronological order.
func (s *Service) Chart(ctx context.Context, rawDate, sensor string) (Chart, error) {
	if sensor == "" {
		return Chart{}, errors.Newf(errors.ErrInvalidArgument, "sensor name is required")
	}

	day := s.day(rawDate)
	rows, err := s.query(ctx, Query{Date: day, Sensors: []string{sensor}, Limit: ChartLimit, Order: Asc})
	if err != nil {
		return Chart{}, err
	}
	return Chart{Date: day.Format(DateLayout), Series: series.FromRows(sensor, rows)}, nil
}

// Aligned returns several sensors of the day on one shared label axis. The
// row cap scales with the number of sensors.
func (s *Service) Aligned(ctx context.Context, rawDate string, sensors []string) (Chart, error) {
	if len(sensors) == 0 {
		return Chart{}, errors.Newf(errors.ErrInvalidArgument, "at least one sensor is required")
	}
	for _, name := range sensors {
		if name == "" {
			return Chart{}, errors.Newf(errors.ErrInvalidArgument, "sensor name must not be empty")
		}
	}

	day := s.day(rawDate)
	rows, err := s.query(ctx, Query{Date: day, Sensors: sensors, Limit: ChartLimit * len(sensors), Order: Asc})
	if err != nil {
		return Chart{}, err
	}
	return Chart{Date: day.Format(DateLayout), Series: series.AlignMultiple(rows, sensors)}, nil
}

// Grayscale is Aligned for the three grayscale sensors.
func (s *Service) Grayscale(ctx context.Context, rawDate string) (Chart, error) {
	return s.Aligned(ctx, rawDate, GrayscaleSensors)
}

// Ultrasonic is Chart for the ultrasonic distance sensor.
func (s *Service) Ultrasonic(ctx context.Context, rawDate string) (Chart, error) {
	return s.Chart(ctx, rawDate, SensorUltrasonic)
}

func (s *Service) day(rawDate string) time.Time {
	d, _ := ParseDate(rawDate, s.now())
	return d
}

func (s *Service) query(ctx context.Context, q Query) ([]models.SensorReading, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rows, err := s.q.QueryByDate(ctx, q)
	if err != nil {
		if errors.CodeOf(err) == errors.ErrInvalidArgument {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrStoreUnavailable, err)
	}
	return rows, nil
}
