package series_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picarx/gateway/internal/models"
	"github.com/picarx/gateway/internal/series"
)

var day = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func at(h, m, s int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
}

func row(ts time.Time, name, value string) models.SensorReading {
	return models.SensorReading{Timestamp: ts, SensorName: name, Value: value}
}

var grayscale = []string{"grayscale_left", "grayscale_mid", "grayscale_right"}

func TestAlignMultiple_AsynchronousSensors(t *testing.T) {
	rows := []models.SensorReading{
		row(at(10, 0, 0), "grayscale_left", "50"),
		row(at(10, 0, 0), "grayscale_mid", "60"),
		row(at(10, 0, 5), "grayscale_right", "70"),
	}

	s := series.AlignMultiple(rows, grayscale)

	assert.Equal(t, []string{"10:00:00", "10:00:05"}, s.Labels)
	left, _ := s.Line("grayscale_left")
	mid, _ := s.Line("grayscale_mid")
	right, _ := s.Line("grayscale_right")
	assert.Equal(t, []models.Value{models.Num(50), models.Unavailable}, left)
	assert.Equal(t, []models.Value{models.Num(60), models.Unavailable}, mid)
	assert.Equal(t, []models.Value{models.Unavailable, models.Num(70)}, right)
}

func TestAlignMultiple_SortsLabelsAndIgnoresUnrequestedSensors(t *testing.T) {
	rows := []models.SensorReading{
		row(at(12, 0, 0), "grayscale_mid", "3"),
		row(at(9, 30, 0), "grayscale_mid", "1"),
		row(at(11, 0, 0), "ultrasonic_distance", "42"),
		row(at(10, 15, 0), "grayscale_mid", "2"),
	}

	s := series.AlignMultiple(rows, []string{"grayscale_mid"})

	// the ultrasonic row still contributes a label, the mid line is
	// unavailable there
	assert.Equal(t, []string{"09:30:00", "10:15:00", "11:00:00", "12:00:00"}, s.Labels)
	mid, ok := s.Line("grayscale_mid")
	require.True(t, ok)
	assert.Equal(t, []models.Value{models.Num(1), models.Num(2), models.Unavailable, models.Num(3)}, mid)
}

func TestAlignMultiple_LastRowInSameSecondWins(t *testing.T) {
	rows := []models.SensorReading{
		row(at(10, 0, 0), "grayscale_left", "1"),
		row(at(10, 0, 0).Add(400*time.Millisecond), "grayscale_left", "2"),
	}

	s := series.AlignMultiple(rows, []string{"grayscale_left"})

	assert.Equal(t, []string{"10:00:00"}, s.Labels)
	assert.Equal(t, []models.Value{models.Num(2)}, s.Lines[0].Values)
}

func TestAlignMultiple_UnparsableValuesKeepTheirSlot(t *testing.T) {
	rows := []models.SensorReading{
		row(at(8, 0, 0), "grayscale_left", "abc"),
		row(at(8, 0, 1), "grayscale_left", ""),
		row(at(8, 0, 2), "grayscale_left", "NaN"),
	}

	s := series.AlignMultiple(rows, []string{"grayscale_left"})

	require.Len(t, s.Labels, 3)
	assert.Equal(t, []models.Value{models.Unavailable, models.Unavailable, models.Unavailable}, s.Lines[0].Values)
}

func TestAlignMultiple_DuplicateNames(t *testing.T) {
	s := series.AlignMultiple(nil, []string{"a", "b", "a"})

	require.Len(t, s.Lines, 2)
	assert.Equal(t, "a", s.Lines[0].Name)
	assert.Equal(t, "b", s.Lines[1].Name)
	assert.Empty(t, s.Labels)
	assert.Empty(t, s.Lines[0].Values)
}

func TestAlignMultiple_EqualLengthProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := []string{"1", "2.5", "abc", "", "NaN", "-4"}

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(60)
		rows := make([]models.SensorReading, n)
		for i := range rows {
			rows[i] = row(
				at(rng.Intn(24), rng.Intn(60), rng.Intn(60)),
				grayscale[rng.Intn(len(grayscale))],
				values[rng.Intn(len(values))],
			)
		}

		s := series.AlignMultiple(rows, grayscale)

		require.Len(t, s.Lines, len(grayscale))
		for _, l := range s.Lines {
			require.Len(t, l.Values, len(s.Labels), fmt.Sprintf("iteration %d line %s", iter, l.Name))
		}
		for i := 1; i < len(s.Labels); i++ {
			require.Less(t, s.Labels[i-1], s.Labels[i])
		}
	}
}

func TestAlignSingle_Passthrough(t *testing.T) {
	readings := []models.Reading{
		{Label: "10:00:02", Value: models.Num(1)},
		{Label: "10:00:01", Value: models.Unavailable},
		{Label: "10:00:03", Value: models.Num(3)},
	}

	s := series.AlignSingle("ultrasonic", readings)

	assert.Equal(t, []string{"10:00:02", "10:00:01", "10:00:03"}, s.Labels)
	assert.Equal(t, []models.Value{models.Num(1), models.Unavailable, models.Num(3)}, s.Lines[0].Values)
}

func TestFromRows_KeepsRowsSharingASecond(t *testing.T) {
	rows := []models.SensorReading{
		row(at(7, 0, 0), "ultrasonic_distance", "10"),
		row(at(7, 0, 0).Add(500*time.Millisecond), "ultrasonic_distance", "11"),
		row(at(7, 0, 1), "ultrasonic_distance", "x"),
	}

	s := series.FromRows("ultrasonic_distance", rows)

	assert.Equal(t, []string{"07:00:00", "07:00:00", "07:00:01"}, s.Labels)
	assert.Equal(t, []models.Value{models.Num(10), models.Num(11), models.Unavailable}, s.Lines[0].Values)
}

func feedReading(ts time.Time, v models.Value) models.Reading {
	return models.Reading{Time: ts, Label: models.Label(ts), Value: v}
}

func TestAlignChannels(t *testing.T) {
	readings := map[string][]models.Reading{
		"ultrasonic": {
			feedReading(at(10, 0, 0), models.Num(20)),
			feedReading(at(10, 0, 2), models.Num(22)),
		},
		"gray_mid": {
			feedReading(at(10, 0, 1), models.Num(500)),
			feedReading(at(10, 0, 2), models.Unavailable),
		},
	}

	s := series.AlignChannels([]string{"ultrasonic", "gray_mid", "missing"}, readings)

	assert.Equal(t, []string{"10:00:00", "10:00:01", "10:00:02"}, s.Labels)
	u, _ := s.Line("ultrasonic")
	g, _ := s.Line("gray_mid")
	m, _ := s.Line("missing")
	assert.Equal(t, []models.Value{models.Num(20), models.Unavailable, models.Num(22)}, u)
	assert.Equal(t, []models.Value{models.Unavailable, models.Num(500), models.Unavailable}, g)
	assert.Equal(t, []models.Value{models.Unavailable, models.Unavailable, models.Unavailable}, m)
}

func TestAlignChannels_AcrossMidnight(t *testing.T) {
	readings := map[string][]models.Reading{
		"ultrasonic": {
			feedReading(at(23, 59, 58), models.Num(1)),
			feedReading(at(23, 59, 59), models.Num(2)),
			feedReading(at(24, 0, 1), models.Num(3)),
		},
		"gray_mid": {
			feedReading(at(23, 59, 59), models.Num(600)),
			feedReading(at(24, 0, 2), models.Num(610)),
		},
	}

	s := series.AlignChannels([]string{"ultrasonic", "gray_mid"}, readings)

	assert.Equal(t, []string{"23:59:58", "23:59:59", "00:00:01", "00:00:02"}, s.Labels)
	u, _ := s.Line("ultrasonic")
	g, _ := s.Line("gray_mid")
	assert.Equal(t, []models.Value{models.Num(1), models.Num(2), models.Num(3), models.Unavailable}, u)
	assert.Equal(t, []models.Value{models.Unavailable, models.Num(600), models.Unavailable, models.Num(610)}, g)
}

func TestAlignChannels_KeepsReadingsSharingASecond(t *testing.T) {
	readings := map[string][]models.Reading{
		"ultrasonic": {
			feedReading(at(10, 0, 0), models.Num(1)),
			feedReading(at(10, 0, 0).Add(300*time.Millisecond), models.Num(2)),
			feedReading(at(10, 0, 0).Add(300*time.Millisecond), models.Num(3)),
		},
	}

	s := series.AlignChannels([]string{"ultrasonic", "gray_mid"}, readings)

	assert.Equal(t, []string{"10:00:00", "10:00:00", "10:00:00"}, s.Labels)
	u, _ := s.Line("ultrasonic")
	g, _ := s.Line("gray_mid")
	assert.Equal(t, []models.Value{models.Num(1), models.Num(2), models.Num(3)}, u)
	assert.Equal(t, []models.Value{models.Unavailable, models.Unavailable, models.Unavailable}, g)
}

func TestAlignChannels_EqualLengthProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	names := []string{"ultrasonic", "gray_mid"}

	for iter := 0; iter < 200; iter++ {
		readings := map[string][]models.Reading{}
		total := 0
		for _, name := range names {
			ts := day.Add(23 * time.Hour)
			n := rng.Intn(30)
			for i := 0; i < n; i++ {
				ts = ts.Add(time.Duration(rng.Intn(3)) * time.Second)
				readings[name] = append(readings[name], feedReading(ts, models.Num(float64(i))))
			}
			total += n
		}

		s := series.AlignChannels(names, readings)

		require.GreaterOrEqual(t, len(s.Labels), total/len(names), fmt.Sprintf("iteration %d", iter))
		for _, l := range s.Lines {
			require.Len(t, l.Values, len(s.Labels))
			available := 0
			for _, v := range l.Values {
				if v.Valid {
					available++
				}
			}
			require.Equal(t, len(readings[l.Name]), available, "no reading of %s dropped", l.Name)
		}
	}
}

func TestEmpty(t *testing.T) {
	s := series.Empty("a", "b")

	assert.NotNil(t, s.Labels)
	require.Len(t, s.Lines, 2)
	assert.NotNil(t, s.Lines[1].Values)
}
