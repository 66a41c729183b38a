// Package series turns timestamped readings into chart-ready series that
// share one label axis.
//
// Labels are UTC time-of-day strings (HH:MM:SS). Store rows always come
// from a single calendar day, so AlignMultiple can order them by label.
// Feed readings are not date-scoped and AlignChannels orders them by their
// full timestamp instead.
package series

import (
	"sort"

	"github.com/picarx/gateway/internal/models"
)

// Series is a label axis plus one or more value lines. Every line holds
// exactly len(Labels) values; index i of a line belongs to Labels[i].
type Series struct {
	Labels []string `json:"labels"`
	Lines  []Line   `json:"series"`
}

// Line is one named value sequence of a Series.
type Line struct {
	Name   string         `json:"name"`
	Values []models.Value `json:"values"`
}

// Line returns the values of the named line.
func (s Series) Line(name string) ([]models.Value, bool) {
	for _, l := range s.Lines {
		if l.Name == name {
			return l.Values, true
		}
	}
	return nil, false
}

// Empty returns a series with no labels and an empty line per name.
func Empty(names ...string) Series {
	names = dedupe(names)
	s := Series{Labels: []string{}, Lines: make([]Line, len(names))}
	for i, n := range names {
		s.Lines[i] = Line{Name: n, Values: []models.Value{}}
	}
	return s
}

// AlignSingle wraps chronologically ordered readings as a one-line series,
// keeping their order and unavailable markers.
func AlignSingle(name string, readings []models.Reading) Series {
	s := Series{
		Labels: make([]string, len(readings)),
		Lines:  []Line{{Name: name, Values: make([]models.Value, len(readings))}},
	}
	for i, r := range readings {
		s.Labels[i] = r.Label
		s.Lines[0].Values[i] = r.Value
	}
	return s
}

// FromRows is the single-sensor chart: one label per row, in row order,
// with no regrouping of rows that share a second.
func FromRows(name string, rows []models.SensorReading) Series {
	readings := make([]models.Reading, len(rows))
	for i, r := range rows {
		readings[i] = models.Reading{
			Time:  r.Timestamp,
			Label: models.Label(r.Timestamp),
			Raw:   r.Value,
			Value: models.Coerce(r.Value),
		}
	}
	return AlignSingle(name, readings)
}

// AlignMultiple merges rows of several sensors onto one label axis. Rows
// are grouped by label, labels are sorted ascending, and every requested
// sensor gets a value per label, Unavailable where it has no row. When a
// sensor has several rows within the same second the last one wins.
func AlignMultiple(rows []models.SensorReading, names []string) Series {
	points := make([]point, len(rows))
	for i, r := range rows {
		points[i] = point{label: models.Label(r.Timestamp), name: r.SensorName, value: models.Coerce(r.Value)}
	}
	return align(points, names)
}

// AlignChannels merges chronologically ordered feed readings keyed by
// line name onto one axis. Readings are ordered by their full timestamp, so
// a window that crosses midnight stays in order. Each reading gets its own
// slot; readings of different lines share a slot only when their
// timestamps are equal. A name with no readings yields an all-Unavailable
// line.
func AlignChannels(names []string, readings map[string][]models.Reading) Series {
	s := Empty(names...)
	next := make([]int, len(s.Lines))

	for {
		var head models.Reading
		found := false
		for i, l := range s.Lines {
			rs := readings[l.Name]
			if next[i] < len(rs) && (!found || rs[next[i]].Time.Before(head.Time)) {
				head, found = rs[next[i]], true
			}
		}
		if !found {
			return s
		}

		for i := range s.Lines {
			rs := readings[s.Lines[i].Name]
			v := models.Unavailable
			if next[i] < len(rs) && rs[next[i]].Time.Equal(head.Time) {
				v = rs[next[i]].Value
				next[i]++
			}
			s.Lines[i].Values = append(s.Lines[i].Values, v)
		}
		s.Labels = append(s.Labels, head.Label)
	}
}

type point struct {
	label string
	name  string
	value models.Value
}

func align(points []point, names []string) Series {
	names = dedupe(names)

	byLabel := make(map[string]map[string]models.Value)
	for _, p := range points {
		m, ok := byLabel[p.label]
		if !ok {
			m = make(map[string]models.Value)
			byLabel[p.label] = m
		}
		m[p.name] = p.value
	}

	labels := make([]string, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	s := Series{Labels: labels, Lines: make([]Line, len(names))}
	for i, name := range names {
		values := make([]models.Value, len(labels))
		for j, l := range labels {
			// missing entries read as the zero Value, which is Unavailable
			values[j] = byLabel[l][name]
		}
		s.Lines[i] = Line{Name: name, Values: values}
	}
	return s
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
