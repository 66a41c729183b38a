package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// LabelLayout is the UTC time-of-day layout of chart labels.
const LabelLayout = "15:04:05"

// Label formats t as a chart label.
func Label(t time.Time) string {
	return t.UTC().Format(LabelLayout)
}

// Value is a numeric reading or the unavailable marker. The zero Value is
// unavailable. It encodes to JSON as a number or null.
type Value struct {
	Float float64
	Valid bool
}

// Unavailable is the marker for a value that is missing or could not be
// coerced.
var Unavailable = Value{}

// Num returns an available Value.
func Num(f float64) Value {
	return Value{Float: f, Valid: true}
}

// Coerce parses the text stored by the feed service or the reading store.
// Empty, unparsable, NaN and infinite inputs yield Unavailable.
func Coerce(raw string) Value {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Unavailable
	}
	return Num(f)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v.Float, 'f', -1, 64), nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*v = Unavailable
		return nil
	}
	*v = Coerce(strings.Trim(s, `"`))
	return nil
}
