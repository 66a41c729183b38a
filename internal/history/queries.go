// Package history reads date-scoped sensor readings from the relational
// store and shapes them for tables and charts.
package history

import (
	"strconv"
	"strings"
)

// SQL fragments for the sensor_readings table. The day is expressed as a
// half-open range on ts_utc so the timestamp index serves the scan.
const (
	querySelectByDate = `
SELECT ts_utc, sensor_name, value
FROM sensor_readings
WHERE ts_utc >= $1
  AND ts_utc < $2`

	queryOrderAsc  = `ORDER BY ts_utc ASC`
	queryOrderDesc = `ORDER BY ts_utc DESC`
)

// buildQuery returns the SQL text for q. Parameters are numbered in the
// order they appear: $1 = day start, $2 = day end, then one per sensor
// name, then the limit.
func buildQuery(q Query) string {
	var b strings.Builder
	b.WriteString(querySelectByDate)

	n := 2
	if len(q.Sensors) > 0 {
		b.WriteString("\n  AND sensor_name IN (")
		for i := range q.Sensors {
			if i > 0 {
				b.WriteString(", ")
			}
			n++
			b.WriteString("$" + strconv.Itoa(n))
		}
		b.WriteString(")")
	}

	b.WriteString("\n")
	if q.Order == Desc {
		b.WriteString(queryOrderDesc)
	} else {
		b.WriteString(queryOrderAsc)
	}

	n++
	b.WriteString("\nLIMIT $" + strconv.Itoa(n))
	return b.String()
}
