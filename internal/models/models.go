// Package models contains shared domain structs used across the gateway
// packages.
package models

import "time"

// HealthResponse is returned by /healthz and /readyz endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Role names a logical feed channel on the remote feed service.
type Role string

const (
	RoleDrive             Role = "drive"
	RoleSteering          Role = "steering"
	RoleCamera            Role = "camera"
	RoleLineTracking      Role = "line-tracking"
	RoleObstacleAvoidance Role = "obstacle-avoidance"
	RoleTextToSpeech      Role = "text-to-speech"
	RoleUltrasonic        Role = "ultrasonic"
	RoleGrayscaleMid      Role = "grayscale-mid"
)

// Reading is one datapoint read from a feed, in chronological position.
// Raw is the untyped string the feed service stored; Value is its coerced
// form.
type Reading struct {
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
	Raw   string    `json:"raw"`
	Value Value     `json:"value"`
}

// SensorReading is one historical row from the sensor_readings table.
type SensorReading struct {
	Timestamp  time.Time `json:"ts_utc"`
	SensorName string    `json:"sensor_name"`
	Value      string    `json:"value"`
}
