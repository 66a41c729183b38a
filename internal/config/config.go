// Package config provides environment-based configuration loading for the
// gateway. Values come from built-in defaults, an optional dotenv file and
// the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/picarx/gateway/internal/models"
)

// Base holds configuration common to every service.
type Base struct {
	Port        int
	LogLevel    string
	DatabaseURL string
}

// Feed holds the remote feed service settings. Credentials are optional at
// startup; feed operations fail per call when they are missing.
type Feed struct {
	Username  string
	Key       string
	BaseURL   string
	Timeout   time.Duration
	Transport string
	Broker    string
}

// Gateway holds configuration for the gateway service.
type Gateway struct {
	Base
	Feed         Feed
	Channels     Channels
	LiveLimit    int
	QueryTimeout time.Duration
}

// Channels maps each feed role to its remote feed key.
type Channels map[models.Role]string

// Key returns the remote key configured for role.
func (c Channels) Key(role models.Role) (string, bool) {
	k, ok := c[role]
	return k, ok && k != ""
}

const (
	TransportREST = "rest"
	TransportMQTT = "mqtt"
)

// channelEnv lists the env key and default remote key of each role.
var channelEnv = []struct {
	role     models.Role
	env      string
	fallback string
}{
	{models.RoleDrive, "AIO_COMMAND_FEED", "picarx-command"},
	{models.RoleSteering, "AIO_STEERING_FEED", "steering-command"},
	{models.RoleCamera, "AIO_CAMERA_FEED", "camera-command"},
	{models.RoleLineTracking, "AIO_LINE_FEED", "line-command"},
	{models.RoleObstacleAvoidance, "AIO_OBSTACLE_FEED", "obstacle-command"},
	{models.RoleUltrasonic, "AIO_ULTRA_HTTP_FEED", "ultrasonic-distance"},
	{models.RoleGrayscaleMid, "AIO_GRAY_MID_HTTP_FEED", "grayscale-mid"},
	{models.RoleTextToSpeech, "AIO_TTS_FEED", "tts"},
}

// ErrMissingDSN is returned when no database connection string is set.
var ErrMissingDSN = errors.New("PG_DSN is not set")

// LoadGateway returns the gateway configuration. envFile names an optional
// dotenv file; a missing file is not an error. A missing PG_DSN is.
func LoadGateway(envFile string) (Gateway, error) {
	v := viper.New()
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AIO_BASE_URL", "https://io.adafruit.com/api/v2")
	v.SetDefault("FEED_TIMEOUT", 5*time.Second)
	v.SetDefault("FEED_TRANSPORT", TransportREST)
	v.SetDefault("AIO_MQTT_BROKER", "ssl://io.adafruit.com:8883")
	v.SetDefault("LIVE_LIMIT", 20)
	v.SetDefault("QUERY_TIMEOUT", 5*time.Second)
	for _, c := range channelEnv {
		v.SetDefault(c.env, c.fallback)
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Gateway{}, fmt.Errorf("read %s: %w", envFile, err)
			}
			slog.Debug("env file not found, using environment only", "path", envFile)
		}
	}
	v.AutomaticEnv()

	cfg := Gateway{
		Base: Base{
			Port:        v.GetInt("PORT"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			DatabaseURL: v.GetString("PG_DSN"),
		},
		Feed: Feed{
			Username:  v.GetString("AIO_USERNAME"),
			Key:       v.GetString("AIO_KEY"),
			BaseURL:   v.GetString("AIO_BASE_URL"),
			Timeout:   v.GetDuration("FEED_TIMEOUT"),
			Transport: v.GetString("FEED_TRANSPORT"),
			Broker:    v.GetString("AIO_MQTT_BROKER"),
		},
		Channels:     make(Channels, len(channelEnv)),
		LiveLimit:    v.GetInt("LIVE_LIMIT"),
		QueryTimeout: v.GetDuration("QUERY_TIMEOUT"),
	}
	for _, c := range channelEnv {
		cfg.Channels[c.role] = v.GetString(c.env)
	}

	if cfg.DatabaseURL == "" {
		return Gateway{}, ErrMissingDSN
	}
	if cfg.LiveLimit < 1 {
		return Gateway{}, fmt.Errorf("LIVE_LIMIT must be >= 1, got %d", cfg.LiveLimit)
	}
	switch cfg.Feed.Transport {
	case TransportREST, TransportMQTT:
	default:
		return Gateway{}, fmt.Errorf("FEED_TRANSPORT must be %q or %q, got %q", TransportREST, TransportMQTT, cfg.Feed.Transport)
	}
	return cfg, nil
}

// HasCredentials reports whether both feed identity and secret are set.
func (f Feed) HasCredentials() bool {
	return f.Username != "" && f.Key != ""
}

// SlogLevel parses the configured log level string into an slog.Level.
func (b Base) SlogLevel() slog.Level {
	switch b.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Addr returns the listen address as ":PORT".
func (b Base) Addr() string {
	return fmt.Sprintf(":%d", b.Port)
}
