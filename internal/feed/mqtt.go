package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/picarx/gateway/internal/config"
	"github.com/picarx/gateway/internal/errors"
)

// MQTTPublisher publishes feed values through the feed service's MQTT
// broker. Topics follow "{username}/feeds/{key}".
type MQTTPublisher struct {
	client     mqtt.Client
	username   string
	configured bool
	timeout    time.Duration
}

// NewMQTTPublisher creates a publisher for cfg. The connection is opened
// by Connect; paho reconnects on its own afterwards.
func NewMQTTPublisher(cfg config.Feed) *MQTTPublisher {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID("picarx-gateway-" + uuid.NewString()[:8]).
		SetUsername(cfg.Username).
		SetPassword(cfg.Key).
		SetConnectTimeout(cfg.Timeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			slog.Warn("feed broker connection lost", "error", err)
		})

	return &MQTTPublisher{
		client:     mqtt.NewClient(opts),
		username:   cfg.Username,
		configured: cfg.HasCredentials(),
		timeout:    cfg.Timeout,
	}
}

// newMQTTPublisher wraps an existing client; used by tests.
func newMQTTPublisher(client mqtt.Client, cfg config.Feed) *MQTTPublisher {
	return &MQTTPublisher{
		client:     client,
		username:   cfg.Username,
		configured: cfg.HasCredentials(),
		timeout:    cfg.Timeout,
	}
}

// Connect starts the broker connection. A failure is returned but the
// client keeps retrying in the background.
func (p *MQTTPublisher) Connect() error {
	if !p.configured {
		return errors.New(errors.ErrMisconfiguredCredentials)
	}
	token := p.client.Connect()
	if !token.WaitTimeout(p.timeout) {
		return errors.Wrap(errors.ErrRemoteUnavailable, fmt.Errorf("connect: timed out after %s", p.timeout))
	}
	if err := token.Error(); err != nil {
		return errors.Wrap(errors.ErrRemoteUnavailable, fmt.Errorf("connect: %w", err))
	}
	return nil
}

// Publish sends value to feed key with QoS 1 and waits for the broker's
// acknowledgement.
func (p *MQTTPublisher) Publish(ctx context.Context, key, value string) error {
	if !p.configured {
		return errors.New(errors.ErrMisconfiguredCredentials)
	}
	if !p.client.IsConnectionOpen() {
		return errors.Wrap(errors.ErrRemoteUnavailable, fmt.Errorf("publish to %s: broker not connected", key))
	}

	topic := p.username + "/feeds/" + key
	token := p.client.Publish(topic, 1, false, value)

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
	case <-timer.C:
		return errors.Wrap(errors.ErrRemoteUnavailable, fmt.Errorf("publish to %s: timed out after %s", key, p.timeout))
	case <-ctx.Done():
		return errors.Wrap(errors.ErrRemoteUnavailable, fmt.Errorf("publish to %s: %w", key, ctx.Err()))
	}
	if err := token.Error(); err != nil {
		return errors.Wrap(errors.ErrRemoteUnavailable, fmt.Errorf("publish to %s: %w", key, err))
	}

	slog.Info("feed value published", "feed", key, "transport", "mqtt")
	return nil
}

// Close disconnects from the broker, waiting up to 250ms for in-flight
// work.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
