package broker

import (
	"context"
	"log/slog"
)

// LogPublisher stands in for the broker when it is disabled.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher { return &LogPublisher{} }

func (LogPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	slog.InfoContext(ctx, "event published", "topic", topic, "payload", string(payload))
	return nil
}
