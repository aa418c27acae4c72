package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/columns/internal/entity"
)

type EventRepository interface {
	Publish(ctx context.Context, event entity.Event) error
}

type redisEvents struct {
	client  *redis.Client
	channel string
}

// NewEventRepository publishes every event as JSON on a redis channel.
func NewEventRepository(client *redis.Client, channel string) EventRepository {
	return &redisEvents{
		client:  client,
		channel: channel,
	}
}

func (that *redisEvents) Publish(ctx context.Context, event entity.Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

type logEvents struct {
	logger *slog.Logger
}

// NewLogEventRepository writes events to the log. It is used when redis is disabled.
func NewLogEventRepository(logger *slog.Logger) EventRepository {
	return &logEvents{
		logger: logger.With("component", "events"),
	}
}

func (that *logEvents) Publish(_ context.Context, event entity.Event) error {
	that.logger.Debug("event",
		"session_id", event.SessionID,
		"type", event.Type,
		"column", event.Column,
		"cleared", event.Cleared,
		"state", event.State,
	)

	return nil
}
