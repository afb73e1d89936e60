package adminauth

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Notification variants understood by the console.
const (
	VariantSuccess     = "success"
	VariantDestructive = "destructive"
)

// NotificationChannel is the pub/sub channel the console UI listens on.
const NotificationChannel = "admin:notifications"

// Notification is the message shape accepted by the notification surface.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// Notifier delivers outcome notifications to the console.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// RedisNotifier publishes notifications on a Redis pub/sub channel.
type RedisNotifier struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisNotifier constructs a RedisNotifier.
func NewRedisNotifier(client *redis.Client, logger *slog.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

// Notify publishes the notification. Delivery is best effort; a
// publish failure is logged, never surfaced to the operation.
func (n *RedisNotifier) Notify(ctx context.Context, msg Notification) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := n.client.Publish(ctx, NotificationChannel, payload).Err(); err != nil && n.logger != nil {
		n.logger.Warn("publish notification", slog.Any("error", err))
	}
}

var _ Notifier = (*RedisNotifier)(nil)
