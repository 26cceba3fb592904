package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	changesChannel = "leagueops:changes"
	logsBusChannel = "leagueops:logs-bus"
)

// RedisNotifier broadcasts events over two redis pub/sub channels: one for
// table changes, one for the logs bus.
type RedisNotifier struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Notifier = (*RedisNotifier)(nil)

// NewRedis connects a dedicated client to the given redis URL.
func NewRedis(ctx context.Context, url string, logger *slog.Logger) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisWithClient(client, logger), nil
}

// NewRedisWithClient wraps an existing client, for tests.
func NewRedisWithClient(client *redis.Client, logger *slog.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

func (n *RedisNotifier) PublishChange(ctx context.Context, table string) error {
	return n.publish(ctx, changesChannel, Event{Kind: EventChange, Table: table})
}

func (n *RedisNotifier) PublishLogsCleared(ctx context.Context) error {
	return n.publish(ctx, logsBusChannel, Event{Kind: EventLogsCleared})
}

func (n *RedisNotifier) publish(ctx context.Context, channel string, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}

func (n *RedisNotifier) Subscribe(ctx context.Context) (<-chan Event, error) {
	sub := n.client.Subscribe(ctx, changesChannel, logsBusChannel)
	// Confirm the subscription before returning so publishes after
	// Subscribe are never missed.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					n.logger.Warn("dropping malformed event",
						"channel", msg.Channel, "error", err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
