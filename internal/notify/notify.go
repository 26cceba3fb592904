// Package notify fans out cross-instance change signals. One instance's
// successful remote write tells every other instance to refetch, and a
// remote log wipe tells them to drop their remote log listings.
package notify

import "context"

// EventKind discriminates the two broadcast signals.
type EventKind string

const (
	// EventChange signals that a remote table changed and listeners
	// should refetch.
	EventChange EventKind = "change"
	// EventLogsCleared signals that the remote log book was wiped.
	EventLogsCleared EventKind = "logs_cleared"
)

// Event is one broadcast signal. Table names the changed table for
// EventChange and is empty otherwise.
type Event struct {
	Kind  EventKind `json:"kind"`
	Table string    `json:"table,omitempty"`
}

// Notifier publishes and subscribes to league change signals.
type Notifier interface {
	PublishChange(ctx context.Context, table string) error
	PublishLogsCleared(ctx context.Context) error
	// Subscribe delivers events until ctx is cancelled. The returned
	// channel is closed when the subscription ends.
	Subscribe(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Noop is the notifier used when no broker is configured. Publishes are
// dropped and subscriptions deliver nothing.
type Noop struct{}

var _ Notifier = Noop{}

func (Noop) PublishChange(context.Context, string) error { return nil }

func (Noop) PublishLogsCleared(context.Context) error { return nil }

func (Noop) Subscribe(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (Noop) Close() error { return nil }
