package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/constants"
)

// Broker queues library events and delivers each one to every subscriber
// in order. Subscribers may register before Run starts.
type Broker struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	queue       chan Event
	logger      *zerolog.Logger
}

// NewBroker creates a broker with a bounded queue.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		queue:  make(chan Event, constants.ChannelBufferSize),
		logger: logger,
	}
}

// Subscribe adds sub to the delivery list.
func (b *Broker) Subscribe(sub Subscriber) {
	b.mu.Lock()
	b.subscribers = append(b.subscribers, sub)
	b.mu.Unlock()
}

// Publish queues event without blocking. When the queue is full the event
// is dropped and a warning is logged.
func (b *Broker) Publish(event Event) {
	select {
	case b.queue <- event:
	default:
		b.logger.Warn().Str("event_type", string(event.Type)).Msg("Event queue full, event dropped")
	}
}

// Run delivers queued events until ctx is done, then closes every
// subscriber.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			subs := b.subscribers
			b.subscribers = nil
			b.mu.Unlock()
			for _, sub := range subs {
				_ = sub.Close()
			}
			return
		case event := <-b.queue:
			b.deliver(event)
		}
	}
}

func (b *Broker) deliver(event Event) {
	b.mu.RLock()
	subs := append([]Subscriber(nil), b.subscribers...)
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Send(event); err != nil {
			b.logger.Warn().Err(err).Str("event_type", string(event.Type)).Msg("Subscriber rejected event")
		}
	}
}
