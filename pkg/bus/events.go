package bus

import (
	"context"
	"sync"
	"time"
)

type EventType string

const (
	EventPaletteRequested EventType = "palette_requested"
	EventPaletteGenerated EventType = "palette_generated"
	EventPaletteFallback  EventType = "palette_fallback"
	EventPaletteFailed    EventType = "palette_failed"
)

type Event struct {
	Type      EventType         `json:"type"`
	At        time.Time         `json:"at"`
	RequestID string            `json:"request_id,omitempty"`
	Provider  string            `json:"provider,omitempty"`
	Model     string            `json:"model,omitempty"`
	Payload   map[string]string `json:"payload,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// PublishEvent delivers event to every subscriber without blocking. It
// reports false only when ctx is done or the bus is closed. A nil bus accepts
// and drops everything.
func (b *Bus) PublishEvent(ctx context.Context, event Event) bool {
	if b == nil {
		return true
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	select {
	case <-ctx.Done():
		return false
	case <-b.done:
		return false
	default:
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.eventSubscribers {
		select {
		case ch <- event:
		default:
			// Drop instead of blocking the publisher on slow subscribers.
		}
	}

	return true
}

func (b *Bus) SubscribeEvents(ctx context.Context, buffer int) (<-chan Event, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	if buffer <= 0 {
		buffer = defaultBufferSize
	}

	ch := make(chan Event, buffer)

	b.mu.Lock()
	select {
	case <-b.done:
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	default:
	}

	id := b.nextEventSubscriberID
	b.nextEventSubscriberID++
	b.eventSubscribers[id] = ch
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			if eventCh, ok := b.eventSubscribers[id]; ok {
				delete(b.eventSubscribers, id)
				close(eventCh)
			}
			b.mu.Unlock()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-b.done:
			unsubscribe()
		}
	}()

	return ch, unsubscribe
}
