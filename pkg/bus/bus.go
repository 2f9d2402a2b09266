package bus

import (
	"sync"
)

const defaultBufferSize = 100

// Bus fans palette lifecycle events out to any number of observers.
type Bus struct {
	eventSubscribers      map[uint64]chan Event
	nextEventSubscriberID uint64

	done      chan struct{}
	closeOnce sync.Once

	mu sync.RWMutex
}

func New() *Bus {
	return &Bus{
		eventSubscribers: make(map[uint64]chan Event),
		done:             make(chan struct{}),
	}
}

func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)

		b.mu.Lock()
		for id, ch := range b.eventSubscribers {
			close(ch)
			delete(b.eventSubscribers, id)
		}
		b.mu.Unlock()
	})
}
