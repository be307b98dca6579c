package eventbus

import (
	"sync"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/event"
)

type HandlerFunc func(event.Event) error

type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[event.Type][]HandlerFunc
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[event.Type][]HandlerFunc),
	}
}

func (b *InMemoryBus) Subscribe(eventType event.Type, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish delivers the event to every subscriber of its type, stopping
// at the first handler error. Handlers run outside the bus lock, so a
// handler may publish or subscribe without deadlocking.
func (b *InMemoryBus) Publish(evt event.Event) error {
	b.mu.RLock()
	handlers := make([]HandlerFunc, len(b.handlers[evt.Type]))
	copy(handlers, b.handlers[evt.Type])
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(evt); err != nil {
			return err
		}
	}

	return nil
}
