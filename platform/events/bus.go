package events

import (
	"context"
	"sync"

	"salesops_backend/platform/logger"
)

// InMemoryBus is a process-local Bus implementation. Async handlers run in
// their own goroutines; failures are logged, never propagated to publishers.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all handlers asynchronously. The handler
// context is detached from the request so in-flight work survives the response.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	subscribers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, h := range subscribers {
		handler := h
		go func() {
			if err := handler.Handle(context.WithoutCancel(ctx), event); err != nil {
				b.log.Error("event handler failed",
					"event", event.EventName(),
					"error", err,
				)
			}
		}()
	}
}

// PublishSync dispatches the event and waits for every handler, returning the
// first error encountered.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	subscribers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, handler := range subscribers {
		if err := handler.Handle(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
