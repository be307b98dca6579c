package eventbus_test

import (
	"errors"
	"testing"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/event"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/eventbus"
)

func TestPublish_ShouldDeliverToEverySubscriberOfTheType(t *testing.T) {
	bus := eventbus.NewInMemoryBus()

	var first, second, other int
	bus.Subscribe(event.PayloadRefreshed, func(event.Event) error { first++; return nil })
	bus.Subscribe(event.PayloadRefreshed, func(event.Event) error { second++; return nil })
	bus.Subscribe(event.FieldsRefreshed, func(event.Event) error { other++; return nil })

	if err := bus.Publish(event.Event{Type: event.PayloadRefreshed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != 1 || second != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", first, second)
	}
	if other != 0 {
		t.Errorf("subscriber of another type must not be called, got %d", other)
	}
}

func TestPublish_ShouldStopAtFirstHandlerError(t *testing.T) {
	bus := eventbus.NewInMemoryBus()
	boom := errors.New("boom")

	var reached bool
	bus.Subscribe(event.RequestQueued, func(event.Event) error { return boom })
	bus.Subscribe(event.RequestQueued, func(event.Event) error { reached = true; return nil })

	if err := bus.Publish(event.Event{Type: event.RequestQueued}); !errors.Is(err, boom) {
		t.Fatalf("expected the handler error, got %v", err)
	}
	if reached {
		t.Error("later subscribers must not run after an error")
	}
}

func TestPublish_ShouldAllowReentrantPublishAndSubscribe(t *testing.T) {
	bus := eventbus.NewInMemoryBus()

	var nested int
	bus.Subscribe(event.ResponseReceived, func(event.Event) error { nested++; return nil })

	// a handler publishing and subscribing while being invoked must not
	// deadlock on the bus lock
	bus.Subscribe(event.RequestQueued, func(event.Event) error {
		bus.Subscribe(event.RequestFailed, func(event.Event) error { return nil })
		return bus.Publish(event.Event{Type: event.ResponseReceived})
	})

	if err := bus.Publish(event.Event{Type: event.RequestQueued}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nested != 1 {
		t.Errorf("expected the nested publish to deliver, got %d", nested)
	}
}
