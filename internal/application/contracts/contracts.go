package contracts

import "github.com/rcarvalho-pb/ptp_tester-go/internal/domain/event"

// EventPublisher is the consumer-side contract for emitting engine and
// dispatch events. The in-memory bus satisfies it.
type EventPublisher interface {
	Publish(event.Event) error
}
