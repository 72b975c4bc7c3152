package vehicle

import (
	"context"

	"torque-lite-pro/internal/routing"
	"torque-lite-pro/internal/session"
)

// multiConsumer fans one session out to several consumers.
type multiConsumer struct {
	consumers []routing.Consumer
}

// NewMultiConsumer combines consumers into one; every consumer is notified
// even when an earlier one fails, and the first error is reported.
func NewMultiConsumer(consumers ...routing.Consumer) routing.Consumer {
	filtered := make([]routing.Consumer, 0, len(consumers))
	for _, c := range consumers {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &multiConsumer{consumers: filtered}
}

// Notify delivers the session to all consumers.
func (m *multiConsumer) Notify(ctx context.Context, sess *session.Session) error {
	var firstErr error
	for _, consumer := range m.consumers {
		if err := consumer.Notify(ctx, sess); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
