package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var succeeded, failed []Event
	d.Subscribe(EventLoginSucceeded, func(_ context.Context, e Event) error {
		succeeded = append(succeeded, e)
		return nil
	})
	d.Subscribe(EventLoginFailed, func(_ context.Context, e Event) error {
		failed = append(failed, e)
		return nil
	})

	d.Publish(context.Background(), Event{Type: EventLoginSucceeded, Email: "a@b.com", OccurredAt: time.Now()})
	d.Publish(context.Background(), Event{Type: EventLoginSucceeded, Email: "c@d.com", OccurredAt: time.Now()})
	d.Publish(context.Background(), Event{Type: EventLoginFailed, Email: "a@b.com", OccurredAt: time.Now()})

	assert.Len(t, succeeded, 2)
	assert.Len(t, failed, 1)
	assert.Equal(t, "a@b.com", succeeded[0].Email)
}

func TestDispatcherFanOut(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	for i := 0; i < 3; i++ {
		d.Subscribe(EventLoggedOut, func(context.Context, Event) error {
			calls++
			return nil
		})
	}

	d.Publish(context.Background(), Event{Type: EventLoggedOut})
	assert.Equal(t, 3, calls)
}

func TestDispatcherSwallowsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	var second bool
	d.Subscribe(EventTokenRefreshed, func(context.Context, Event) error {
		return errors.New("sink unavailable")
	})
	d.Subscribe(EventTokenRefreshed, func(context.Context, Event) error {
		second = true
		return nil
	})

	d.Publish(context.Background(), Event{Type: EventTokenRefreshed})
	assert.True(t, second, "a failing handler must not block the others")
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NotPanics(t, func() {
		d.Publish(context.Background(), Event{Type: EventTenantSwitched})
	})
}
