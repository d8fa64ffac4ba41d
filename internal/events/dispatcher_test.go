package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("mail relay down")
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventPasswordResetRequested, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), New(EventUserRegistered, 1, UserRegisteredPayload{Username: "alice"}))
	if err == nil {
		t.Fatal("expected handler error to be reported")
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestNewStampsEvent(t *testing.T) {
	e := New(EventPasswordResetRequested, 7, nil)
	if e.ID == "" || e.Timestamp.IsZero() || e.UserID != 7 {
		t.Fatalf("unexpected event %+v", e)
	}
}
