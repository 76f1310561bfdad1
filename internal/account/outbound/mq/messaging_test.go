package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/danielmsk/accord/internal/account/usecase"
	"github.com/danielmsk/accord/internal/pkg/instrument"
	"github.com/danielmsk/accord/internal/pkg/messaging"
	"github.com/danielmsk/accord/internal/shared/event"
)

type fakeBroker struct {
	destination string
	msg         messaging.OutgoingMessage
	err         error
}

func (f *fakeBroker) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.destination = destination
	f.msg = msg

	return messaging.PublishResult{Topic: destination}, f.err
}

func (f *fakeBroker) Close() error { return nil }

func TestPublishAccountCreated(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		broker := &fakeBroker{}
		m := NewMessaging(broker, instrument.NewNoop())
		ctx := instrument.SetCorrelationID(context.Background(), "cid-123")

		// Act
		err := m.PublishAccountCreated(ctx, usecase.AccountCreatedEvent{
			EventID:   42,
			AccountID: "acc-1",
			Username:  "alice",
			CreatedAt: "2026-08-28T12:00:00Z",
		})

		// Assert
		if err != nil {
			t.Fatalf("publish: %v", err)
		}
		if broker.destination != event.AccountCreatedDestination {
			t.Fatalf("expected destination %q, got %q", event.AccountCreatedDestination, broker.destination)
		}
		if string(broker.msg.Key) != "acc-1" {
			t.Fatalf("expected partition key acc-1, got %q", broker.msg.Key)
		}

		var published event.AccountCreatedMessage
		if err := json.Unmarshal(broker.msg.Body, &published); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if published.EventID != 42 || published.AccountID != "acc-1" || published.Username != "alice" {
			t.Fatalf("unexpected payload: %+v", published)
		}

		if len(broker.msg.Headers) != 1 || broker.msg.Headers[0].Key != "cID" {
			t.Fatalf("expected a cID header, got %+v", broker.msg.Headers)
		}
		if string(broker.msg.Headers[0].Value) != "cid-123" {
			t.Fatalf("expected correlation id propagated, got %q", broker.msg.Headers[0].Value)
		}
	})

	t.Run("BrokerFailure", func(t *testing.T) {

		// Arrange
		broker := &fakeBroker{err: errors.New("broker unavailable")}
		m := NewMessaging(broker, instrument.NewNoop())

		// Act
		err := m.PublishAccountCreated(context.Background(), usecase.AccountCreatedEvent{
			EventID:   42,
			AccountID: "acc-1",
			Username:  "alice",
		})

		// Assert
		if err == nil {
			t.Fatalf("expected publish error")
		}
	})
}
