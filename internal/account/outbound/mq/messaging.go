package mq

import (
	"context"
	"encoding/json"

	"github.com/danielmsk/accord/internal/account/usecase"
	"github.com/danielmsk/accord/internal/pkg/instrument"
	"github.com/danielmsk/accord/internal/pkg/messaging"
	"github.com/danielmsk/accord/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishAccountCreated(ctx context.Context, msg usecase.AccountCreatedEvent) error {
	ctx, span := m.ins.Tracer("account.outbound.mq").Start(ctx, "PublishAccountCreated")
	defer span.End()

	body, err := json.Marshal(event.AccountCreatedMessage{
		EventID:   msg.EventID,
		AccountID: msg.AccountID,
		Username:  msg.Username,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.AccountCreatedDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(msg.AccountID),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
