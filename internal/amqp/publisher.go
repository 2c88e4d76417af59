package amqp

import (
	"context"
	"log/slog"
	"time"

	"conti/internal/state"
)

// NameResolver supplies display names for the ids inside expense payloads.
// The state manager satisfies it.
type NameResolver interface {
	CategoryNameByID(id string) string
	PartnerNameByID(id string) string
}

// Publisher forwards committed mutations to the broker. It is registered as
// one state-manager observer among several; publish failures are logged and
// never fail the mutation, since the in-memory state already committed.
type Publisher struct {
	client *Client
	names  NameResolver
}

func NewPublisher(client *Client, names NameResolver) *Publisher {
	return &Publisher{client: client, names: names}
}

// OnMutation implements state.Observer.
func (p *Publisher) OnMutation(ctx context.Context, ev state.Event) {
	msg := &MutationMessage{
		Collection: string(ev.Collection),
		Op:         string(ev.Op),
		EntityID:   ev.EntityID,
		Timestamp:  time.Now(),
	}
	if e := ev.Expense; e != nil {
		msg.Expense = &ExpensePayload{
			ID:              e.ID,
			Date:            e.Date.Format("2006-01-02"),
			AmountCents:     e.Amount.Cents,
			Description:     e.Description,
			CategoryID:      e.CategoryID,
			CategoryName:    p.names.CategoryNameByID(e.CategoryID),
			PaidByPartnerID: e.PaidByPartnerID,
			PartnerName:     p.names.PartnerNameByID(e.PaidByPartnerID),
			Month:           e.Month,
			Year:            e.Year,
			EntryTimestamp:  e.EntryTimestamp,
		}
	}

	if err := p.client.PublishMutation(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mutation",
			"error", err,
			"collection", msg.Collection,
			"op", msg.Op,
			"entity_id", msg.EntityID)
	}
}
