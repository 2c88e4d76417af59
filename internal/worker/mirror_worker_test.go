package worker

import (
	"context"
	"testing"

	"conti/internal/amqp"
	"conti/internal/sheets/memory"
)

func expenseMsg(op, id, desc string) *amqp.MutationMessage {
	return &amqp.MutationMessage{
		Collection: "expenses",
		Op:         op,
		EntityID:   id,
		Expense: &amqp.ExpensePayload{
			ID:           id,
			Date:         "2024-03-15",
			AmountCents:  1000,
			Description:  desc,
			CategoryName: "Food",
			PartnerName:  "n/a",
			Month:        3,
			Year:         2024,
		},
	}
}

func TestHandleMutationCreateUpdateDelete(t *testing.T) {
	mirror := memory.New()
	w := NewMirrorWorker(mirror, mirror)
	ctx := context.Background()

	if err := w.HandleMutation(ctx, expenseMsg("created", "e1", "v1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := w.HandleMutation(ctx, expenseMsg("updated", "e1", "v2")); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	rows := mirror.Rows()
	if len(rows) != 1 || rows[0].Description != "v2" {
		t.Fatalf("unexpected mirror rows: %+v", rows)
	}

	del := &amqp.MutationMessage{Collection: "expenses", Op: "deleted", EntityID: "e1"}
	if err := w.HandleMutation(ctx, del); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(mirror.Rows()) != 0 {
		t.Fatalf("row not removed: %+v", mirror.Rows())
	}

	processed, _ := w.Stats()
	if processed != 3 {
		t.Fatalf("processed = %d", processed)
	}
}

func TestHandleMutationSkipsOtherCollections(t *testing.T) {
	mirror := memory.New()
	w := NewMirrorWorker(mirror, mirror)

	msg := &amqp.MutationMessage{Collection: "partners", Op: "deleted", EntityID: "p1"}
	if err := w.HandleMutation(context.Background(), msg); err != nil {
		t.Fatalf("expected skip, got %v", err)
	}
	if len(mirror.Rows()) != 0 {
		t.Fatal("partner event must not touch the mirror")
	}
	_, skipped := w.Stats()
	if skipped != 1 {
		t.Fatalf("skipped = %d", skipped)
	}
}

func TestHandleMutationExpenseEventWithoutPayload(t *testing.T) {
	mirror := memory.New()
	w := NewMirrorWorker(mirror, mirror)

	msg := &amqp.MutationMessage{Collection: "expenses", Op: "created", EntityID: "e1"}
	if err := w.HandleMutation(context.Background(), msg); err != nil {
		t.Fatalf("expected skip for missing payload, got %v", err)
	}
	if len(mirror.Rows()) != 0 {
		t.Fatal("message without payload must not write a row")
	}
}
