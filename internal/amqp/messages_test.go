package amqp

import (
	"testing"
	"time"
)

func TestMutationMessageRoundTrip(t *testing.T) {
	msg := &MutationMessage{
		Collection: "expenses",
		Op:         "created",
		EntityID:   "abc",
		Expense: &ExpensePayload{
			ID:           "abc",
			Date:         "2024-03-15",
			AmountCents:  5000,
			Description:  "x",
			CategoryID:   "c1",
			CategoryName: "Food",
			PartnerName:  "n/a",
			Month:        3,
			Year:         2024,
		},
		Timestamp: time.Now().UTC(),
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	got, err := MutationMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if got.Collection != msg.Collection || got.Op != msg.Op || got.EntityID != msg.EntityID {
		t.Fatalf("envelope mismatch: %+v", got)
	}
	if got.Expense == nil || *got.Expense != *msg.Expense {
		t.Fatalf("payload mismatch: %+v", got.Expense)
	}
}

func TestMutationMessageWithoutPayload(t *testing.T) {
	msg := &MutationMessage{Collection: "partners", Op: "deleted", EntityID: "p1"}
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	got, err := MutationMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if got.Expense != nil {
		t.Fatalf("expected nil payload, got %+v", got.Expense)
	}
}

func TestMutationMessageFromJSONInvalid(t *testing.T) {
	if _, err := MutationMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
