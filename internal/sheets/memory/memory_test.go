package memory

import (
	"context"
	"testing"

	"conti/internal/sheets"
)

func TestAppendAndDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.AppendExpense(ctx, sheets.ExpenseRow{ID: "a", Description: "first"})
	if err != nil || ref != "mem:1" {
		t.Fatalf("AppendExpense = %q, %v", ref, err)
	}
	s.AppendExpense(ctx, sheets.ExpenseRow{ID: "b", Description: "second"})

	if err := s.DeleteExpense(ctx, "a"); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	rows := s.Rows()
	if len(rows) != 1 || rows[0].ID != "b" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestAppendReplacesExistingID(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.AppendExpense(ctx, sheets.ExpenseRow{ID: "a", Description: "v1"})
	s.AppendExpense(ctx, sheets.ExpenseRow{ID: "a", Description: "v2"})

	rows := s.Rows()
	if len(rows) != 1 || rows[0].Description != "v2" {
		t.Fatalf("expected single replaced row, got %+v", rows)
	}
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	s := New()
	if err := s.DeleteExpense(context.Background(), "nope"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
