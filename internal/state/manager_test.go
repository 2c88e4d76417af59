package state

import (
	"context"
	"fmt"
	"testing"
	"time"

	"conti/internal/core"
)

func testSeed() Seed {
	return Seed{
		Partners: []core.Partner{
			{ID: "p1", Name: "Anna", Share: 60},
			{ID: "p2", Name: core.UnassignedPartnerName},
		},
		Categories: []core.Category{
			{ID: "c1", Name: "Food"},
			{ID: "c2", Name: core.FallbackCategoryName},
		},
	}
}

func newTestManager(opts ...Option) *Manager {
	return New(testSeed(), opts...)
}

func TestAddExpenseDerivesCalendarFields(t *testing.T) {
	m := newTestManager()
	e := m.AddExpense(context.Background(), core.Expense{
		Date:        core.NewDate(2024, 3, 15),
		Amount:      core.Money{Cents: 5000},
		Description: "x",
		CategoryID:  "c1",
	})

	if e.Month != 3 || e.Year != 2024 {
		t.Fatalf("expected month=3 year=2024, got month=%d year=%d", e.Month, e.Year)
	}
	if e.ID == "" {
		t.Fatal("expected assigned id")
	}
	if e.EntryTimestamp.IsZero() {
		t.Fatal("expected entry timestamp")
	}
}

func TestAddExpenseIgnoresCallerDerivedFields(t *testing.T) {
	m := newTestManager()
	e := m.AddExpense(context.Background(), core.Expense{
		ID:             "forged",
		Date:           core.NewDate(2024, 7, 1),
		Amount:         core.Money{Cents: 100},
		Description:    "x",
		CategoryID:     "c1",
		Month:          12,
		Year:           1999,
		EntryTimestamp: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	if e.ID == "forged" {
		t.Fatal("caller-supplied id must be replaced")
	}
	if e.Month != 7 || e.Year != 2024 {
		t.Fatalf("derived fields not recomputed: month=%d year=%d", e.Month, e.Year)
	}
	if e.EntryTimestamp.Year() == 1999 {
		t.Fatal("caller-supplied entry timestamp must be replaced")
	}
}

func TestExpensesSortedByDateDescending(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	dates := []core.Date{
		core.NewDate(2024, 1, 10),
		core.NewDate(2024, 3, 5),
		core.NewDate(2023, 12, 31),
		core.NewDate(2024, 2, 14),
	}
	for i, d := range dates {
		m.AddExpense(ctx, core.Expense{
			Date:        d,
			Amount:      core.Money{Cents: 100},
			Description: fmt.Sprintf("e%d", i),
			CategoryID:  "c1",
		})
	}

	got := m.Expenses()
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date.Time) {
			t.Fatalf("expenses out of order at %d: %v before %v", i, got[i-1].Date, got[i].Date)
		}
	}
}

func TestExpenseSortTieBreakIsStable(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	d := core.NewDate(2024, 5, 1)
	var ids []string
	for i := 0; i < 5; i++ {
		e := m.AddExpense(ctx, core.Expense{
			Date:        d,
			Amount:      core.Money{Cents: 100},
			Description: fmt.Sprintf("tie%d", i),
			CategoryID:  "c1",
		})
		ids = append(ids, e.ID)
	}

	got := m.Expenses()
	if len(got) != 5 {
		t.Fatalf("expected 5 expenses, got %d", len(got))
	}
	for i, e := range got {
		if e.ID != ids[i] {
			t.Fatalf("tie order changed at %d: expected %s, got %s", i, ids[i], e.ID)
		}
	}
}

func TestUpdateExpenseRederivesAndRestamps(t *testing.T) {
	clock := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	m := newTestManager(WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	e := m.AddExpense(ctx, core.Expense{
		Date:        core.NewDate(2024, 3, 15),
		Amount:      core.Money{Cents: 5000},
		Description: "before",
		CategoryID:  "c1",
	})

	clock = clock.Add(time.Hour)
	e.Date = core.NewDate(2023, 11, 2)
	e.Description = "after"
	updated, ok := m.UpdateExpense(ctx, e)
	if !ok {
		t.Fatal("expected update to match")
	}
	if updated.Month != 11 || updated.Year != 2023 {
		t.Fatalf("calendar fields stale: month=%d year=%d", updated.Month, updated.Year)
	}
	if !updated.EntryTimestamp.Equal(clock) {
		t.Fatalf("entry timestamp not restamped: %v", updated.EntryTimestamp)
	}

	stored, ok := m.ExpenseByID(e.ID)
	if !ok || stored.Description != "after" {
		t.Fatalf("stored record not replaced: %+v", stored)
	}
}

func TestMutationsOnAbsentIDsAreNoOps(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	m.AddExpense(ctx, core.Expense{
		Date:        core.NewDate(2024, 1, 1),
		Amount:      core.Money{Cents: 100},
		Description: "keep",
		CategoryID:  "c1",
	})
	before := m.Expenses()

	if _, ok := m.UpdateExpense(ctx, core.Expense{ID: "nope", Date: core.NewDate(2024, 2, 2)}); ok {
		t.Fatal("UpdateExpense on absent id must be a no-op")
	}
	if m.DeleteExpense(ctx, "nope") {
		t.Fatal("DeleteExpense on absent id must be a no-op")
	}
	if _, ok := m.UpdatePartner(ctx, core.Partner{ID: "nope", Name: "x"}); ok {
		t.Fatal("UpdatePartner on absent id must be a no-op")
	}
	if m.DeletePartner(ctx, "nope") {
		t.Fatal("DeletePartner on absent id must be a no-op")
	}
	if _, ok := m.UpdateCategory(ctx, core.Category{ID: "nope", Name: "x"}); ok {
		t.Fatal("UpdateCategory on absent id must be a no-op")
	}
	if m.DeleteCategory(ctx, "nope") {
		t.Fatal("DeleteCategory on absent id must be a no-op")
	}

	after := m.Expenses()
	if len(after) != len(before) {
		t.Fatalf("collection changed: %d -> %d", len(before), len(after))
	}
	for i := range after {
		if after[i] != before[i] {
			t.Fatalf("expense %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestDeletePartnerReassignsToSentinel(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	m.AddExpense(ctx, core.Expense{
		Date:            core.NewDate(2024, 4, 1),
		Amount:          core.Money{Cents: 100},
		Description:     "paid by anna",
		CategoryID:      "c1",
		PaidByPartnerID: "p1",
	})
	m.AddExpense(ctx, core.Expense{
		Date:        core.NewDate(2024, 4, 2),
		Amount:      core.Money{Cents: 200},
		Description: "unattributed",
		CategoryID:  "c1",
	})

	if !m.DeletePartner(ctx, "p1") {
		t.Fatal("expected delete to match")
	}

	for _, e := range m.Expenses() {
		if e.PaidByPartnerID == "p1" {
			t.Fatalf("expense %s still references deleted partner", e.ID)
		}
	}
	got, _ := m.ExpenseByID(mustFindByDesc(t, m, "paid by anna"))
	if got.PaidByPartnerID != "p2" {
		t.Fatalf("expected reassignment to sentinel p2, got %q", got.PaidByPartnerID)
	}
}

func TestDeletePartnerWithoutSentinelClearsReference(t *testing.T) {
	m := New(Seed{
		Partners:   []core.Partner{{ID: "p1", Name: "Anna"}},
		Categories: []core.Category{{ID: "c1", Name: "Food"}},
	})
	ctx := context.Background()
	e := m.AddExpense(ctx, core.Expense{
		Date:            core.NewDate(2024, 4, 1),
		Amount:          core.Money{Cents: 100},
		Description:     "x",
		CategoryID:      "c1",
		PaidByPartnerID: "p1",
	})

	m.DeletePartner(ctx, "p1")

	got, _ := m.ExpenseByID(e.ID)
	if got.PaidByPartnerID != "" {
		t.Fatalf("expected cleared reference, got %q", got.PaidByPartnerID)
	}
}

func TestDeleteCategoryReassignsToMiscellaneous(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	e := m.AddExpense(ctx, core.Expense{
		Date:        core.NewDate(2024, 4, 1),
		Amount:      core.Money{Cents: 100},
		Description: "x",
		CategoryID:  "c1",
	})

	if !m.DeleteCategory(ctx, "c1") {
		t.Fatal("expected delete to match")
	}

	got, _ := m.ExpenseByID(e.ID)
	if got.CategoryID != "c2" {
		t.Fatalf("expected reassignment to c2, got %q", got.CategoryID)
	}
	for _, e := range m.Expenses() {
		if e.CategoryID == "c1" {
			t.Fatalf("expense %s still references deleted category", e.ID)
		}
	}
}

func TestDeleteFallbackCategoryClearsReferences(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	e := m.AddExpense(ctx, core.Expense{
		Date:        core.NewDate(2024, 4, 1),
		Amount:      core.Money{Cents: 100},
		Description: "x",
		CategoryID:  "c2",
	})

	m.DeleteCategory(ctx, "c2")

	got, _ := m.ExpenseByID(e.ID)
	if got.CategoryID != "" {
		t.Fatalf("expected cleared reference, got %q", got.CategoryID)
	}
}

func TestNameLookups(t *testing.T) {
	m := newTestManager()

	if got := m.CategoryNameByID("c1"); got != "Food" {
		t.Fatalf("CategoryNameByID(c1) = %q", got)
	}
	if got := m.CategoryNameByID("missing"); got != core.NameNotAvailable {
		t.Fatalf("CategoryNameByID(missing) = %q", got)
	}
	if got := m.PartnerNameByID(""); got != core.NameNotAvailable {
		t.Fatalf("PartnerNameByID(\"\") = %q", got)
	}
	if got := m.PartnerNameByID("p1"); got != "Anna" {
		t.Fatalf("PartnerNameByID(p1) = %q", got)
	}
	if got := m.PartnerNameByID("missing"); got != core.UnknownPartnerName {
		t.Fatalf("PartnerNameByID(missing) = %q", got)
	}
}

func TestAddExpenseRoundTrip(t *testing.T) {
	m := newTestManager()
	in := core.Expense{
		Date:            core.NewDate(2024, 3, 15),
		Amount:          core.Money{Cents: 5000},
		Description:     "round trip",
		CategoryID:      "c1",
		PaidByPartnerID: "p1",
	}
	created := m.AddExpense(context.Background(), in)

	got, ok := m.ExpenseByID(created.ID)
	if !ok {
		t.Fatal("expense not found after add")
	}
	if got != created {
		t.Fatalf("read-back mismatch:\n add: %+v\n got: %+v", created, got)
	}
	if got.Date != in.Date || got.Amount != in.Amount || got.Description != in.Description ||
		got.CategoryID != in.CategoryID || got.PaidByPartnerID != in.PaidByPartnerID {
		t.Fatalf("caller fields not preserved: %+v", got)
	}
}

func TestObserversReceiveMutationEvents(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	var events []Event
	m.Subscribe(ObserverFunc(func(_ context.Context, ev Event) {
		events = append(events, ev)
	}))

	e := m.AddExpense(ctx, core.Expense{
		Date:            core.NewDate(2024, 4, 1),
		Amount:          core.Money{Cents: 100},
		Description:     "x",
		CategoryID:      "c1",
		PaidByPartnerID: "p1",
	})
	m.DeletePartner(ctx, "p1")

	if len(events) != 3 {
		t.Fatalf("expected 3 events (create, partner delete, reassignment), got %d", len(events))
	}
	if events[0].Collection != CollectionExpenses || events[0].Op != OpCreated {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[0].Expense == nil || events[0].Expense.ID != e.ID {
		t.Fatalf("create event missing expense payload: %+v", events[0])
	}
	if events[1].Collection != CollectionPartners || events[1].Op != OpDeleted {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
	if events[2].Collection != CollectionExpenses || events[2].Op != OpUpdated {
		t.Fatalf("unexpected third event: %+v", events[2])
	}
	if events[2].Expense.PaidByPartnerID != "p2" {
		t.Fatalf("reassignment event carries stale reference: %+v", events[2].Expense)
	}
}

func TestUpdateEventCarriesPriorRecord(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	e := m.AddExpense(ctx, core.Expense{
		Date:        core.NewDate(2024, 3, 15),
		Amount:      core.Money{Cents: 5000},
		Description: "rent",
		CategoryID:  "c1",
	})

	var events []Event
	m.Subscribe(ObserverFunc(func(_ context.Context, ev Event) {
		events = append(events, ev)
	}))

	moved := e
	moved.Date = core.NewDate(2024, 4, 2)
	if _, ok := m.UpdateExpense(ctx, moved); !ok {
		t.Fatal("update failed")
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Expense == nil || ev.Expense.Month != 4 || ev.Expense.Year != 2024 {
		t.Fatalf("update event payload: %+v", ev.Expense)
	}
	if ev.Prev == nil {
		t.Fatal("update event missing prior record")
	}
	if ev.Prev.Month != 3 || ev.Prev.Year != 2024 {
		t.Fatalf("prior record month/year = %d/%d", ev.Prev.Month, ev.Prev.Year)
	}
}

func TestDeleteEventCarriesRemovedRecord(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	e := m.AddExpense(ctx, core.Expense{
		Date:        core.NewDate(2024, 3, 15),
		Amount:      core.Money{Cents: 700},
		Description: "coffee",
		CategoryID:  "c1",
	})

	var events []Event
	m.Subscribe(ObserverFunc(func(_ context.Context, ev Event) {
		events = append(events, ev)
	}))

	if !m.DeleteExpense(ctx, e.ID) {
		t.Fatal("delete failed")
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Op != OpDeleted || ev.Expense == nil {
		t.Fatalf("delete event missing removed record: %+v", ev)
	}
	if ev.Expense.ID != e.ID || ev.Expense.Month != 3 || ev.Expense.Year != 2024 {
		t.Fatalf("removed record = %+v", ev.Expense)
	}
	if len(ev.Snapshot.Expenses) != 0 {
		t.Fatalf("snapshot still holds %d expenses", len(ev.Snapshot.Expenses))
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	m.AddExpense(ctx, core.Expense{
		Date:        core.NewDate(2024, 4, 1),
		Amount:      core.Money{Cents: 100},
		Description: "original",
		CategoryID:  "c1",
	})

	snap := m.Expenses()
	snap[0].Description = "tampered"

	got := m.Expenses()
	if got[0].Description != "original" {
		t.Fatal("snapshot mutation leaked into manager state")
	}
}

func TestSeedNormalization(t *testing.T) {
	m := New(Seed{
		Expenses: []core.Expense{
			{Date: core.NewDate(2023, 2, 3), Amount: core.Money{Cents: 100}, Description: "seeded", CategoryID: "c1"},
			{Date: core.NewDate(2023, 8, 9), Amount: core.Money{Cents: 200}, Description: "later", CategoryID: "c1"},
		},
		Partners:   []core.Partner{{Name: "NoID"}},
		Categories: []core.Category{{Name: "NoID"}},
	})

	exps := m.Expenses()
	if exps[0].Description != "later" {
		t.Fatalf("seed expenses not sorted: %+v", exps)
	}
	for _, e := range exps {
		if e.ID == "" || e.Month == 0 || e.Year == 0 || e.EntryTimestamp.IsZero() {
			t.Fatalf("seed expense not normalized: %+v", e)
		}
	}
	if m.Partners()[0].ID == "" || m.Categories()[0].ID == "" {
		t.Fatal("seed entities without ids must get one assigned")
	}
}

func mustFindByDesc(t *testing.T, m *Manager, desc string) string {
	t.Helper()
	for _, e := range m.Expenses() {
		if e.Description == desc {
			return e.ID
		}
	}
	t.Fatalf("no expense with description %q", desc)
	return ""
}
