package state

import (
	"context"

	"conti/internal/core"
)

// Collection identifies one of the three entity collections.
type Collection string

const (
	CollectionExpenses   Collection = "expenses"
	CollectionPartners   Collection = "partners"
	CollectionCategories Collection = "categories"
)

// Op is the kind of committed mutation.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Snapshot is an immutable copy of the collections affected by a mutation.
// Only the slices for affected collections are non-nil.
type Snapshot struct {
	Expenses   []core.Expense
	Partners   []core.Partner
	Categories []core.Category
}

// Event describes one committed mutation. Expense carries the full record
// for expense events (the deleted record for deletes) so observers need no
// read-back channel; it is nil for partner and category events. Prev holds
// the record as it was before an expense update, so observers tracking
// per-month aggregates can see both the month left and the month entered.
type Event struct {
	Collection Collection
	Op         Op
	EntityID   string
	Expense    *core.Expense
	Prev       *core.Expense
	Snapshot   Snapshot
}

// Observer receives mutation events after each commit. Observers are called
// synchronously in registration order; slow observers should hand off to
// their own goroutines.
type Observer interface {
	OnMutation(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) OnMutation(ctx context.Context, ev Event) {
	f(ctx, ev)
}
