// Package sheets defines the ports for the expense mirror backends.
package sheets

import "context"

// ExpenseRow is one mirrored expense. Names are already resolved; the
// mirror has no access to the live collections.
type ExpenseRow struct {
	ID           string
	Date         string // YYYY-MM-DD
	Description  string
	AmountCents  int64
	CategoryName string
	PartnerName  string
	Month        int
	Year         int
}

type (
	// RowAppender writes one expense row to the mirror.
	RowAppender interface {
		AppendExpense(ctx context.Context, row ExpenseRow) (rowRef string, err error)
	}

	// RowDeleter removes the mirrored row for an expense id.
	RowDeleter interface {
		DeleteExpense(ctx context.Context, id string) error
	}
)
