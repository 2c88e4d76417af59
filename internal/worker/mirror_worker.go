// Package worker applies mutation events to the expense mirror.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"conti/internal/amqp"
	"conti/internal/sheets"
	"conti/internal/state"
)

// MirrorWorker consumes mutation messages and keeps the mirror backend in
// step with the expense collection. Partner and category events carry no
// row data and are skipped; reference repairs after deletes arrive as
// ordinary expense updates.
type MirrorWorker struct {
	appender sheets.RowAppender
	deleter  sheets.RowDeleter

	processed atomic.Int64
	skipped   atomic.Int64
}

func NewMirrorWorker(appender sheets.RowAppender, deleter sheets.RowDeleter) *MirrorWorker {
	return &MirrorWorker{appender: appender, deleter: deleter}
}

// HandleMutation applies one mutation message. Returning an error requeues
// the delivery on the broker.
func (w *MirrorWorker) HandleMutation(ctx context.Context, msg *amqp.MutationMessage) error {
	if msg.Collection != string(state.CollectionExpenses) {
		w.skipped.Add(1)
		return nil
	}

	switch state.Op(msg.Op) {
	case state.OpCreated, state.OpUpdated:
		if msg.Expense == nil {
			w.skipped.Add(1)
			slog.WarnContext(ctx, "Expense event without payload", "entity_id", msg.EntityID, "op", msg.Op)
			return nil
		}
		// An update replaces the mirrored row; the delete tolerates the
		// row not existing yet.
		if state.Op(msg.Op) == state.OpUpdated {
			if err := w.deleter.DeleteExpense(ctx, msg.EntityID); err != nil {
				return fmt.Errorf("replace mirrored row %s: %w", msg.EntityID, err)
			}
		}
		row := sheets.ExpenseRow{
			ID:           msg.Expense.ID,
			Date:         msg.Expense.Date,
			Description:  msg.Expense.Description,
			AmountCents:  msg.Expense.AmountCents,
			CategoryName: msg.Expense.CategoryName,
			PartnerName:  msg.Expense.PartnerName,
			Month:        msg.Expense.Month,
			Year:         msg.Expense.Year,
		}
		ref, err := w.appender.AppendExpense(ctx, row)
		if err != nil {
			return fmt.Errorf("append mirrored row %s: %w", msg.EntityID, err)
		}
		w.processed.Add(1)
		slog.InfoContext(ctx, "Mirror row written",
			"entity_id", msg.EntityID,
			"op", msg.Op,
			"row_ref", ref)
		return nil

	case state.OpDeleted:
		if err := w.deleter.DeleteExpense(ctx, msg.EntityID); err != nil {
			return fmt.Errorf("delete mirrored row %s: %w", msg.EntityID, err)
		}
		w.processed.Add(1)
		slog.InfoContext(ctx, "Mirror row deleted", "entity_id", msg.EntityID)
		return nil

	default:
		w.skipped.Add(1)
		slog.WarnContext(ctx, "Unknown mutation op", "op", msg.Op, "entity_id", msg.EntityID)
		return nil
	}
}

// Stats reports how many messages were applied and skipped.
func (w *MirrorWorker) Stats() (processed, skipped int64) {
	return w.processed.Load(), w.skipped.Load()
}
