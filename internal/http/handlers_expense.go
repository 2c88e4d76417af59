package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toExpenseListJSON(s.manager.Expenses()))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := req.toExpense()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created := s.manager.AddExpense(r.Context(), e)
	s.logMutation(r.Context(), "expenses", "create", created.ID)
	writeJSON(w, http.StatusCreated, toExpenseJSON(created))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := req.toExpense()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	e.ID = id

	updated, ok := s.manager.UpdateExpense(r.Context(), e)
	if !ok {
		// Absent ids are a silent no-op, not an error.
		slog.InfoContext(r.Context(), "Update skipped, expense not found", "entity_id", id)
		writeJSON(w, http.StatusOK, map[string]any{"updated": false})
		return
	}
	s.logMutation(r.Context(), "expenses", "update", id)
	writeJSON(w, http.StatusOK, map[string]any{"updated": true, "expense": toExpenseJSON(updated)})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	deleted := s.manager.DeleteExpense(r.Context(), id)
	if deleted {
		s.logMutation(r.Context(), "expenses", "delete", id)
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}
