package http

import (
	"log/slog"
	"net/http"
	"strings"

	"conti/internal/core"
)

type categoryRequest struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

func (req categoryRequest) toCategory() (core.Category, error) {
	c := core.Category{Name: strings.TrimSpace(req.Name), Note: strings.TrimSpace(req.Note)}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	return c, nil
}

func toCategoryListJSON(cs []core.Category) []categoryJSON {
	out := make([]categoryJSON, 0, len(cs))
	for _, c := range cs {
		out = append(out, categoryJSON{ID: c.ID, Name: c.Name, Note: c.Note})
	}
	return out
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCategoryListJSON(s.manager.Categories()))
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := req.toCategory()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created := s.manager.AddCategory(r.Context(), c)
	s.logMutation(r.Context(), "categories", "create", created.ID)
	writeJSON(w, http.StatusCreated, categoryJSON{ID: created.ID, Name: created.Name, Note: created.Note})
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := req.toCategory()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	c.ID = id

	updated, ok := s.manager.UpdateCategory(r.Context(), c)
	if !ok {
		slog.InfoContext(r.Context(), "Update skipped, category not found", "entity_id", id)
		writeJSON(w, http.StatusOK, map[string]any{"updated": false})
		return
	}
	s.logMutation(r.Context(), "categories", "update", id)
	writeJSON(w, http.StatusOK, map[string]any{
		"updated":  true,
		"category": categoryJSON{ID: updated.ID, Name: updated.Name, Note: updated.Note},
	})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	deleted := s.manager.DeleteCategory(r.Context(), id)
	if deleted {
		s.logMutation(r.Context(), "categories", "delete", id)
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}
