package http

import (
	"log/slog"
	"net/http"
	"strings"

	"conti/internal/core"
)

type partnerRequest struct {
	Name  string `json:"name"`
	Share int    `json:"share"`
}

func (req partnerRequest) toPartner() (core.Partner, error) {
	p := core.Partner{Name: strings.TrimSpace(req.Name), Share: req.Share}
	if err := p.Validate(); err != nil {
		return core.Partner{}, err
	}
	return p, nil
}

func toPartnerListJSON(ps []core.Partner) []partnerJSON {
	out := make([]partnerJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, partnerJSON{ID: p.ID, Name: p.Name, Share: p.Share})
	}
	return out
}

func (s *Server) handleListPartners(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toPartnerListJSON(s.manager.Partners()))
}

func (s *Server) handleCreatePartner(w http.ResponseWriter, r *http.Request) {
	var req partnerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := req.toPartner()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created := s.manager.AddPartner(r.Context(), p)
	s.logMutation(r.Context(), "partners", "create", created.ID)
	writeJSON(w, http.StatusCreated, partnerJSON{ID: created.ID, Name: created.Name, Share: created.Share})
}

func (s *Server) handleUpdatePartner(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req partnerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := req.toPartner()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	p.ID = id

	updated, ok := s.manager.UpdatePartner(r.Context(), p)
	if !ok {
		slog.InfoContext(r.Context(), "Update skipped, partner not found", "entity_id", id)
		writeJSON(w, http.StatusOK, map[string]any{"updated": false})
		return
	}
	s.logMutation(r.Context(), "partners", "update", id)
	writeJSON(w, http.StatusOK, map[string]any{
		"updated": true,
		"partner": partnerJSON{ID: updated.ID, Name: updated.Name, Share: updated.Share},
	})
}

func (s *Server) handleDeletePartner(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	deleted := s.manager.DeletePartner(r.Context(), id)
	if deleted {
		s.logMutation(r.Context(), "partners", "delete", id)
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}
