package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"theme": s.themes.Current()})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.themes.Toggle(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Theme toggle failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not persist theme")
		return
	}
	slog.InfoContext(r.Context(), "Theme toggled", "theme", theme)
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}
