// Package http is the JSON API over the state manager. It owns no domain
// state; every handler works against the injected manager and theme store.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"conti/internal/cache"
	"conti/internal/core"
	"conti/internal/middleware/security"
	"conti/internal/middleware/trace"
	"conti/internal/prefs"
	"conti/internal/state"
)

const overviewTTL = 5 * time.Minute

// Server wires the HTTP surface around an injected state manager.
type Server struct {
	http.Server

	manager *state.Manager
	themes  *prefs.ThemeManager

	overviewCache *cache.LRU[core.MonthOverview]

	cancelJanitor context.CancelFunc
	shutdownOnce  sync.Once
}

// NewServer builds the server. The manager is a hard dependency; passing nil
// is a wiring error and fails construction.
func NewServer(addr string, manager *state.Manager, themes *prefs.ThemeManager) (*Server, error) {
	if manager == nil {
		return nil, errors.New("state manager is required")
	}
	if themes == nil {
		return nil, errors.New("theme manager is required")
	}

	s := &Server{
		manager:       manager,
		themes:        themes,
		overviewCache: cache.NewLRU[core.MonthOverview](100, overviewTTL),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/partners", s.handleListPartners)
	mux.HandleFunc("POST /api/partners", s.handleCreatePartner)
	mux.HandleFunc("PUT /api/partners/{id}", s.handleUpdatePartner)
	mux.HandleFunc("DELETE /api/partners/{id}", s.handleDeletePartner)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("PUT /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/theme", s.handleGetTheme)
	mux.HandleFunc("POST /api/theme/toggle", s.handleToggleTheme)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware()

	s.Server = http.Server{
		Addr:              addr,
		Handler:           tracer.Middleware(headers.Middleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Stale overview entries go away on their own; mutations purge eagerly
	// through the observer below.
	janitorCtx, cancel := context.WithCancel(context.Background())
	s.cancelJanitor = cancel
	go cache.RunJanitor(janitorCtx, 10*time.Minute, s.overviewCache)

	manager.Subscribe(state.ObserverFunc(s.invalidateOnMutation))

	return s, nil
}

// invalidateOnMutation drops cached overviews made stale by a mutation.
// Expense events pinpoint the months they touch: one for creates and
// deletes, and for updates also the month the expense left when its date
// moved. Partner and category events can rename buckets in any month, so
// those purge everything.
func (s *Server) invalidateOnMutation(ctx context.Context, ev state.Event) {
	if ev.Collection == state.CollectionExpenses && ev.Expense != nil {
		s.overviewCache.Delete(overviewKey(ev.Expense.Year, ev.Expense.Month))
		if prev := ev.Prev; prev != nil && (prev.Year != ev.Expense.Year || prev.Month != ev.Expense.Month) {
			s.overviewCache.Delete(overviewKey(prev.Year, prev.Month))
		}
		return
	}
	s.overviewCache.Purge()
}

func overviewKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// Shutdown stops the janitor and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		if s.cancelJanitor != nil {
			s.cancelJanitor()
		}
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) logMutation(ctx context.Context, collection, operation, entityID string) {
	slog.InfoContext(ctx, "Mutation committed",
		"collection", collection,
		"operation", operation,
		"entity_id", entityID)
}
