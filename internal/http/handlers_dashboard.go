package http

import (
	"log/slog"
	"net/http"
	"time"

	"conti/internal/core"
)

type nameAmountJSON struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amountCents"`
	Amount      string `json:"amount"`
}

type overviewJSON struct {
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	TotalCents int64            `json:"totalCents"`
	Total      string           `json:"total"`
	Count      int              `json:"count"`
	ByCategory []nameAmountJSON `json:"byCategory"`
	ByPartner  []nameAmountJSON `json:"byPartner"`
}

func toOverviewJSON(ov core.MonthOverview) overviewJSON {
	out := overviewJSON{
		Year:       ov.Year,
		Month:      ov.Month,
		TotalCents: ov.Total.Cents,
		Total:      ov.Total.String(),
		Count:      ov.Count,
		ByCategory: make([]nameAmountJSON, 0, len(ov.ByCategory)),
		ByPartner:  make([]nameAmountJSON, 0, len(ov.ByPartner)),
	}
	for _, b := range ov.ByCategory {
		out.ByCategory = append(out.ByCategory, nameAmountJSON{Name: b.Name, AmountCents: b.Amount.Cents, Amount: b.Amount.String()})
	}
	for _, b := range ov.ByPartner {
		out.ByPartner = append(out.ByPartner, nameAmountJSON{Name: b.Name, AmountCents: b.Amount.Cents, Amount: b.Amount.String()})
	}
	return out
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := overviewKey(year, month)
	if ov, ok := s.overviewCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Overview cache hit", "year", year, "month", month)
		writeJSON(w, http.StatusOK, toOverviewJSON(ov))
		return
	}

	ov := core.BuildMonthOverview(s.manager.Expenses(), year, month,
		s.manager.CategoryNameByID, s.manager.PartnerNameByID)
	s.overviewCache.Set(key, ov)
	slog.DebugContext(r.Context(), "Overview cached",
		"year", year, "month", month, "total_cents", ov.Total.Cents, "count", ov.Count)
	writeJSON(w, http.StatusOK, toOverviewJSON(ov))
}
