package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"conti/internal/core"
)

const dateLayout = "2006-01-02"

// expenseJSON is the wire shape of an expense. Amount travels as cents plus
// a preformatted euro string so clients never do money math.
type expenseJSON struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	AmountCents     int64     `json:"amountCents"`
	Amount          string    `json:"amount"`
	Description     string    `json:"description"`
	CategoryID      string    `json:"categoryId"`
	PaidByPartnerID string    `json:"paidByPartnerId,omitempty"`
	Month           int       `json:"month"`
	Year            int       `json:"year"`
	EntryTimestamp  time.Time `json:"entryTimestamp"`
}

type expenseRequest struct {
	Date            string `json:"date"`
	Amount          string `json:"amount"`
	Description     string `json:"description"`
	CategoryID      string `json:"categoryId"`
	PaidByPartnerID string `json:"paidByPartnerId"`
}

type partnerJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Share int    `json:"share"`
}

type categoryJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:              e.ID,
		Date:            e.Date.Format(dateLayout),
		AmountCents:     e.Amount.Cents,
		Amount:          e.Amount.String(),
		Description:     e.Description,
		CategoryID:      e.CategoryID,
		PaidByPartnerID: e.PaidByPartnerID,
		Month:           e.Month,
		Year:            e.Year,
		EntryTimestamp:  e.EntryTimestamp,
	}
}

func toExpenseListJSON(es []core.Expense) []expenseJSON {
	out := make([]expenseJSON, 0, len(es))
	for _, e := range es {
		out = append(out, toExpenseJSON(e))
	}
	return out
}

// toExpense converts a request body into a domain expense. Derived fields
// stay zero; the state manager assigns them.
func (req expenseRequest) toExpense() (core.Expense, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Expense{}, err
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount: %w", err)
	}
	e := core.Expense{
		Date:            date,
		Amount:          core.Money{Cents: cents},
		Description:     strings.TrimSpace(req.Description),
		CategoryID:      strings.TrimSpace(req.CategoryID),
		PaidByPartnerID: strings.TrimSpace(req.PaidByPartnerID),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return core.Date{}, fmt.Errorf("date %q: %w", s, core.ErrInvalidDate)
	}
	return core.Date{Time: t}, nil
}

// parseYearMonth reads the year/month query parameters, defaulting to the
// current calendar month. An out-of-range month is an error.
func parseYearMonth(r *http.Request, now time.Time) (int, int, error) {
	year := now.Year()
	month := int(now.Month())
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year %q", v)
		}
		year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid month %q", v)
		}
		month = m
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", month)
	}
	return year, month, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
