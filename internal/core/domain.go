package core

import (
	"errors"
	"strings"
	"time"
)

// Sentinel entity names and lookup fallbacks.
const (
	// UnassignedPartnerName is the seed partner that absorbs expenses
	// whose payer gets deleted.
	UnassignedPartnerName = "Unassigned / Company"

	// FallbackCategoryName is the seed category that absorbs expenses
	// whose category gets deleted.
	FallbackCategoryName = "Miscellaneous"

	// NameNotAvailable is returned by name lookups when there is nothing
	// to resolve (missing category, absent partner reference).
	NameNotAvailable = "n/a"

	// UnknownPartnerName is returned when a partner reference points at
	// an id that no longer exists.
	UnknownPartnerName = "unknown partner"
)

type (
	// Date is a calendar date. The time-of-day portion is always midnight UTC.
	Date struct {
		time.Time
	}

	// Money is a currency amount in cents.
	Money struct {
		Cents int64
	}

	// Expense is a dated outflow attributed to a category and optionally a
	// partner. ID, Month, Year and EntryTimestamp are assigned by the state
	// manager and must never be supplied by callers.
	Expense struct {
		ID              string
		Date            Date
		Amount          Money
		Description     string
		CategoryID      string
		PaidByPartnerID string // empty means unattributed

		// Derived fields. Month and Year are recomputed from Date on every
		// write; EntryTimestamp is the last-write instant.
		Month          int
		Year           int
		EntryTimestamp time.Time
	}

	// Partner is a contributing payer. Share is the partner's contribution
	// share in percent.
	Partner struct {
		ID    string
		Name  string
		Share int
	}

	// Category classifies expenses.
	Category struct {
		ID   string
		Name string
		Note string
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category reference")
	ErrEmptyName        = errors.New("empty name")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MonthYear returns the calendar month (1-12) and year of the date.
// This is the derivation helper used for the Month/Year fields.
func (d Date) MonthYear() (month, year int) {
	return int(d.Time.Month()), d.Time.Year()
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the caller-supplied fields of an expense. Derived fields
// are not checked: the state manager owns them.
func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if strings.TrimSpace(e.CategoryID) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (p Partner) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Share < 0 || p.Share > 100 {
		return errors.New("share must be between 0 and 100")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
