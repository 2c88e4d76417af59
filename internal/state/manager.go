// Package state holds the single source of truth for expenses, partners and
// categories. All mutations go through the Manager, which derives the
// calendar fields, keeps the expense collection sorted by date descending,
// and repairs references when a partner or category is deleted.
package state

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"conti/internal/core"
)

// Manager owns the three entity collections. Construct it once with New and
// hand it to every consumer; there is no ambient global instance.
type Manager struct {
	mu         sync.Mutex
	expenses   []core.Expense
	partners   []core.Partner
	categories []core.Category
	observers  []Observer

	now   func() time.Time
	newID func() string
}

// Option customizes a Manager, mainly for tests.
type Option func(*Manager)

// WithClock overrides the entry-timestamp clock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides the id generator.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

// New builds a Manager from seed data. Seed entities without ids get one
// assigned; seed expenses get their calendar fields derived and the
// collection is sorted by date descending, same as after any mutation.
func New(seed Seed, opts ...Option) *Manager {
	m := &Manager{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.partners = append([]core.Partner(nil), seed.Partners...)
	for i := range m.partners {
		if m.partners[i].ID == "" {
			m.partners[i].ID = m.newID()
		}
	}
	m.categories = append([]core.Category(nil), seed.Categories...)
	for i := range m.categories {
		if m.categories[i].ID == "" {
			m.categories[i].ID = m.newID()
		}
	}
	m.expenses = append([]core.Expense(nil), seed.Expenses...)
	for i := range m.expenses {
		if m.expenses[i].ID == "" {
			m.expenses[i].ID = m.newID()
		}
		m.expenses[i].Month, m.expenses[i].Year = m.expenses[i].Date.MonthYear()
		if m.expenses[i].EntryTimestamp.IsZero() {
			m.expenses[i].EntryTimestamp = m.now()
		}
	}
	m.sortExpensesLocked()
	return m
}

// Subscribe registers an observer for committed mutations.
func (m *Manager) Subscribe(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// AddExpense inserts a new expense. The id, calendar fields and entry
// timestamp of the input are ignored and assigned fresh. The supplied date
// is assumed valid.
func (m *Manager) AddExpense(ctx context.Context, e core.Expense) core.Expense {
	m.mu.Lock()
	e.ID = m.newID()
	e.Month, e.Year = e.Date.MonthYear()
	e.EntryTimestamp = m.now()
	m.expenses = append(m.expenses, e)
	m.sortExpensesLocked()
	evs := []Event{m.expenseEventLocked(OpCreated, e)}
	m.mu.Unlock()

	m.notify(ctx, evs)
	return e
}

// UpdateExpense replaces the expense matching by id. Calendar fields are
// re-derived from the submitted date and the entry timestamp is restamped
// to the update instant. Returns false, leaving the collection untouched,
// when no expense has that id.
func (m *Manager) UpdateExpense(ctx context.Context, e core.Expense) (core.Expense, bool) {
	m.mu.Lock()
	idx := -1
	for i := range m.expenses {
		if m.expenses[i].ID == e.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return core.Expense{}, false
	}
	prev := m.expenses[idx]
	e.Month, e.Year = e.Date.MonthYear()
	e.EntryTimestamp = m.now()
	m.expenses[idx] = e
	m.sortExpensesLocked()
	ev := m.expenseEventLocked(OpUpdated, e)
	ev.Prev = &prev
	evs := []Event{ev}
	m.mu.Unlock()

	m.notify(ctx, evs)
	return e, true
}

// DeleteExpense removes the expense with the given id. No-op when absent.
func (m *Manager) DeleteExpense(ctx context.Context, id string) bool {
	m.mu.Lock()
	idx := -1
	for i := range m.expenses {
		if m.expenses[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	removed := m.expenses[idx]
	m.expenses = append(m.expenses[:idx], m.expenses[idx+1:]...)
	ev := m.expenseEventLocked(OpDeleted, removed)
	m.mu.Unlock()

	m.notify(ctx, []Event{ev})
	return true
}

// AddPartner appends a new partner. The id of the input is ignored.
func (m *Manager) AddPartner(ctx context.Context, p core.Partner) core.Partner {
	m.mu.Lock()
	p.ID = m.newID()
	m.partners = append(m.partners, p)
	ev := Event{
		Collection: CollectionPartners,
		Op:         OpCreated,
		EntityID:   p.ID,
		Snapshot:   Snapshot{Partners: m.partnersSnapshotLocked()},
	}
	m.mu.Unlock()

	m.notify(ctx, []Event{ev})
	return p
}

// UpdatePartner replaces the partner matching by id. No-op when absent.
func (m *Manager) UpdatePartner(ctx context.Context, p core.Partner) (core.Partner, bool) {
	m.mu.Lock()
	idx := -1
	for i := range m.partners {
		if m.partners[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return core.Partner{}, false
	}
	m.partners[idx] = p
	ev := Event{
		Collection: CollectionPartners,
		Op:         OpUpdated,
		EntityID:   p.ID,
		Snapshot:   Snapshot{Partners: m.partnersSnapshotLocked()},
	}
	m.mu.Unlock()

	m.notify(ctx, []Event{ev})
	return p, true
}

// DeletePartner removes the partner and reassigns every expense paid by it
// to the "Unassigned / Company" sentinel, resolved against the remaining
// partners. When the sentinel is missing the reference is cleared instead.
// Each reassigned expense produces its own update event.
func (m *Manager) DeletePartner(ctx context.Context, id string) bool {
	m.mu.Lock()
	idx := -1
	for i := range m.partners {
		if m.partners[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	m.partners = append(m.partners[:idx], m.partners[idx+1:]...)

	fallbackID := ""
	for _, p := range m.partners {
		if p.Name == core.UnassignedPartnerName {
			fallbackID = p.ID
			break
		}
	}

	evs := []Event{{
		Collection: CollectionPartners,
		Op:         OpDeleted,
		EntityID:   id,
		Snapshot:   Snapshot{Partners: m.partnersSnapshotLocked()},
	}}
	for i := range m.expenses {
		if m.expenses[i].PaidByPartnerID != id {
			continue
		}
		m.expenses[i].PaidByPartnerID = fallbackID
		evs = append(evs, m.expenseEventLocked(OpUpdated, m.expenses[i]))
	}
	m.mu.Unlock()

	m.notify(ctx, evs)
	return true
}

// AddCategory appends a new category. The id of the input is ignored.
func (m *Manager) AddCategory(ctx context.Context, c core.Category) core.Category {
	m.mu.Lock()
	c.ID = m.newID()
	m.categories = append(m.categories, c)
	ev := Event{
		Collection: CollectionCategories,
		Op:         OpCreated,
		EntityID:   c.ID,
		Snapshot:   Snapshot{Categories: m.categoriesSnapshotLocked()},
	}
	m.mu.Unlock()

	m.notify(ctx, []Event{ev})
	return c
}

// UpdateCategory replaces the category matching by id. No-op when absent.
func (m *Manager) UpdateCategory(ctx context.Context, c core.Category) (core.Category, bool) {
	m.mu.Lock()
	idx := -1
	for i := range m.categories {
		if m.categories[i].ID == c.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return core.Category{}, false
	}
	m.categories[idx] = c
	ev := Event{
		Collection: CollectionCategories,
		Op:         OpUpdated,
		EntityID:   c.ID,
		Snapshot:   Snapshot{Categories: m.categoriesSnapshotLocked()},
	}
	m.mu.Unlock()

	m.notify(ctx, []Event{ev})
	return c, true
}

// DeleteCategory removes the category and reassigns every expense that
// referenced it to the "Miscellaneous" sentinel, resolved against the
// remaining categories. When the sentinel is missing (or was itself the
// deleted category) the reference is cleared instead.
func (m *Manager) DeleteCategory(ctx context.Context, id string) bool {
	m.mu.Lock()
	idx := -1
	for i := range m.categories {
		if m.categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	m.categories = append(m.categories[:idx], m.categories[idx+1:]...)

	fallbackID := ""
	for _, c := range m.categories {
		if c.Name == core.FallbackCategoryName {
			fallbackID = c.ID
			break
		}
	}

	evs := []Event{{
		Collection: CollectionCategories,
		Op:         OpDeleted,
		EntityID:   id,
		Snapshot:   Snapshot{Categories: m.categoriesSnapshotLocked()},
	}}
	for i := range m.expenses {
		if m.expenses[i].CategoryID != id {
			continue
		}
		m.expenses[i].CategoryID = fallbackID
		evs = append(evs, m.expenseEventLocked(OpUpdated, m.expenses[i]))
	}
	m.mu.Unlock()

	m.notify(ctx, evs)
	return true
}

// CategoryNameByID resolves a category id to its name, or "n/a" when no
// category matches.
func (m *Manager) CategoryNameByID(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return core.NameNotAvailable
}

// PartnerNameByID resolves a partner id to its name. An empty id (absent
// reference) yields "n/a"; a non-empty id with no matching partner yields
// "unknown partner".
func (m *Manager) PartnerNameByID(id string) string {
	if id == "" {
		return core.NameNotAvailable
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.partners {
		if p.ID == id {
			return p.Name
		}
	}
	return core.UnknownPartnerName
}

// Expenses returns a copy of the expense collection, sorted by date
// descending.
func (m *Manager) Expenses() []core.Expense {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expensesSnapshotLocked()
}

// Partners returns a copy of the partner collection in insertion order.
func (m *Manager) Partners() []core.Partner {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.partnersSnapshotLocked()
}

// Categories returns a copy of the category collection in insertion order.
func (m *Manager) Categories() []core.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categoriesSnapshotLocked()
}

// ExpenseByID returns the expense with the given id, if present.
func (m *Manager) ExpenseByID(id string) (core.Expense, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

// PartnerByID returns the partner with the given id, if present.
func (m *Manager) PartnerByID(id string) (core.Partner, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.partners {
		if p.ID == id {
			return p, true
		}
	}
	return core.Partner{}, false
}

// CategoryByID returns the category with the given id, if present.
func (m *Manager) CategoryByID(id string) (core.Category, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.ID == id {
			return c, true
		}
	}
	return core.Category{}, false
}

// sortExpensesLocked keeps the expense collection ordered by date
// descending. The sort is stable, so expenses sharing a date keep their
// relative insertion order.
func (m *Manager) sortExpensesLocked() {
	sort.SliceStable(m.expenses, func(i, j int) bool {
		return m.expenses[i].Date.After(m.expenses[j].Date.Time)
	})
}

func (m *Manager) expenseEventLocked(op Op, e core.Expense) Event {
	return Event{
		Collection: CollectionExpenses,
		Op:         op,
		EntityID:   e.ID,
		Expense:    &e,
		Snapshot:   Snapshot{Expenses: m.expensesSnapshotLocked()},
	}
}

func (m *Manager) expensesSnapshotLocked() []core.Expense {
	return append([]core.Expense(nil), m.expenses...)
}

func (m *Manager) partnersSnapshotLocked() []core.Partner {
	return append([]core.Partner(nil), m.partners...)
}

func (m *Manager) categoriesSnapshotLocked() []core.Category {
	return append([]core.Category(nil), m.categories...)
}

func (m *Manager) notify(ctx context.Context, evs []Event) {
	m.mu.Lock()
	observers := append([]Observer(nil), m.observers...)
	m.mu.Unlock()
	for _, ev := range evs {
		for _, o := range observers {
			o.OnMutation(ctx, ev)
		}
	}
}
