package core

import "sort"

// NameAmount is an amount aggregated under a display name.
type NameAmount struct {
	Name   string
	Amount Money
}

// MonthOverview is a compact summary for a specific year+month.
type MonthOverview struct {
	Year       int
	Month      int // 1-12
	Total      Money
	Count      int
	ByCategory []NameAmount
	ByPartner  []NameAmount
}

// NameLookup resolves an entity id to a display name.
type NameLookup func(id string) string

// BuildMonthOverview aggregates the expenses belonging to year+month.
// Category and partner names are resolved through the supplied lookups, so
// orphaned references surface under their fallback names rather than ids.
// Buckets are sorted by amount descending, names ascending on ties.
func BuildMonthOverview(expenses []Expense, year, month int, categoryName, partnerName NameLookup) MonthOverview {
	ov := MonthOverview{Year: year, Month: month}
	byCat := make(map[string]int64)
	byPartner := make(map[string]int64)

	for _, e := range expenses {
		if e.Year != year || e.Month != month {
			continue
		}
		ov.Total.Cents += e.Amount.Cents
		ov.Count++
		byCat[categoryName(e.CategoryID)] += e.Amount.Cents
		byPartner[partnerName(e.PaidByPartnerID)] += e.Amount.Cents
	}

	ov.ByCategory = sortedBuckets(byCat)
	ov.ByPartner = sortedBuckets(byPartner)
	return ov
}

func sortedBuckets(m map[string]int64) []NameAmount {
	out := make([]NameAmount, 0, len(m))
	for name, cents := range m {
		out = append(out, NameAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}
