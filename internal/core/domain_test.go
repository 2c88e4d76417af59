package core

import (
	"testing"
	"time"
)

func TestDateMonthYear(t *testing.T) {
	cases := []struct {
		d     Date
		month int
		year  int
	}{
		{NewDate(2024, 3, 15), 3, 2024},
		{NewDate(2023, 12, 31), 12, 2023},
		{NewDate(2025, 1, 1), 1, 2025},
	}
	for i, tc := range cases {
		m, y := tc.d.MonthYear()
		if m != tc.month || y != tc.year {
			t.Fatalf("case %d: expected %d/%d, got %d/%d", i, tc.month, tc.year, m, y)
		}
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2024, 1, 1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); err == nil {
		t.Fatal("expected error for zero date")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2024, 1, 1),
		Amount:      Money{Cents: 100},
		Description: "ok",
		CategoryID:  "c1",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: Money{Cents: 1}, Description: "a", CategoryID: "c"},                         // zero date
		{Date: NewDate(2024, 1, 1), Description: "a", CategoryID: "c"},                       // zero amount
		{Date: NewDate(2024, 1, 1), Amount: Money{Cents: 1}, CategoryID: "c"},                // empty description
		{Date: NewDate(2024, 1, 1), Amount: Money{Cents: 1}, Description: "a"},               // empty category
		{Date: NewDate(2024, 1, 1), Amount: Money{Cents: 1}, Description: "  ", CategoryID: "c"}, // blank description
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestPartnerValidate(t *testing.T) {
	if err := (Partner{Name: "Anna", Share: 50}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Partner{Name: ""}).Validate(); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := (Partner{Name: "Anna", Share: 120}).Validate(); err == nil {
		t.Fatal("expected error for share > 100")
	}
}

func TestCategoryValidate(t *testing.T) {
	if err := (Category{Name: "Food"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Category{Name: " "}).Validate(); err == nil {
		t.Fatal("expected error for blank name")
	}
}
