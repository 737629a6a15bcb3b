package core

import (
	"testing"
	"time"
)

func expenseFor(category string, cents int64) Transaction {
	return Transaction{
		Kind:         Expense,
		CategoryName: category,
		Amount:       Money{Cents: cents},
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBudgetUtilizationScenario(t *testing.T) {
	budget := Budget{CategoryName: "Food", Amount: Money{Cents: 1000_00}, Month: "January"}
	expenses := []Transaction{
		expenseFor("Food", 300_00),
		expenseFor("food", 400_00), // case-insensitive match
		expenseFor("Transport", 50_00),
	}

	statuses := Statuses([]Budget{budget}, expenses)
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	s := statuses[0]
	if s.Spent.Cents != 700_00 {
		t.Fatalf("spent: expected 700.00, got %s", s.Spent)
	}
	if s.Remaining.Cents != 300_00 {
		t.Fatalf("remaining: expected 300.00, got %s", s.Remaining)
	}
	if s.Percent != 70 {
		t.Fatalf("percent: expected 70, got %d", s.Percent)
	}
	if s.Tier != TierNormal {
		t.Fatalf("tier: expected normal at 70%%, got %s", s.Tier)
	}
}

func TestUtilizationGuardsAndClamps(t *testing.T) {
	cases := []struct {
		amount, spent int64
		want          int
	}{
		{0, 500, 0},      // zero budget guarded, not an error
		{1000, 0, 0},     //
		{1000, 500, 50},  //
		{1000, 995, 100}, // rounds then clamps within [0,100]
		{1000, 2000, 100},
		{300, 100, 33},
		{300, 200, 67}, // half-up rounding
	}
	for _, tc := range cases {
		got := Utilization(Money{Cents: tc.amount}, Money{Cents: tc.spent})
		if got != tc.want {
			t.Fatalf("utilization(%d, %d): expected %d, got %d", tc.amount, tc.spent, tc.want, got)
		}
	}
}

func TestOverspendIsNegativeRemainingNotError(t *testing.T) {
	statuses := Statuses(
		[]Budget{{CategoryName: "Food", Amount: Money{Cents: 100_00}, Month: "January"}},
		[]Transaction{expenseFor("Food", 150_00)},
	)
	s := statuses[0]
	if s.Remaining.Cents != -50_00 {
		t.Fatalf("expected -50.00 remaining, got %s", s.Remaining)
	}
	if s.Percent != 100 {
		t.Fatalf("expected clamp at 100, got %d", s.Percent)
	}
	if s.Tier != TierAlert {
		t.Fatalf("expected alert tier, got %s", s.Tier)
	}
}

func TestTierThresholds(t *testing.T) {
	cases := []struct {
		percent int
		warnAt  int
		want    Tier
	}{
		{89, WarningThreshold, TierWarning},
		{90, WarningThreshold, TierAlert},
		{75, WarningThreshold, TierWarning},
		{74, WarningThreshold, TierNormal},
		{70, OverviewWarningThreshold, TierWarning},
		{69, OverviewWarningThreshold, TierNormal},
	}
	for _, tc := range cases {
		if got := TierFor(tc.percent, tc.warnAt); got != tc.want {
			t.Fatalf("tier(%d, warn=%d): expected %s, got %s", tc.percent, tc.warnAt, tc.want, got)
		}
	}
}

func TestOverviewAggregates(t *testing.T) {
	budgets := []Budget{
		{CategoryName: "Food", Amount: Money{Cents: 500_00}, Month: "January"},
		{CategoryName: "Transport", Amount: Money{Cents: 500_00}, Month: "January"},
	}
	expenses := []Transaction{
		expenseFor("Food", 400_00),
		expenseFor("Transport", 310_00),
	}
	ov := Overview(budgets, expenses)
	if ov.TotalBudget.Cents != 1000_00 || ov.TotalSpent.Cents != 710_00 {
		t.Fatalf("totals: got %s/%s", ov.TotalBudget, ov.TotalSpent)
	}
	if ov.TotalRemaining.Cents != 290_00 {
		t.Fatalf("remaining: expected 290.00, got %s", ov.TotalRemaining)
	}
	if ov.Percent != 71 {
		t.Fatalf("percent: expected 71, got %d", ov.Percent)
	}
	// Overview warns at 70, earlier than the per-budget view
	if ov.Tier != TierWarning {
		t.Fatalf("tier: expected warning, got %s", ov.Tier)
	}
}
