package core

import (
	"math"
	"strings"
)

const (
	TierNormal  Tier = "normal"
	TierWarning Tier = "warning"
	TierAlert   Tier = "alert"
)

// Default tier thresholds. The aggregate overview warns earlier.
const (
	AlertThreshold           = 90
	WarningThreshold         = 75
	OverviewWarningThreshold = 70
)

type (
	// Tier is the presentation tier of a budget's utilization.
	Tier string

	// BudgetStatus joins a budget to its actual spend.
	BudgetStatus struct {
		Budget    Budget
		Spent     Money
		Remaining Money // may be negative: overspend is a valid outcome
		Percent   int
		Tier      Tier
	}

	// BudgetOverview aggregates all budgets and spend into one global
	// total/remaining/percentage.
	BudgetOverview struct {
		TotalBudget    Money
		TotalSpent     Money
		TotalRemaining Money
		Percent        int
		Tier           Tier
	}
)

func foldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Spent sums the amounts of expense transactions whose category name
// case-insensitively equals the given name. The join is by denormalized
// name, not category id; this mirrors how budgets reference categories.
func Spent(categoryName string, expenses []Transaction) Money {
	var spent Money
	want := foldName(categoryName)
	for _, t := range expenses {
		if t.Kind != Expense {
			continue
		}
		if foldName(t.CategoryName) == want {
			spent = spent.Add(t.Amount)
		}
	}
	return spent
}

// Utilization returns round(min(100, spent/amount × 100)). A zero budget
// amount yields 0, not an error.
func Utilization(amount, spent Money) int {
	if amount.Cents <= 0 {
		return 0
	}
	pct := float64(spent.Cents) / float64(amount.Cents) * 100
	if pct > 100 {
		pct = 100
	}
	return int(math.Round(pct))
}

// TierFor maps a utilization percentage to its presentation tier using
// the given warning threshold.
func TierFor(percent, warnAt int) Tier {
	switch {
	case percent >= AlertThreshold:
		return TierAlert
	case percent >= warnAt:
		return TierWarning
	default:
		return TierNormal
	}
}

// Statuses computes utilization for every budget against the expense
// list. Both inputs are pre-scoped to one owner.
func Statuses(budgets []Budget, expenses []Transaction) []BudgetStatus {
	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := Spent(b.CategoryName, expenses)
		pct := Utilization(b.Amount, spent)
		statuses = append(statuses, BudgetStatus{
			Budget:    b,
			Spent:     spent,
			Remaining: b.Amount.Sub(spent),
			Percent:   pct,
			Tier:      TierFor(pct, WarningThreshold),
		})
	}
	return statuses
}

// Overview sums budgets and spend across all categories and derives the
// global utilization with the overview's earlier warning threshold.
func Overview(budgets []Budget, expenses []Transaction) BudgetOverview {
	var total, spent Money
	for _, b := range budgets {
		total = total.Add(b.Amount)
		spent = spent.Add(Spent(b.CategoryName, expenses))
	}
	pct := Utilization(total, spent)
	return BudgetOverview{
		TotalBudget:    total,
		TotalSpent:     spent,
		TotalRemaining: total.Sub(spent),
		Percent:        pct,
		Tier:           TierFor(pct, OverviewWarningThreshold),
	}
}
