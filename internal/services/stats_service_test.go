package services

import (
	"context"
	"testing"
	"time"

	"soldi/internal/core"
	"soldi/internal/store/memory"
)

func newStatsService(t *testing.T) (*StatsService, *memory.Store) {
	t.Helper()
	mem := memory.New()
	svc := NewStatsService(NewTransactionService(mem, mem, mem))
	svc.now = func() time.Time { return time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC) }
	return svc, mem
}

func seedRegular(t *testing.T, mem *memory.Store, kind core.Kind, cents int64, date time.Time) {
	t.Helper()
	_, err := mem.CreateTransaction(context.Background(), core.Transaction{
		Owner: "u1", Kind: kind, Amount: core.Money{Cents: cents},
		CategoryName: "Misc", Date: date,
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
}

func TestMonthlyStats(t *testing.T) {
	svc, mem := newStatsService(t)
	ctx := context.Background()

	seedRegular(t, mem, core.Income, 2000_00, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	seedRegular(t, mem, core.Expense, 700_00, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))
	seedRegular(t, mem, core.Expense, 99_00, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))

	stats, err := svc.Monthly(ctx, "u1", time.March, 2024)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if stats.Income.Cents != 2000_00 || stats.Expense.Cents != 700_00 {
		t.Fatalf("rollup wrong: %+v", stats)
	}
	if stats.Net.Cents != 1300_00 {
		t.Fatalf("net = %d, want 130000", stats.Net.Cents)
	}
}

func TestStatsClampFutureMonthToNow(t *testing.T) {
	svc, mem := newStatsService(t)

	seedRegular(t, mem, core.Expense, 50_00, time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC))

	stats, err := svc.Monthly(context.Background(), "u1", time.December, 2025)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if stats.Month != time.April || stats.Year != 2024 {
		t.Fatalf("future month not clamped: %v %d", stats.Month, stats.Year)
	}
	if stats.Expense.Cents != 50_00 {
		t.Fatalf("expense = %d, want 5000", stats.Expense.Cents)
	}
}

func TestStatsZeroMonthMeansCurrent(t *testing.T) {
	svc, _ := newStatsService(t)

	stats, err := svc.Monthly(context.Background(), "u1", 0, 0)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if stats.Month != time.April || stats.Year != 2024 {
		t.Fatalf("got %v %d, want current month", stats.Month, stats.Year)
	}
}

func TestWeeklyStatsBucketsExpenses(t *testing.T) {
	svc, mem := newStatsService(t)

	// March 2024 starts on a Friday, so week 1 holds only the 1st and
	// 2nd; the 4th falls in week 2 and the 11th in week 3.
	seedRegular(t, mem, core.Expense, 10_00, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	seedRegular(t, mem, core.Expense, 20_00, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC))
	seedRegular(t, mem, core.Income, 30_00, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC))

	stats, err := svc.Weekly(context.Background(), "u1", time.March, 2024)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if stats.Weeks[0].Expense.Cents != 10_00 {
		t.Fatalf("week 1 expense = %d, want 1000", stats.Weeks[0].Expense.Cents)
	}
	if stats.Weeks[1].Expense.Cents != 20_00 {
		t.Fatalf("week 2 expense = %d, want 2000", stats.Weeks[1].Expense.Cents)
	}
	if stats.Weeks[2].Income.Cents != 30_00 {
		t.Fatalf("week 3 income = %d, want 3000", stats.Weeks[2].Income.Cents)
	}
}

func TestEstimateAveragesTrailingMonths(t *testing.T) {
	svc, mem := newStatsService(t)

	seedRegular(t, mem, core.Expense, 300_00, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	seedRegular(t, mem, core.Expense, 100_00, time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC))
	// January has no expenses, so the average divides by two.

	stats, err := svc.Estimate(context.Background(), "u1", time.April, 2024)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if stats.Estimate.Cents != 200_00 {
		t.Fatalf("estimate = %d, want 20000", stats.Estimate.Cents)
	}
}
