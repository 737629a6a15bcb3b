package services

import (
	"context"
	"time"

	"soldi/internal/core"
)

// MonthlyStats is the rollup for a single calendar month.
type MonthlyStats struct {
	Month   time.Month
	Year    int
	Income  core.Money
	Expense core.Money
	Net     core.Money
}

// WeeklyStats carries the five week buckets of a month.
type WeeklyStats struct {
	Month time.Month
	Year  int
	Weeks [5]core.WeekBucket
}

// EstimateStats is the trailing expense average used as next month's
// spending projection.
type EstimateStats struct {
	Month    time.Month
	Year     int
	Estimate core.Money
}

// StatsService computes calendar rollups over the merged feed.
// Transfers are balance-neutral and never counted.
type StatsService struct {
	transactions *TransactionService
	now          func() time.Time
}

func NewStatsService(transactions *TransactionService) *StatsService {
	return &StatsService{transactions: transactions, now: time.Now}
}

// cursor clamps the requested month to the present. A zero month or
// year means the current one.
func (s *StatsService) cursor(month time.Month, year int) core.MonthCursor {
	now := s.now().UTC()
	if month == 0 || year == 0 {
		return core.NewMonthCursor(now)
	}
	c := core.MonthCursor{Month: month, Year: year}
	if c.Year > now.Year() || (c.Year == now.Year() && c.Month > now.Month()) {
		return core.NewMonthCursor(now)
	}
	return c
}

func (s *StatsService) Monthly(ctx context.Context, owner string, month time.Month, year int) (MonthlyStats, error) {
	c := s.cursor(month, year)
	items, err := s.transactions.List(ctx, owner)
	if err != nil {
		return MonthlyStats{}, err
	}
	income, expense := core.MonthlyRollup(items, c.Month, c.Year)
	return MonthlyStats{
		Month:   c.Month,
		Year:    c.Year,
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}, nil
}

func (s *StatsService) Weekly(ctx context.Context, owner string, month time.Month, year int) (WeeklyStats, error) {
	c := s.cursor(month, year)
	items, err := s.transactions.List(ctx, owner)
	if err != nil {
		return WeeklyStats{}, err
	}
	return WeeklyStats{
		Month: c.Month,
		Year:  c.Year,
		Weeks: core.WeeklyRollup(items, c.Month, c.Year),
	}, nil
}

// Estimate projects spending for the cursor month from the trailing
// three months' nonzero expense totals.
func (s *StatsService) Estimate(ctx context.Context, owner string, month time.Month, year int) (EstimateStats, error) {
	c := s.cursor(month, year)
	items, err := s.transactions.List(ctx, owner)
	if err != nil {
		return EstimateStats{}, err
	}
	return EstimateStats{
		Month:    c.Month,
		Year:     c.Year,
		Estimate: core.TrailingExpenseAverage(items, c.Month, c.Year),
	}, nil
}
