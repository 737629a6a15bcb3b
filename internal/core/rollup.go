package core

import "time"

// WeekBucket is one of five week-of-month slots driving the bar chart.
type WeekBucket struct {
	Week    int // 1-5
	Income  Money
	Expense Money
}

// MonthlyRollup sums regular transaction amounts for the given calendar
// month and year, separately for income and expense. Transfers never
// contribute to monthly rollups.
func MonthlyRollup(items []TaggedTransaction, month time.Month, year int) (income, expense Money) {
	for _, tt := range items {
		if tt.Tag != TagRegular || tt.Regular == nil {
			continue
		}
		t := tt.Regular
		if !SameMonth(t.Date, month, year) {
			continue
		}
		switch t.Kind {
		case Income:
			income = income.Add(t.Amount)
		case Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// WeeklyRollup buckets a month's regular transactions into 5 week slots.
// The slot is derived from the day of month and the weekday of the 1st:
// week = ceil((daysSinceMonthStart + firstWeekdayOffset + 1) / 7),
// clamped to slot 5. All 5 slots are always present, even when empty.
func WeeklyRollup(items []TaggedTransaction, month time.Month, year int) [5]WeekBucket {
	var buckets [5]WeekBucket
	for i := range buckets {
		buckets[i].Week = i + 1
	}
	offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	for _, tt := range items {
		if tt.Tag != TagRegular || tt.Regular == nil {
			continue
		}
		t := tt.Regular
		if !SameMonth(t.Date, month, year) {
			continue
		}
		week := (t.Date.Day() + offset + 6) / 7
		if week < 1 {
			week = 1
		}
		if week > 5 {
			week = 5
		}
		switch t.Kind {
		case Income:
			buckets[week-1].Income = buckets[week-1].Income.Add(t.Amount)
		case Expense:
			buckets[week-1].Expense = buckets[week-1].Expense.Add(t.Amount)
		}
	}
	return buckets
}

// TrailingExpenseAverage estimates a monthly budget from the expense
// totals of the target month and the two before it. Months with zero
// expense are left out of the average; if all three are zero the
// estimate is zero.
func TrailingExpenseAverage(items []TaggedTransaction, month time.Month, year int) Money {
	var sum int64
	var nonZero int64
	cursor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, expense := MonthlyRollup(items, cursor.Month(), cursor.Year())
		if expense.Cents != 0 {
			sum += expense.Cents
			nonZero++
		}
		cursor = cursor.AddDate(0, -1, 0)
	}
	if nonZero == 0 {
		return Money{}
	}
	return Money{Cents: sum / nonZero}
}

// MonthCursor is the stateful month/year navigation used by the period
// views. Forward navigation is a no-op at the real current month;
// backward navigation has no lower bound and rolls the year over.
type MonthCursor struct {
	Month time.Month
	Year  int
}

// NewMonthCursor positions the cursor at now's month.
func NewMonthCursor(now time.Time) MonthCursor {
	return MonthCursor{Month: now.Month(), Year: now.Year()}
}

// Prev moves the cursor one month back, rolling January into December
// of the prior year.
func (c *MonthCursor) Prev() {
	if c.Month == time.January {
		c.Month = time.December
		c.Year--
		return
	}
	c.Month--
}

// Next moves the cursor one month forward unless it already sits at
// now's month/year, in which case it stays put.
func (c *MonthCursor) Next(now time.Time) {
	if c.Year > now.Year() || (c.Year == now.Year() && c.Month >= now.Month()) {
		return
	}
	if c.Month == time.December {
		c.Month = time.January
		c.Year++
		return
	}
	c.Month++
}
