package services

import (
	"context"
	"fmt"
	"time"

	"soldi/internal/core"
	"soldi/internal/store"
)

// BudgetService joins budgets to actual spend. The join is by
// denormalized category name, case-insensitive; spend always comes
// from the current calendar month.
type BudgetService struct {
	budgets      store.BudgetStore
	categories   store.CategoryStore
	transactions *TransactionService
	now          func() time.Time
}

func NewBudgetService(budgets store.BudgetStore, categories store.CategoryStore, transactions *TransactionService) *BudgetService {
	return &BudgetService{
		budgets:      budgets,
		categories:   categories,
		transactions: transactions,
		now:          time.Now,
	}
}

// Create persists a budget. When only the category id is given, the
// name is backfilled from the category so the spend join keeps working.
func (s *BudgetService) Create(ctx context.Context, b core.Budget) (core.Budget, error) {
	if b.CategoryName == "" && b.CategoryID != "" {
		name, err := s.categoryName(ctx, b.Owner, b.CategoryID)
		if err != nil {
			return core.Budget{}, err
		}
		b.CategoryName = name
	}
	if b.Month == "" {
		b.Month = s.now().UTC().Month().String()
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	created, err := s.budgets.CreateBudget(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return created, nil
}

func (s *BudgetService) Delete(ctx context.Context, owner, id string) error {
	if err := s.budgets.DeleteBudget(ctx, owner, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

// Statuses returns every budget with its current-month spend, percent
// and presentation tier.
func (s *BudgetService) Statuses(ctx context.Context, owner string) ([]core.BudgetStatus, error) {
	budgets, expenses, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return core.Statuses(budgets, expenses), nil
}

// Overview aggregates all budgets into a single dashboard figure. The
// warning threshold is lower here than on the per-budget view.
func (s *BudgetService) Overview(ctx context.Context, owner string) (core.BudgetOverview, error) {
	budgets, expenses, err := s.load(ctx, owner)
	if err != nil {
		return core.BudgetOverview{}, err
	}
	return core.Overview(budgets, expenses), nil
}

func (s *BudgetService) load(ctx context.Context, owner string) ([]core.Budget, []core.Transaction, error) {
	budgets, err := s.budgets.ListBudgets(ctx, owner)
	if err != nil {
		return nil, nil, fmt.Errorf("list budgets: %w", err)
	}
	items, err := s.transactions.List(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	now := s.now().UTC()
	var monthExpenses []core.Transaction
	for _, t := range core.OnlyExpenses(items) {
		if core.SameMonth(t.Date, now.Month(), now.Year()) {
			monthExpenses = append(monthExpenses, t)
		}
	}
	return budgets, monthExpenses, nil
}

func (s *BudgetService) categoryName(ctx context.Context, owner, categoryID string) (string, error) {
	for _, scope := range []string{owner, core.DefaultOwner} {
		categories, err := s.categories.ListCategories(ctx, scope)
		if err != nil {
			return "", fmt.Errorf("list categories: %w", err)
		}
		for _, c := range categories {
			if c.ID == categoryID {
				return c.Name, nil
			}
		}
	}
	return "", store.ErrNotFound
}
