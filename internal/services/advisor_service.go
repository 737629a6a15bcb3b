package services

import (
	"context"
	"time"

	"soldi/internal/advisor"
	"soldi/internal/core"
)

// AdvisorService assembles the user's financial snapshot and forwards
// the chat message to the assistant.
type AdvisorService struct {
	transactions *TransactionService
	accounts     *AccountService
	budgets      *BudgetService
	goals        *GoalService
	chat         *advisor.Advisor
	now          func() time.Time
}

func NewAdvisorService(
	transactions *TransactionService,
	accounts *AccountService,
	budgets *BudgetService,
	goals *GoalService,
	chat *advisor.Advisor,
) *AdvisorService {
	return &AdvisorService{
		transactions: transactions,
		accounts:     accounts,
		budgets:      budgets,
		goals:        goals,
		chat:         chat,
		now:          time.Now,
	}
}

// Chat answers a single message with the current month's snapshot as
// context. Nothing is persisted.
func (s *AdvisorService) Chat(ctx context.Context, owner, message string) (string, error) {
	snapshot, err := s.snapshot(ctx, owner)
	if err != nil {
		return "", err
	}
	return s.chat.Chat(ctx, snapshot, message)
}

func (s *AdvisorService) snapshot(ctx context.Context, owner string) (advisor.Snapshot, error) {
	now := s.now().UTC()

	items, err := s.transactions.List(ctx, owner)
	if err != nil {
		return advisor.Snapshot{}, err
	}
	accounts, err := s.accounts.List(ctx, owner)
	if err != nil {
		return advisor.Snapshot{}, err
	}
	statuses, err := s.budgets.Statuses(ctx, owner)
	if err != nil {
		return advisor.Snapshot{}, err
	}
	goals, err := s.goals.List(ctx, owner)
	if err != nil {
		return advisor.Snapshot{}, err
	}

	income, expense := core.MonthlyRollup(items, now.Month(), now.Year())
	var total core.Money
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	var recent []core.Transaction
	for _, t := range core.OnlyExpenses(items) {
		if core.SameMonth(t.Date, now.Month(), now.Year()) {
			recent = append(recent, t)
		}
	}

	return advisor.Snapshot{
		Month:          now.Month().String(),
		Year:           now.Year(),
		Income:         income,
		Expense:        expense,
		TotalBalance:   total,
		Accounts:       accounts,
		BudgetStatuses: statuses,
		Goals:          goals,
		RecentExpenses: recent,
	}, nil
}
