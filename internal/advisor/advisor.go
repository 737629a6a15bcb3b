// Package advisor builds the financial-context prompt for the chat
// assistant and talks to the completion backend.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"soldi/internal/core"
)

var ErrEmptyMessage = errors.New("empty message")

// Completer is the port to the language-model backend. The service
// depends on this, never on a concrete client.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Snapshot is the per-user financial context injected into the system
// prompt. Amounts stay in Money so formatting is uniform.
type Snapshot struct {
	Month          string
	Year           int
	Income         core.Money
	Expense        core.Money
	TotalBalance   core.Money
	Accounts       []core.Account
	BudgetStatuses []core.BudgetStatus
	Goals          []core.Goal
	RecentExpenses []core.Transaction
}

const maxRecentExpenses = 15

// BuildSystemPrompt renders the snapshot as the assistant's system
// prompt. Real names and amounts go in; ids stay out.
func BuildSystemPrompt(s Snapshot) string {
	var b strings.Builder
	b.WriteString("You are a personal finance assistant. Answer using only the data below. ")
	b.WriteString("Be concise and concrete; amounts are in euros. Do not invent numbers.\n\n")

	fmt.Fprintf(&b, "Current month: %s %d\n", s.Month, s.Year)
	fmt.Fprintf(&b, "Income this month: %s\n", s.Income)
	fmt.Fprintf(&b, "Expenses this month: %s\n", s.Expense)
	fmt.Fprintf(&b, "Total balance across accounts: %s\n", s.TotalBalance)

	if len(s.Accounts) > 0 {
		b.WriteString("\nAccounts:\n")
		for _, a := range s.Accounts {
			fmt.Fprintf(&b, "- %s: %s\n", a.Name, a.Balance)
		}
	}
	if len(s.BudgetStatuses) > 0 {
		b.WriteString("\nBudgets (monthly cap, spent, used):\n")
		for _, bs := range s.BudgetStatuses {
			fmt.Fprintf(&b, "- %s: cap %s, spent %s, %d%% used (%s)\n",
				bs.Budget.CategoryName, bs.Budget.Amount, bs.Spent, bs.Percent, bs.Tier)
		}
	}
	if len(s.Goals) > 0 {
		b.WriteString("\nSavings goals:\n")
		for _, g := range s.Goals {
			fmt.Fprintf(&b, "- %s: %s saved of %s\n", g.Name, g.Saved, g.Target)
		}
	}
	if len(s.RecentExpenses) > 0 {
		b.WriteString("\nRecent expenses:\n")
		recent := s.RecentExpenses
		if len(recent) > maxRecentExpenses {
			recent = recent[:maxRecentExpenses]
		}
		for _, t := range recent {
			fmt.Fprintf(&b, "- %s %s %s", t.Date.Format("2006-01-02"), t.CategoryName, t.Amount)
			if t.Notes != "" {
				fmt.Fprintf(&b, " (%s)", t.Notes)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Advisor answers one chat message with the snapshot as context.
// Conversation history is not kept server side.
type Advisor struct {
	completer Completer
}

func New(completer Completer) *Advisor {
	return &Advisor{completer: completer}
}

func (a *Advisor) Chat(ctx context.Context, snapshot Snapshot, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	reply, err := a.completer.Complete(ctx, BuildSystemPrompt(snapshot), message)
	if err != nil {
		return "", fmt.Errorf("advisor completion: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// MonthLabel formats a cursor the way the prompt and the budgets API
// expect month names.
func MonthLabel(month time.Month) string { return month.String() }
