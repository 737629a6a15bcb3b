package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"soldi/internal/advisor"
	"soldi/internal/core"
	"soldi/internal/store/memory"
)

type recordingCompleter struct {
	system string
	user   string
}

func (r *recordingCompleter) Complete(_ context.Context, system, user string) (string, error) {
	r.system = system
	r.user = user
	return "spend less on food", nil
}

func TestAdvisorChatInjectsSnapshot(t *testing.T) {
	mem := memory.New()
	ctx := context.Background()

	tx := NewTransactionService(mem, mem, mem)
	accounts := NewAccountService(mem)
	budgets := NewBudgetService(mem, mem, tx)
	goals := NewGoalService(mem)

	completer := &recordingCompleter{}
	svc := NewAdvisorService(tx, accounts, budgets, goals, advisor.New(completer))

	fixed := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	budgets.now = svc.now

	if _, err := accounts.Create(ctx, core.Account{Owner: "u1", Name: "Checking", Balance: core.Money{Cents: 1500_00}}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if _, err := tx.Create(ctx, core.Transaction{
		Owner: "u1", Kind: core.Expense, Amount: core.Money{Cents: 80_00},
		CategoryName: "Food", Date: fixed.AddDate(0, 0, -1),
	}); err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	if _, err := goals.Create(ctx, core.Goal{Owner: "u1", Name: "Vacation", Target: core.Money{Cents: 1000_00}}); err != nil {
		t.Fatalf("seed goal: %v", err)
	}

	reply, err := svc.Chat(ctx, "u1", "how am I doing?")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "spend less on food" {
		t.Fatalf("reply = %q", reply)
	}
	if completer.user != "how am I doing?" {
		t.Fatalf("user message = %q", completer.user)
	}
	for _, want := range []string{"March 2024", "Checking: 1500.00", "Expenses this month: 80.00", "Vacation"} {
		if !strings.Contains(completer.system, want) {
			t.Errorf("system prompt missing %q\n%s", want, completer.system)
		}
	}
}

func TestAdvisorChatScopedToOwner(t *testing.T) {
	mem := memory.New()
	ctx := context.Background()

	tx := NewTransactionService(mem, mem, mem)
	completer := &recordingCompleter{}
	svc := NewAdvisorService(tx, NewAccountService(mem), NewBudgetService(mem, mem, tx), NewGoalService(mem), advisor.New(completer))
	svc.now = func() time.Time { return time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC) }

	if _, err := mem.CreateAccount(ctx, core.Account{Owner: "u2", Name: "ForeignAccount", Balance: core.Money{Cents: 9999_00}}); err != nil {
		t.Fatalf("seed foreign account: %v", err)
	}

	if _, err := svc.Chat(ctx, "u1", "what do I own?"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if strings.Contains(completer.system, "ForeignAccount") {
		t.Fatal("foreign account leaked into the prompt")
	}
}
