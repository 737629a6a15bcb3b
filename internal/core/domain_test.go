package core

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Kind:         Expense,
		Amount:       Money{Cents: 100},
		CategoryName: "Food",
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Kind: "loan", Amount: Money{Cents: 1}, CategoryName: "c", Date: good.Date},
		{Kind: Expense, Amount: Money{Cents: -1}, CategoryName: "c", Date: good.Date},
		{Kind: Expense, Amount: Money{Cents: 1}, CategoryName: "", Date: good.Date},
		{Kind: Expense, Amount: Money{Cents: 1}, CategoryName: "c"},
	}
	for i, tr := range bads {
		if err := tr.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransferValidate(t *testing.T) {
	good := Transfer{
		FromAccountID: "a1",
		ToAccountID:   "a2",
		Amount:        Money{Cents: 100},
		Date:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	same := good
	same.ToAccountID = same.FromAccountID
	if err := same.Validate(); err != ErrSameAccount {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}

	zero := good
	zero.Amount = Money{}
	if err := zero.Validate(); err != ErrInvalidAmount {
		t.Fatalf("transfer amount must be positive, got %v", err)
	}
}

func TestCategoryAndBudgetValidate(t *testing.T) {
	if err := (Category{Name: "Food", Kind: Expense}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Category{Name: "", Kind: Expense}).Validate(); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := (Category{Name: "x", Kind: "other"}).Validate(); err == nil {
		t.Fatal("expected error for bad kind")
	}

	if err := (Budget{CategoryName: "Food", Amount: Money{Cents: 100}, Month: "January"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Budget{CategoryName: "Food", Amount: Money{Cents: 100}}).Validate(); err != ErrEmptyMonth {
		t.Fatal("expected ErrEmptyMonth")
	}
}
