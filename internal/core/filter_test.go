package core

import (
	"reflect"
	"testing"
)

func sampleItems() []TaggedTransaction {
	return Merge(
		[]Transaction{
			{ID: "r1", Kind: Expense, CategoryName: "Food", Amount: Money{Cents: 200_00}, Date: day(2024, 1, 2)},
			{ID: "r2", Kind: Income, CategoryName: "Salary", Notes: "march pay", Amount: Money{Cents: 900_00}, Date: day(2024, 1, 3)},
		},
		[]Transfer{
			{ID: "t1", FromAccountName: "Cash", ToAccountName: "Bank", Notes: "rebalance", Amount: Money{Cents: 1000_00}, Date: day(2024, 1, 1)},
		},
	)
}

func TestFilterIdentity(t *testing.T) {
	items := sampleItems()
	got := Filter(items, FilterAll, "")
	if !reflect.DeepEqual(got, items) {
		t.Fatalf("filter(all, \"\") should be identity")
	}
}

func TestFilterByType(t *testing.T) {
	items := sampleItems()

	transfers := Filter(items, FilterTransfer, "")
	if len(transfers) != 1 || transfers[0].Tag != TagTransfer {
		t.Fatalf("expected exactly the transfer, got %+v", transfers)
	}

	incomes := Filter(items, "income", "")
	if len(incomes) != 1 || incomes[0].Regular.ID != "r2" {
		t.Fatalf("expected exactly r2, got %+v", incomes)
	}

	expenses := Filter(items, "expense", "")
	if len(expenses) != 1 || expenses[0].Regular.ID != "r1" {
		t.Fatalf("expected exactly r1, got %+v", expenses)
	}
}

func TestFilterSearchScenario(t *testing.T) {
	// "bank" matches only the transfer's destination account name.
	items := Merge(
		[]Transaction{{ID: "r1", Kind: Expense, CategoryName: "Food", Amount: Money{Cents: 200_00}, Date: day(2024, 1, 2)}},
		[]Transfer{{ID: "t1", FromAccountName: "Cash", ToAccountName: "Bank", Amount: Money{Cents: 1000_00}, Date: day(2024, 1, 1)}},
	)
	got := Filter(items, FilterAll, "bank")
	if len(got) != 1 || got[0].Tag != TagTransfer {
		t.Fatalf("expected only the transfer, got %+v", got)
	}
}

func TestFilterSearchFieldsAreKindSpecific(t *testing.T) {
	items := sampleItems()

	// Category names are not searched on transfers, account names not on regulars
	if got := Filter(items, FilterTransfer, "food"); len(got) != 0 {
		t.Fatalf("transfer search should not match category names, got %+v", got)
	}
	if got := Filter(items, "expense", "cash"); len(got) != 0 {
		t.Fatalf("regular search should not match account names, got %+v", got)
	}

	// Notes are searched on both shapes
	if got := Filter(items, FilterAll, "MARCH"); len(got) != 1 || got[0].Regular.ID != "r2" {
		t.Fatalf("expected r2 via notes, got %+v", got)
	}
	if got := Filter(items, FilterAll, "rebal"); len(got) != 1 || got[0].Tag != TagTransfer {
		t.Fatalf("expected transfer via notes, got %+v", got)
	}
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	items := sampleItems()
	before := make([]TaggedTransaction, len(items))
	copy(before, items)

	got := Filter(items, FilterAll, "a") // matches several
	for i := 1; i < len(got); i++ {
		if got[i].Date().After(got[i-1].Date()) {
			t.Fatalf("filter broke ordering at %d", i)
		}
	}
	if !reflect.DeepEqual(items, before) {
		t.Fatal("filter mutated its input")
	}
}
