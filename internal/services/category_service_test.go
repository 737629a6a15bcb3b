package services

import (
	"context"
	"errors"
	"testing"

	"soldi/internal/core"
	"soldi/internal/store/memory"
)

func TestCategoryListMergesDefaultsAndOwned(t *testing.T) {
	mem := memory.New()
	mem.SeedDefaultCategories()
	svc := NewCategoryService(mem)
	ctx := context.Background()

	if _, err := svc.Create(ctx, core.Category{Owner: "u1", Name: "Pets", Kind: core.Expense}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	merged, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var sawDefault, sawOwned bool
	for _, c := range merged {
		switch c.Owner {
		case core.DefaultOwner:
			sawDefault = true
		case "u1":
			sawOwned = true
		default:
			t.Fatalf("unexpected owner %q in merged list", c.Owner)
		}
	}
	if !sawDefault || !sawOwned {
		t.Fatalf("merged list incomplete: default=%v owned=%v", sawDefault, sawOwned)
	}
}

func TestCategoryListIsolatesOtherUsers(t *testing.T) {
	mem := memory.New()
	svc := NewCategoryService(mem)
	ctx := context.Background()

	if _, err := svc.Create(ctx, core.Category{Owner: "u2", Name: "Secret", Kind: core.Expense}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	merged, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, c := range merged {
		if c.Name == "Secret" {
			t.Fatal("foreign category leaked into merged list")
		}
	}
}

func TestCategoryDefaultsAreImmutable(t *testing.T) {
	mem := memory.New()
	mem.SeedDefaultCategories()
	svc := NewCategoryService(mem)
	ctx := context.Background()

	_, err := svc.Create(ctx, core.Category{Owner: core.DefaultOwner, Name: "Hack", Kind: core.Expense})
	if !errors.Is(err, ErrDefaultCategory) {
		t.Fatalf("create as default owner: got %v, want ErrDefaultCategory", err)
	}
	if err := svc.Delete(ctx, core.DefaultOwner, "default-food"); !errors.Is(err, ErrDefaultCategory) {
		t.Fatalf("delete default: got %v, want ErrDefaultCategory", err)
	}
}

func TestCategoryCreateValidation(t *testing.T) {
	svc := NewCategoryService(memory.New())
	ctx := context.Background()

	if _, err := svc.Create(ctx, core.Category{Owner: "u1", Name: " ", Kind: core.Expense}); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("blank name: got %v, want ErrEmptyName", err)
	}
	if _, err := svc.Create(ctx, core.Category{Owner: "u1", Name: "Pets", Kind: "loan"}); !errors.Is(err, core.ErrInvalidKind) {
		t.Fatalf("bad kind: got %v, want ErrInvalidKind", err)
	}
}
