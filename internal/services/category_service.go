package services

import (
	"context"
	"errors"
	"fmt"

	"soldi/internal/core"
	"soldi/internal/store"

	"golang.org/x/sync/errgroup"
)

var ErrDefaultCategory = errors.New("default categories cannot be modified")

// CategoryService merges the shared default categories with the user's
// own. Deleting or shadowing a default is not allowed.
type CategoryService struct {
	categories store.CategoryStore
}

func NewCategoryService(categories store.CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// List fetches the default set and the owner's set concurrently and
// merges them, defaults first within equal names.
func (s *CategoryService) List(ctx context.Context, owner string) ([]core.Category, error) {
	var defaults, owned []core.Category
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		defaults, err = s.categories.ListCategories(gctx, core.DefaultOwner)
		if err != nil {
			return fmt.Errorf("list default categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		owned, err = s.categories.ListCategories(gctx, owner)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return core.MergeCategories(defaults, owned), nil
}

func (s *CategoryService) Create(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if c.Owner == core.DefaultOwner {
		return core.Category{}, ErrDefaultCategory
	}
	created, err := s.categories.CreateCategory(ctx, c)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (s *CategoryService) Delete(ctx context.Context, owner, id string) error {
	if owner == core.DefaultOwner {
		return ErrDefaultCategory
	}
	if err := s.categories.DeleteCategory(ctx, owner, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
