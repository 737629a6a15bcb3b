package services

import (
	"context"
	"fmt"

	"soldi/internal/core"
	"soldi/internal/store"
)

// GoalService manages savings goals.
type GoalService struct {
	goals store.GoalStore
}

func NewGoalService(goals store.GoalStore) *GoalService {
	return &GoalService{goals: goals}
}

func (s *GoalService) List(ctx context.Context, owner string) ([]core.Goal, error) {
	goals, err := s.goals.ListGoals(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) Create(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	created, err := s.goals.CreateGoal(ctx, g)
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return created, nil
}

func (s *GoalService) Update(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := s.goals.UpdateGoal(ctx, g); err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return nil
}
