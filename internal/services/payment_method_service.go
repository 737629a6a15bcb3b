package services

import (
	"context"
	"fmt"
	"strings"

	"soldi/internal/core"
	"soldi/internal/store"
)

// PaymentMethodService manages the owner's payment methods.
type PaymentMethodService struct {
	methods store.PaymentMethodStore
}

func NewPaymentMethodService(methods store.PaymentMethodStore) *PaymentMethodService {
	return &PaymentMethodService{methods: methods}
}

func (s *PaymentMethodService) List(ctx context.Context, owner string) ([]core.PaymentMethod, error) {
	methods, err := s.methods.ListPaymentMethods(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}

func (s *PaymentMethodService) Create(ctx context.Context, p core.PaymentMethod) (core.PaymentMethod, error) {
	if strings.TrimSpace(p.Name) == "" {
		return core.PaymentMethod{}, core.ErrEmptyName
	}
	created, err := s.methods.CreatePaymentMethod(ctx, p)
	if err != nil {
		return core.PaymentMethod{}, fmt.Errorf("create payment method: %w", err)
	}
	return created, nil
}
