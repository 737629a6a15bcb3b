// Package services provides business logic and orchestration between
// the HTTP layer and the stores.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"soldi/internal/core"
	"soldi/internal/store"

	"golang.org/x/sync/errgroup"
)

// TransactionService merges regular transactions and transfers into the
// unified feed and handles writes for both shapes.
type TransactionService struct {
	transactions store.TransactionStore
	transfers    store.TransferStore
	accounts     store.AccountStore
}

func NewTransactionService(transactions store.TransactionStore, transfers store.TransferStore, accounts store.AccountStore) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		transfers:    transfers,
		accounts:     accounts,
	}
}

// List fetches regulars and transfers concurrently and merges them into
// one feed sorted by date descending. Both fetches must succeed.
func (s *TransactionService) List(ctx context.Context, owner string) ([]core.TaggedTransaction, error) {
	var (
		regulars  []core.Transaction
		transfers []core.Transfer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		regulars, err = s.transactions.ListTransactions(gctx, owner)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transfers, err = s.transfers.ListTransfers(gctx, owner)
		if err != nil {
			return fmt.Errorf("list transfers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return core.Merge(regulars, transfers), nil
}

// ListFiltered applies the type filter and search term on top of List.
func (s *TransactionService) ListFiltered(ctx context.Context, owner, typeFilter, term string) ([]core.TaggedTransaction, error) {
	items, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return core.Filter(items, typeFilter, term), nil
}

func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	created, err := s.transactions.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return created, nil
}

func (s *TransactionService) Update(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.transactions.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, owner, id string) error {
	if err := s.transactions.DeleteTransaction(ctx, owner, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// Transfer moves money between two accounts of the same owner. Balance
// snapshots are computed here from the current account state; the store
// applies transfer row and both balance updates atomically.
func (s *TransactionService) Transfer(ctx context.Context, t core.Transfer) (core.Transfer, error) {
	if err := t.Validate(); err != nil {
		return core.Transfer{}, err
	}

	from, err := s.accounts.GetAccount(ctx, t.Owner, t.FromAccountID)
	if err != nil {
		return core.Transfer{}, fmt.Errorf("load source account: %w", err)
	}
	to, err := s.accounts.GetAccount(ctx, t.Owner, t.ToAccountID)
	if err != nil {
		return core.Transfer{}, fmt.Errorf("load destination account: %w", err)
	}

	t.FromAccountName = from.Name
	t.FromAccountIcon = from.Icon
	t.ToAccountName = to.Name
	t.ToAccountIcon = to.Icon
	t.FromBefore = from.Balance
	t.FromAfter = from.Balance.Sub(t.Amount)
	t.ToBefore = to.Balance
	t.ToAfter = to.Balance.Add(t.Amount)

	created, err := s.transfers.CreateTransfer(ctx, t)
	if err != nil {
		return core.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}
	slog.InfoContext(ctx, "transfer executed",
		slog.String("owner", t.Owner),
		slog.String("from", from.Name),
		slog.String("to", to.Name),
		slog.Int64("amount_cents", t.Amount.Cents))
	return created, nil
}
