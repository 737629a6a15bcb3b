package services

import (
	"context"
	"fmt"
	"log/slog"

	"soldi/internal/core"
	"soldi/internal/store"
)

// AccountService manages accounts and the one-shot initial setup.
type AccountService struct {
	accounts store.AccountStore
}

func NewAccountService(accounts store.AccountStore) *AccountService {
	return &AccountService{accounts: accounts}
}

func (s *AccountService) List(ctx context.Context, owner string) ([]core.Account, error) {
	accounts, err := s.accounts.ListAccounts(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *AccountService) Get(ctx context.Context, owner, id string) (core.Account, error) {
	account, err := s.accounts.GetAccount(ctx, owner, id)
	if err != nil {
		return core.Account{}, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

func (s *AccountService) Create(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	created, err := s.accounts.CreateAccount(ctx, a)
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	return created, nil
}

func (s *AccountService) Update(ctx context.Context, a core.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.accounts.UpdateAccount(ctx, a); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func (s *AccountService) Delete(ctx context.Context, owner, id string) error {
	if err := s.accounts.DeleteAccount(ctx, owner, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// Setup creates the user's initial accounts in one store transaction.
// Every account is validated before anything is written.
func (s *AccountService) Setup(ctx context.Context, owner string, accounts []core.Account) ([]core.Account, error) {
	if len(accounts) == 0 {
		return nil, core.ErrEmptyName
	}
	for i := range accounts {
		accounts[i].Owner = owner
		if err := accounts[i].Validate(); err != nil {
			return nil, fmt.Errorf("account %q: %w", accounts[i].Name, err)
		}
	}
	created, err := s.accounts.SetupAccounts(ctx, accounts)
	if err != nil {
		return nil, fmt.Errorf("setup accounts: %w", err)
	}
	slog.InfoContext(ctx, "accounts initialized",
		slog.String("owner", owner),
		slog.Int("count", len(created)))
	return created, nil
}

// TotalBalance sums the balances of every account of the owner.
func (s *AccountService) TotalBalance(ctx context.Context, owner string) (core.Money, error) {
	accounts, err := s.accounts.ListAccounts(ctx, owner)
	if err != nil {
		return core.Money{}, fmt.Errorf("list accounts: %w", err)
	}
	var total core.Money
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total, nil
}
