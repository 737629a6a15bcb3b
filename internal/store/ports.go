// Package store defines the storage ports of the finance tracker and
// their SQLite implementation. All queries are equality-filtered by
// owner; dates are normalized to time.Time at this boundary.
package store

import (
	"context"

	"soldi/internal/core"
)

// Ports for the persistence layer. Services depend on these, never on
// the concrete repository.
type (
	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, owner, id string) error
		ListTransactions(ctx context.Context, owner string) ([]core.Transaction, error)
	}

	TransferStore interface {
		// CreateTransfer persists the transfer and applies both account
		// balance updates in a single transaction: either all three
		// writes land or none do.
		CreateTransfer(ctx context.Context, t core.Transfer) (core.Transfer, error)
		ListTransfers(ctx context.Context, owner string) ([]core.Transfer, error)
	}

	CategoryStore interface {
		CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
		DeleteCategory(ctx context.Context, owner, id string) error
		// ListCategories returns categories for exactly one owner; the
		// shared DefaultOwner seeds are fetched with a second call.
		ListCategories(ctx context.Context, owner string) ([]core.Category, error)
	}

	AccountStore interface {
		CreateAccount(ctx context.Context, a core.Account) (core.Account, error)
		UpdateAccount(ctx context.Context, a core.Account) error
		DeleteAccount(ctx context.Context, owner, id string) error
		GetAccount(ctx context.Context, owner, id string) (core.Account, error)
		ListAccounts(ctx context.Context, owner string) ([]core.Account, error)
		// SetupAccounts creates the initial accounts in one transaction.
		SetupAccounts(ctx context.Context, accounts []core.Account) ([]core.Account, error)
	}

	BudgetStore interface {
		CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		DeleteBudget(ctx context.Context, owner, id string) error
		ListBudgets(ctx context.Context, owner string) ([]core.Budget, error)
	}

	PaymentMethodStore interface {
		CreatePaymentMethod(ctx context.Context, p core.PaymentMethod) (core.PaymentMethod, error)
		ListPaymentMethods(ctx context.Context, owner string) ([]core.PaymentMethod, error)
	}

	GoalStore interface {
		CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
		UpdateGoal(ctx context.Context, g core.Goal) error
		ListGoals(ctx context.Context, owner string) ([]core.Goal, error)
	}

	UserStore interface {
		CreateUser(ctx context.Context, u core.User) (core.User, error)
		FindUserByEmail(ctx context.Context, email string) (core.User, error)
	}
)

// Store is the unified persistence surface the application wires up.
type Store interface {
	TransactionStore
	TransferStore
	CategoryStore
	AccountStore
	BudgetStore
	PaymentMethodStore
	GoalStore
	UserStore
	Close() error
}
