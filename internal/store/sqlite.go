package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"soldi/internal/core"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite implements Store on a local SQLite database. One row per
// document; dates are stored as RFC 3339 strings and normalized back to
// time.Time on scan.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(dbPath string) (*SQLite, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func fmtDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func scanDate(raw string) time.Time {
	t, err := core.ParseDate(raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CreateTransaction implements TransactionStore.
func (s *SQLite) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	var created string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO transactions (id, owner, kind, amount_cents, category_id, category_name, category_icon, date, payment_method_id, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at`,
		t.ID, t.Owner, string(t.Kind), t.Amount.Cents, t.CategoryID, t.CategoryName, t.CategoryIcon,
		fmtDate(t.Date), t.PaymentMethodID, t.Notes,
	).Scan(&created)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	t.CreatedAt = scanDate(created)

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"kind", t.Kind,
		"amount_cents", t.Amount.Cents,
		"category", t.CategoryName)
	return t, nil
}

// UpdateTransaction overwrites the mutable fields of an existing row.
func (s *SQLite) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET kind = ?, amount_cents = ?, category_id = ?, category_name = ?, category_icon = ?, date = ?, payment_method_id = ?, notes = ?
		WHERE id = ? AND owner = ?`,
		string(t.Kind), t.Amount.Cents, t.CategoryID, t.CategoryName, t.CategoryIcon,
		fmtDate(t.Date), t.PaymentMethodID, t.Notes, t.ID, t.Owner)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res)
}

func (s *SQLite) DeleteTransaction(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}

func (s *SQLite) ListTransactions(ctx context.Context, owner string) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, kind, amount_cents, category_id, category_name, category_icon, date, payment_method_id, notes, created_at
		FROM transactions
		WHERE owner = ?
		ORDER BY date DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var kind, date, created string
		if err := rows.Scan(&t.ID, &t.Owner, &kind, &t.Amount.Cents, &t.CategoryID, &t.CategoryName,
			&t.CategoryIcon, &date, &t.PaymentMethodID, &t.Notes, &created); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Kind = core.Kind(kind)
		t.Date = scanDate(date)
		t.CreatedAt = scanDate(created)
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTransfer implements TransferStore. The transfer row and both
// account balance updates land in one transaction, so a partial write
// cannot leave the books unbalanced.
func (s *SQLite) CreateTransfer(ctx context.Context, t core.Transfer) (core.Transfer, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transfer{}, fmt.Errorf("begin transfer tx: %w", err)
	}
	defer tx.Rollback()

	var created string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transfers (id, owner, from_account_id, from_account_name, from_account_icon,
			to_account_id, to_account_name, to_account_icon, amount_cents, date,
			from_before_cents, from_after_cents, to_before_cents, to_after_cents, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at`,
		t.ID, t.Owner, t.FromAccountID, t.FromAccountName, t.FromAccountIcon,
		t.ToAccountID, t.ToAccountName, t.ToAccountIcon, t.Amount.Cents, fmtDate(t.Date),
		t.FromBefore.Cents, t.FromAfter.Cents, t.ToBefore.Cents, t.ToAfter.Cents, t.Notes,
	).Scan(&created)
	if err != nil {
		return core.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}

	for _, upd := range []struct {
		id      string
		balance int64
	}{
		{t.FromAccountID, t.FromAfter.Cents},
		{t.ToAccountID, t.ToAfter.Cents},
	} {
		res, err := tx.ExecContext(ctx, `
			UPDATE accounts SET balance_cents = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
			WHERE id = ? AND owner = ?`, upd.balance, upd.id, t.Owner)
		if err != nil {
			return core.Transfer{}, fmt.Errorf("update account balance: %w", err)
		}
		if err := requireRow(res); err != nil {
			return core.Transfer{}, fmt.Errorf("update account %s: %w", upd.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return core.Transfer{}, fmt.Errorf("commit transfer: %w", err)
	}
	t.CreatedAt = scanDate(created)

	slog.InfoContext(ctx, "Transfer saved",
		"id", t.ID,
		"from", t.FromAccountName,
		"to", t.ToAccountName,
		"amount_cents", t.Amount.Cents)
	return t, nil
}

func (s *SQLite) ListTransfers(ctx context.Context, owner string) ([]core.Transfer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, from_account_id, from_account_name, from_account_icon,
			to_account_id, to_account_name, to_account_icon, amount_cents, date,
			from_before_cents, from_after_cents, to_before_cents, to_after_cents, notes, created_at
		FROM transfers
		WHERE owner = ?
		ORDER BY date DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []core.Transfer
	for rows.Next() {
		var t core.Transfer
		var date, created string
		if err := rows.Scan(&t.ID, &t.Owner, &t.FromAccountID, &t.FromAccountName, &t.FromAccountIcon,
			&t.ToAccountID, &t.ToAccountName, &t.ToAccountIcon, &t.Amount.Cents, &date,
			&t.FromBefore.Cents, &t.FromAfter.Cents, &t.ToBefore.Cents, &t.ToAfter.Cents,
			&t.Notes, &created); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		t.Date = scanDate(date)
		t.CreatedAt = scanDate(created)
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateCategory implements CategoryStore.
func (s *SQLite) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	var created string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, owner, name, icon, kind)
		VALUES (?, ?, ?, ?, ?)
		RETURNING created_at`,
		c.ID, c.Owner, c.Name, c.Icon, string(c.Kind),
	).Scan(&created)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	c.CreatedAt = scanDate(created)
	return c, nil
}

func (s *SQLite) DeleteCategory(ctx context.Context, owner, id string) error {
	// Deliberately no cascade: transactions keep their denormalized
	// category name and icon.
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res)
}

func (s *SQLite) ListCategories(ctx context.Context, owner string) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, name, icon, kind, created_at
		FROM categories
		WHERE owner = ?`, owner)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		var kind, created string
		if err := rows.Scan(&c.ID, &c.Owner, &c.Name, &c.Icon, &kind, &created); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Kind = core.Kind(kind)
		c.CreatedAt = scanDate(created)
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateAccount implements AccountStore.
func (s *SQLite) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	var created, updated string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (id, owner, name, icon, balance_cents)
		VALUES (?, ?, ?, ?, ?)
		RETURNING created_at, updated_at`,
		a.ID, a.Owner, a.Name, a.Icon, a.Balance.Cents,
	).Scan(&created, &updated)
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	a.CreatedAt = scanDate(created)
	a.UpdatedAt = scanDate(updated)
	return a, nil
}

func (s *SQLite) UpdateAccount(ctx context.Context, a core.Account) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET name = ?, icon = ?, balance_cents = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ? AND owner = ?`,
		a.Name, a.Icon, a.Balance.Cents, a.ID, a.Owner)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return requireRow(res)
}

func (s *SQLite) DeleteAccount(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return requireRow(res)
}

func (s *SQLite) GetAccount(ctx context.Context, owner, id string) (core.Account, error) {
	var a core.Account
	var created, updated string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner, name, icon, balance_cents, created_at, updated_at
		FROM accounts WHERE id = ? AND owner = ?`, id, owner,
	).Scan(&a.ID, &a.Owner, &a.Name, &a.Icon, &a.Balance.Cents, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, ErrNotFound
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("get account: %w", err)
	}
	a.CreatedAt = scanDate(created)
	a.UpdatedAt = scanDate(updated)
	return a, nil
}

func (s *SQLite) ListAccounts(ctx context.Context, owner string) ([]core.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, name, icon, balance_cents, created_at, updated_at
		FROM accounts WHERE owner = ?
		ORDER BY created_at`, owner)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var a core.Account
		var created, updated string
		if err := rows.Scan(&a.ID, &a.Owner, &a.Name, &a.Icon, &a.Balance.Cents, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.CreatedAt = scanDate(created)
		a.UpdatedAt = scanDate(updated)
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetupAccounts creates the initial accounts in a single transaction:
// either every account lands or none does.
func (s *SQLite) SetupAccounts(ctx context.Context, accounts []core.Account) ([]core.Account, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin setup tx: %w", err)
	}
	defer tx.Rollback()

	out := make([]core.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		var created, updated string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO accounts (id, owner, name, icon, balance_cents)
			VALUES (?, ?, ?, ?, ?)
			RETURNING created_at, updated_at`,
			a.ID, a.Owner, a.Name, a.Icon, a.Balance.Cents,
		).Scan(&created, &updated)
		if err != nil {
			return nil, fmt.Errorf("setup account %s: %w", a.Name, err)
		}
		a.CreatedAt = scanDate(created)
		a.UpdatedAt = scanDate(updated)
		out = append(out, a)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit setup: %w", err)
	}
	return out, nil
}

// CreateBudget implements BudgetStore.
func (s *SQLite) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	var created string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO budgets (id, owner, category_id, category_name, amount_cents, month)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING created_at`,
		b.ID, b.Owner, b.CategoryID, b.CategoryName, b.Amount.Cents, b.Month,
	).Scan(&created)
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	b.CreatedAt = scanDate(created)
	return b, nil
}

func (s *SQLite) DeleteBudget(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res)
}

func (s *SQLite) ListBudgets(ctx context.Context, owner string) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, category_id, category_name, amount_cents, month, created_at
		FROM budgets WHERE owner = ?
		ORDER BY created_at`, owner)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var created string
		if err := rows.Scan(&b.ID, &b.Owner, &b.CategoryID, &b.CategoryName, &b.Amount.Cents, &b.Month, &created); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.CreatedAt = scanDate(created)
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreatePaymentMethod implements PaymentMethodStore.
func (s *SQLite) CreatePaymentMethod(ctx context.Context, p core.PaymentMethod) (core.PaymentMethod, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	var created string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO payment_methods (id, owner, name, icon)
		VALUES (?, ?, ?, ?)
		RETURNING created_at`,
		p.ID, p.Owner, p.Name, p.Icon,
	).Scan(&created)
	if err != nil {
		return core.PaymentMethod{}, fmt.Errorf("create payment method: %w", err)
	}
	p.CreatedAt = scanDate(created)
	return p, nil
}

func (s *SQLite) ListPaymentMethods(ctx context.Context, owner string) ([]core.PaymentMethod, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, name, icon, created_at
		FROM payment_methods WHERE owner = ?
		ORDER BY created_at`, owner)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()

	var out []core.PaymentMethod
	for rows.Next() {
		var p core.PaymentMethod
		var created string
		if err := rows.Scan(&p.ID, &p.Owner, &p.Name, &p.Icon, &created); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		p.CreatedAt = scanDate(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateGoal implements GoalStore.
func (s *SQLite) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	var created, updated string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO goals (id, owner, name, icon, target_cents, saved_cents)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING created_at, updated_at`,
		g.ID, g.Owner, g.Name, g.Icon, g.Target.Cents, g.Saved.Cents,
	).Scan(&created, &updated)
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	g.CreatedAt = scanDate(created)
	g.UpdatedAt = scanDate(updated)
	return g, nil
}

func (s *SQLite) UpdateGoal(ctx context.Context, g core.Goal) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE goals SET name = ?, icon = ?, target_cents = ?, saved_cents = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ? AND owner = ?`,
		g.Name, g.Icon, g.Target.Cents, g.Saved.Cents, g.ID, g.Owner)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res)
}

func (s *SQLite) ListGoals(ctx context.Context, owner string) ([]core.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, name, icon, target_cents, saved_cents, created_at, updated_at
		FROM goals WHERE owner = ?
		ORDER BY created_at`, owner)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var g core.Goal
		var created, updated string
		if err := rows.Scan(&g.ID, &g.Owner, &g.Name, &g.Icon, &g.Target.Cents, &g.Saved.Cents, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.CreatedAt = scanDate(created)
		g.UpdatedAt = scanDate(updated)
		out = append(out, g)
	}
	return out, rows.Err()
}

// CreateUser implements UserStore.
func (s *SQLite) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	var created string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES (?, ?, ?, ?)
		RETURNING created_at`,
		u.ID, u.Name, u.Email, u.PasswordHash,
	).Scan(&created)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return core.User{}, ErrDuplicateEmail
		}
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	u.CreatedAt = scanDate(created)
	return u, nil
}

func (s *SQLite) FindUserByEmail(ctx context.Context, email string) (core.User, error) {
	var u core.User
	var created string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("find user: %w", err)
	}
	u.CreatedAt = scanDate(created)
	return u, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
