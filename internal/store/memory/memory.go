// Package memory provides an in-memory implementation of store.Store
// used by tests and the "memory" data backend.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"soldi/internal/core"
	"soldi/internal/store"

	"github.com/google/uuid"
)

// Store keeps every collection in a mutex-guarded map. Reads return
// copies; callers never observe internal state.
type Store struct {
	mu             sync.Mutex
	transactions   map[string]core.Transaction
	transfers      map[string]core.Transfer
	categories     map[string]core.Category
	accounts       map[string]core.Account
	budgets        map[string]core.Budget
	paymentMethods map[string]core.PaymentMethod
	goals          map[string]core.Goal
	users          map[string]core.User

	// Err, when set, is returned by every operation. Tests use it to
	// exercise store-failure paths.
	Err error
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		transactions:   make(map[string]core.Transaction),
		transfers:      make(map[string]core.Transfer),
		categories:     make(map[string]core.Category),
		accounts:       make(map[string]core.Account),
		budgets:        make(map[string]core.Budget),
		paymentMethods: make(map[string]core.PaymentMethod),
		goals:          make(map[string]core.Goal),
		users:          make(map[string]core.User),
	}
}

// SeedDefaultCategories installs the same shared seed data the SQLite
// migrations provide.
func (s *Store) SeedDefaultCategories() {
	seeds := []struct{ name, icon string; kind core.Kind }{
		{"Salary", "💼", core.Income},
		{"Investments", "📈", core.Income},
		{"Food", "🍔", core.Expense},
		{"Transport", "🚌", core.Expense},
		{"Rent", "🏠", core.Expense},
		{"Shopping", "🛍️", core.Expense},
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seed := range seeds {
		id := "default-" + strings.ToLower(seed.name)
		s.categories[id] = core.Category{
			ID: id, Owner: core.DefaultOwner, Name: seed.name, Icon: seed.icon,
			Kind: seed.kind, CreatedAt: time.Now().UTC(),
		}
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return core.Transaction{}, s.Err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now().UTC()
	s.transactions[t.ID] = t
	return t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.transactions[t.ID]
	if !ok || existing.Owner != t.Owner {
		return store.ErrNotFound
	}
	t.CreatedAt = existing.CreatedAt
	s.transactions[t.ID] = t
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if t, ok := s.transactions[id]; !ok || t.Owner != owner {
		return store.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) ListTransactions(_ context.Context, owner string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Store) CreateTransfer(_ context.Context, t core.Transfer) (core.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return core.Transfer{}, s.Err
	}
	from, ok := s.accounts[t.FromAccountID]
	if !ok || from.Owner != t.Owner {
		return core.Transfer{}, store.ErrNotFound
	}
	to, ok := s.accounts[t.ToAccountID]
	if !ok || to.Owner != t.Owner {
		return core.Transfer{}, store.ErrNotFound
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now().UTC()
	s.transfers[t.ID] = t
	from.Balance = t.FromAfter
	to.Balance = t.ToAfter
	s.accounts[from.ID] = from
	s.accounts[to.ID] = to
	return t, nil
}

func (s *Store) ListTransfers(_ context.Context, owner string) ([]core.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []core.Transfer
	for _, t := range s.transfers {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, c core.Category) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return core.Category{}, s.Err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) DeleteCategory(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if c, ok := s.categories[id]; !ok || c.Owner != owner {
		return store.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) ListCategories(_ context.Context, owner string) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []core.Category
	for _, c := range s.categories {
		if c.Owner == owner {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateAccount(_ context.Context, a core.Account) (core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return core.Account{}, s.Err
	}
	return s.createAccountLocked(a), nil
}

func (s *Store) createAccountLocked(a core.Account) core.Account {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.accounts[a.ID] = a
	return a
}

func (s *Store) UpdateAccount(_ context.Context, a core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.accounts[a.ID]
	if !ok || existing.Owner != a.Owner {
		return store.ErrNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	s.accounts[a.ID] = a
	return nil
}

func (s *Store) DeleteAccount(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if a, ok := s.accounts[id]; !ok || a.Owner != owner {
		return store.ErrNotFound
	}
	delete(s.accounts, id)
	return nil
}

func (s *Store) GetAccount(_ context.Context, owner, id string) (core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return core.Account{}, s.Err
	}
	a, ok := s.accounts[id]
	if !ok || a.Owner != owner {
		return core.Account{}, store.ErrNotFound
	}
	return a, nil
}

func (s *Store) ListAccounts(_ context.Context, owner string) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []core.Account
	for _, a := range s.accounts {
		if a.Owner == owner {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) SetupAccounts(_ context.Context, accounts []core.Account) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]core.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, s.createAccountLocked(a))
	}
	return out, nil
}

func (s *Store) CreateBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return core.Budget{}, s.Err
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now().UTC()
	s.budgets[b.ID] = b
	return b, nil
}

func (s *Store) DeleteBudget(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if b, ok := s.budgets[id]; !ok || b.Owner != owner {
		return store.ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}

func (s *Store) ListBudgets(_ context.Context, owner string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []core.Budget
	for _, b := range s.budgets {
		if b.Owner == owner {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreatePaymentMethod(_ context.Context, p core.PaymentMethod) (core.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return core.PaymentMethod{}, s.Err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	s.paymentMethods[p.ID] = p
	return p, nil
}

func (s *Store) ListPaymentMethods(_ context.Context, owner string) ([]core.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []core.PaymentMethod
	for _, p := range s.paymentMethods {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateGoal(_ context.Context, g core.Goal) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return core.Goal{}, s.Err
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	s.goals[g.ID] = g
	return g, nil
}

func (s *Store) UpdateGoal(_ context.Context, g core.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.goals[g.ID]
	if !ok || existing.Owner != g.Owner {
		return store.ErrNotFound
	}
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = time.Now().UTC()
	s.goals[g.ID] = g
	return nil
}

func (s *Store) ListGoals(_ context.Context, owner string) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []core.Goal
	for _, g := range s.goals {
		if g.Owner == owner {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return core.User{}, s.Err
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return core.User{}, store.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return core.User{}, s.Err
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return core.User{}, store.ErrNotFound
}
