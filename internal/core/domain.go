package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	TagRegular  Tag = "regular"
	TagTransfer Tag = "transfer"
)

// DefaultOwner is the reserved pseudo-owner for shared seed categories.
const DefaultOwner = "default"

type (
	// Kind classifies a regular transaction as income or expense.
	Kind string

	// Tag discriminates the two transaction shapes after merging.
	Tag string

	Transaction struct {
		ID              string
		Owner           string
		Kind            Kind
		Amount          Money
		CategoryID      string
		CategoryName    string
		CategoryIcon    string
		Date            time.Time
		PaymentMethodID string
		Notes           string
		CreatedAt       time.Time
	}

	// Transfer is a balance-neutral movement between two accounts of the
	// same owner. It has no income/expense kind.
	Transfer struct {
		ID              string
		Owner           string
		FromAccountID   string
		FromAccountName string
		FromAccountIcon string
		ToAccountID     string
		ToAccountName   string
		ToAccountIcon   string
		Amount          Money
		Date            time.Time
		FromBefore      Money
		FromAfter       Money
		ToBefore        Money
		ToAfter         Money
		Notes           string
		CreatedAt       time.Time
	}

	// TaggedTransaction is the unit the aggregator, filter and display
	// layers operate on. Exactly one of Regular/Transfer is set,
	// matching Tag.
	TaggedTransaction struct {
		Tag      Tag
		Regular  *Transaction
		Transfer *Transfer
	}

	Category struct {
		ID        string
		Owner     string // a user id, or DefaultOwner for shared seeds
		Name      string
		Icon      string
		Kind      Kind
		CreatedAt time.Time
	}

	Account struct {
		ID        string
		Owner     string
		Name      string
		Icon      string
		Balance   Money // signed, may go negative
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	Budget struct {
		ID           string
		Owner        string
		CategoryID   string
		CategoryName string // denormalized, backfilled from category lookup
		Amount       Money  // monthly cap
		Month        string // month name, not a date
		CreatedAt    time.Time
	}

	PaymentMethod struct {
		ID        string
		Owner     string
		Name      string
		Icon      string
		CreatedAt time.Time
	}

	Goal struct {
		ID        string
		Owner     string
		Name      string
		Icon      string
		Target    Money
		Saved     Money
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	User struct {
		ID           string
		Name         string
		Email        string
		PasswordHash string
		CreatedAt    time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyName     = errors.New("empty name")
	ErrSameAccount   = errors.New("source and destination account are the same")
	ErrEmptyMonth    = errors.New("empty budget month")
)

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.CategoryName) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (t Transfer) Validate() error {
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.FromAccountID) == "" || strings.TrimSpace(t.ToAccountID) == "" {
		return ErrEmptyName
	}
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("category name too long (max 100 characters)")
	}
	if !c.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > 100 {
		return errors.New("account name too long (max 100 characters)")
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.CategoryName) == "" {
		return ErrEmptyCategory
	}
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(b.Month) == "" {
		return ErrEmptyMonth
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.Target.Cents < 0 || g.Saved.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Amount returns the raw amount regardless of shape. Transfers are not
// signed; sign presentation is handled by the display layer.
func (tt TaggedTransaction) Amount() Money {
	if tt.Tag == TagTransfer && tt.Transfer != nil {
		return tt.Transfer.Amount
	}
	if tt.Regular != nil {
		return tt.Regular.Amount
	}
	return Money{}
}

// Date returns the normalized calendar instant of either shape.
func (tt TaggedTransaction) Date() time.Time {
	if tt.Tag == TagTransfer && tt.Transfer != nil {
		return tt.Transfer.Date
	}
	if tt.Regular != nil {
		return tt.Regular.Date
	}
	return time.Time{}
}

// NotesText returns the free-text notes of either shape.
func (tt TaggedTransaction) NotesText() string {
	if tt.Tag == TagTransfer && tt.Transfer != nil {
		return tt.Transfer.Notes
	}
	if tt.Regular != nil {
		return tt.Regular.Notes
	}
	return ""
}
