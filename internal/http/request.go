package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"soldi/internal/core"
)

const maxRequestBody = 1 << 20

var errBadJSON = errors.New("malformed JSON body")

// decodeJSON strictly decodes the request body into dst. Unknown
// fields and trailing data are rejected.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	if dec.More() {
		return errBadJSON
	}
	return nil
}

// Request payloads. Amounts travel as decimal strings and are parsed
// to cents at this boundary; dates accept the formats core.ParseDate
// knows.
type (
	registerRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	transactionRequest struct {
		Kind            string `json:"kind"`
		Amount          string `json:"amount"`
		CategoryID      string `json:"category_id"`
		CategoryName    string `json:"category_name"`
		CategoryIcon    string `json:"category_icon"`
		Date            string `json:"date"`
		PaymentMethodID string `json:"payment_method_id"`
		Notes           string `json:"notes"`
	}

	transferRequest struct {
		FromAccountID string `json:"from_account_id"`
		ToAccountID   string `json:"to_account_id"`
		Amount        string `json:"amount"`
		Date          string `json:"date"`
		Notes         string `json:"notes"`
	}

	categoryRequest struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
		Kind string `json:"kind"`
	}

	accountRequest struct {
		Name    string `json:"name"`
		Icon    string `json:"icon"`
		Balance string `json:"balance"`
	}

	setupRequest struct {
		Accounts []accountRequest `json:"accounts"`
	}

	budgetRequest struct {
		CategoryID   string `json:"category_id"`
		CategoryName string `json:"category_name"`
		Amount       string `json:"amount"`
		Month        string `json:"month"`
	}

	paymentMethodRequest struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}

	goalRequest struct {
		Name   string `json:"name"`
		Icon   string `json:"icon"`
		Target string `json:"target"`
		Saved  string `json:"saved"`
	}

	chatRequest struct {
		Message string `json:"message"`
	}
)

func parseAmount(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}

func (in transactionRequest) toTransaction(owner string) (core.Transaction, error) {
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(in.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Owner:           owner,
		Kind:            core.Kind(in.Kind),
		Amount:          amount,
		CategoryID:      sanitizeInput(in.CategoryID),
		CategoryName:    sanitizeInput(in.CategoryName),
		CategoryIcon:    sanitizeInput(in.CategoryIcon),
		Date:            date,
		PaymentMethodID: sanitizeInput(in.PaymentMethodID),
		Notes:           sanitizeInput(in.Notes),
	}, nil
}

func (in transferRequest) toTransfer(owner string) (core.Transfer, error) {
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return core.Transfer{}, err
	}
	date, err := core.ParseDate(in.Date)
	if err != nil {
		return core.Transfer{}, err
	}
	return core.Transfer{
		Owner:         owner,
		FromAccountID: sanitizeInput(in.FromAccountID),
		ToAccountID:   sanitizeInput(in.ToAccountID),
		Amount:        amount,
		Date:          date,
		Notes:         sanitizeInput(in.Notes),
	}, nil
}

func (in accountRequest) toAccount(owner string) (core.Account, error) {
	balance := core.Money{}
	if in.Balance != "" {
		var err error
		balance, err = parseAmount(in.Balance)
		if err != nil {
			return core.Account{}, err
		}
	}
	return core.Account{
		Owner:   owner,
		Name:    sanitizeInput(in.Name),
		Icon:    sanitizeInput(in.Icon),
		Balance: balance,
	}, nil
}

func (in budgetRequest) toBudget(owner string) (core.Budget, error) {
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return core.Budget{}, err
	}
	return core.Budget{
		Owner:        owner,
		CategoryID:   sanitizeInput(in.CategoryID),
		CategoryName: sanitizeInput(in.CategoryName),
		Amount:       amount,
		Month:        sanitizeInput(in.Month),
	}, nil
}

func (in goalRequest) toGoal(owner string) (core.Goal, error) {
	target, err := parseAmount(in.Target)
	if err != nil {
		return core.Goal{}, err
	}
	saved := core.Money{}
	if in.Saved != "" {
		saved, err = parseAmount(in.Saved)
		if err != nil {
			return core.Goal{}, err
		}
	}
	return core.Goal{
		Owner:  owner,
		Name:   sanitizeInput(in.Name),
		Icon:   sanitizeInput(in.Icon),
		Target: target,
		Saved:  saved,
	}, nil
}
