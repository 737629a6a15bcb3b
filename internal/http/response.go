package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"soldi/internal/advisor"
	"soldi/internal/auth"
	"soldi/internal/core"
	applog "soldi/internal/log"
	"soldi/internal/services"
	"soldi/internal/store"
)

// writeJSON renders v with the given status. Encoding failures are
// logged; headers are already gone at that point.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "encode response", applog.FieldError, err.Error())
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

// writeError maps domain errors onto HTTP statuses. Store failures
// from a missing index carry the operator hint.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	hint := ""

	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrDefaultCategory):
		status = http.StatusForbidden
	case isValidationError(err):
		status = http.StatusBadRequest
	case store.IsMissingIndex(err):
		hint = store.MissingIndexHint
	}

	if status >= 500 {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			applog.FieldError, err.Error(),
			applog.FieldPath, r.URL.Path)
		writeJSON(w, r, status, errorResponse{Error: "internal error", Hint: hint})
		return
	}
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func isValidationError(err error) bool {
	for _, candidate := range []error{
		core.ErrInvalidAmount,
		core.ErrInvalidKind,
		core.ErrInvalidDate,
		core.ErrEmptyCategory,
		core.ErrEmptyName,
		core.ErrSameAccount,
		core.ErrEmptyMonth,
		auth.ErrWeakPassword,
		auth.ErrInvalidEmail,
		advisor.ErrEmptyMessage,
		errBadJSON,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

// View types. Amounts are rendered both as cents and as the formatted
// decimal string clients display.
type (
	moneyView struct {
		Cents     int64  `json:"cents"`
		Formatted string `json:"formatted"`
	}

	userView struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	sessionView struct {
		Token string   `json:"token"`
		User  userView `json:"user"`
	}

	transactionView struct {
		ID           string    `json:"id"`
		Type         string    `json:"type"`
		Kind         string    `json:"kind,omitempty"`
		Amount       moneyView `json:"amount"`
		Prefix       string    `json:"prefix"`
		Color        string    `json:"color"`
		Icon         string    `json:"icon"`
		Name         string    `json:"name"`
		Date         string    `json:"date"`
		Notes        string    `json:"notes,omitempty"`
		CategoryID   string    `json:"category_id,omitempty"`
		FromAccount  string    `json:"from_account,omitempty"`
		ToAccount    string    `json:"to_account,omitempty"`
		FromAfter    *moneyView `json:"from_after,omitempty"`
		ToAfter      *moneyView `json:"to_after,omitempty"`
	}

	categoryView struct {
		ID        string `json:"id"`
		Owner     string `json:"owner"`
		Name      string `json:"name"`
		Icon      string `json:"icon"`
		Kind      string `json:"kind"`
		IsDefault bool   `json:"is_default"`
	}

	accountView struct {
		ID      string    `json:"id"`
		Name    string    `json:"name"`
		Icon    string    `json:"icon"`
		Balance moneyView `json:"balance"`
	}

	budgetStatusView struct {
		ID           string    `json:"id"`
		CategoryName string    `json:"category_name"`
		Month        string    `json:"month"`
		Amount       moneyView `json:"amount"`
		Spent        moneyView `json:"spent"`
		Remaining    moneyView `json:"remaining"`
		Percent      int       `json:"percent"`
		Tier         string    `json:"tier"`
	}

	budgetOverviewView struct {
		TotalBudget    moneyView `json:"total_budget"`
		TotalSpent     moneyView `json:"total_spent"`
		TotalRemaining moneyView `json:"total_remaining"`
		Percent        int       `json:"percent"`
		Tier           string    `json:"tier"`
	}

	paymentMethodView struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Icon string `json:"icon"`
	}

	goalView struct {
		ID     string    `json:"id"`
		Name   string    `json:"name"`
		Icon   string    `json:"icon"`
		Target moneyView `json:"target"`
		Saved  moneyView `json:"saved"`
	}

	monthlyStatsView struct {
		Month   string    `json:"month"`
		Year    int       `json:"year"`
		Income  moneyView `json:"income"`
		Expense moneyView `json:"expense"`
		Net     moneyView `json:"net"`
	}

	weekBucketView struct {
		Week    int       `json:"week"`
		Income  moneyView `json:"income"`
		Expense moneyView `json:"expense"`
	}

	weeklyStatsView struct {
		Month string           `json:"month"`
		Year  int              `json:"year"`
		Weeks []weekBucketView `json:"weeks"`
	}

	estimateView struct {
		Month    string    `json:"month"`
		Year     int       `json:"year"`
		Estimate moneyView `json:"estimate"`
	}

	chatView struct {
		Reply string `json:"reply"`
	}
)

func newMoneyView(m core.Money) moneyView {
	return moneyView{Cents: m.Cents, Formatted: m.String()}
}

func newUserView(u core.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email}
}

// newTransactionView flattens a tagged transaction with its display
// adapter fields, so clients render both shapes uniformly.
func newTransactionView(tt core.TaggedTransaction) transactionView {
	v := transactionView{
		Type:   string(tt.Tag),
		Amount: newMoneyView(tt.Amount()),
		Prefix: tt.AmountPrefix(),
		Color:  tt.AmountColor(),
		Icon:   tt.DisplayIcon(),
		Name:   tt.DisplayName(),
		Date:   tt.Date().UTC().Format(time.RFC3339),
		Notes:  tt.NotesText(),
	}
	switch {
	case tt.Tag == core.TagTransfer && tt.Transfer != nil:
		t := tt.Transfer
		v.ID = t.ID
		v.FromAccount = t.FromAccountName
		v.ToAccount = t.ToAccountName
		fromAfter := newMoneyView(t.FromAfter)
		toAfter := newMoneyView(t.ToAfter)
		v.FromAfter = &fromAfter
		v.ToAfter = &toAfter
	case tt.Regular != nil:
		t := tt.Regular
		v.ID = t.ID
		v.Kind = string(t.Kind)
		v.CategoryID = t.CategoryID
	}
	return v
}

func newTransactionViews(items []core.TaggedTransaction) []transactionView {
	views := make([]transactionView, 0, len(items))
	for _, tt := range items {
		views = append(views, newTransactionView(tt))
	}
	return views
}

func newCategoryView(c core.Category) categoryView {
	return categoryView{
		ID:        c.ID,
		Owner:     c.Owner,
		Name:      c.Name,
		Icon:      c.Icon,
		Kind:      string(c.Kind),
		IsDefault: c.Owner == core.DefaultOwner,
	}
}

func newAccountView(a core.Account) accountView {
	return accountView{ID: a.ID, Name: a.Name, Icon: a.Icon, Balance: newMoneyView(a.Balance)}
}

func newBudgetStatusView(st core.BudgetStatus) budgetStatusView {
	return budgetStatusView{
		ID:           st.Budget.ID,
		CategoryName: st.Budget.CategoryName,
		Month:        st.Budget.Month,
		Amount:       newMoneyView(st.Budget.Amount),
		Spent:        newMoneyView(st.Spent),
		Remaining:    newMoneyView(st.Remaining),
		Percent:      st.Percent,
		Tier:         string(st.Tier),
	}
}
