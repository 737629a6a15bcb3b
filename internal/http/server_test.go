package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"soldi/internal/auth"
	applog "soldi/internal/log"
	"soldi/internal/services"
	"soldi/internal/store/memory"
)

type testEnv struct {
	server *httptest.Server
	mem    *memory.Store
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := memory.New()
	mem.SeedDefaultCategories()

	logger := applog.New(applog.Config{Output: io.Discard})
	authSvc := auth.NewService(mem, "test-secret-0123456789", logger.Logger)
	tx := services.NewTransactionService(mem, mem, mem)

	srv := NewServer("127.0.0.1:0", Deps{
		Auth:           authSvc,
		Transactions:   tx,
		Categories:     services.NewCategoryService(mem),
		Accounts:       services.NewAccountService(mem),
		Budgets:        services.NewBudgetService(mem, mem, tx),
		Stats:          services.NewStatsService(tx),
		PaymentMethods: services.NewPaymentMethodService(mem),
		Goals:          services.NewGoalService(mem),
		Logger:         logger,
	})
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	env := &testEnv{server: ts, mem: mem}
	var session struct {
		Token string `json:"token"`
	}
	env.do(t, gohttp.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "longenough",
	}, gohttp.StatusCreated, &session)
	env.token = session.Token
	return env
}

// do issues a request and decodes the JSON response into out (when
// non-nil), failing the test on an unexpected status.
func (e *testEnv) do(t *testing.T, method, path string, body any, wantStatus int, out any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := gohttp.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d\nbody: %s", method, path, resp.StatusCode, wantStatus, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("decode %s %s response: %v\nbody: %s", method, path, err, raw)
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := gohttp.Get(env.server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != gohttp.StatusOK {
			t.Fatalf("GET %s: status %d", path, resp.StatusCode)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)
	env.token = ""
	var e struct {
		Error string `json:"error"`
	}
	env.do(t, gohttp.MethodGet, "/api/transactions", nil, gohttp.StatusUnauthorized, &e)
	if e.Error == "" {
		t.Fatal("expected error message")
	}
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	env.token = ""

	var session struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	env.do(t, gohttp.MethodPost, "/api/auth/login", map[string]string{
		"email": "ada@example.com", "password": "longenough",
	}, gohttp.StatusOK, &session)
	if session.Token == "" || session.User.Email != "ada@example.com" {
		t.Fatalf("login response incomplete: %+v", session)
	}

	env.do(t, gohttp.MethodPost, "/api/auth/login", map[string]string{
		"email": "ada@example.com", "password": "wrong password",
	}, gohttp.StatusUnauthorized, nil)
}

func TestTransactionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	today := time.Now().UTC().Format("2006-01-02")

	var created struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Prefix string `json:"prefix"`
		Amount struct {
			Cents int64 `json:"cents"`
		} `json:"amount"`
	}
	env.do(t, gohttp.MethodPost, "/api/transactions", map[string]string{
		"kind": "expense", "amount": "12,50", "category_name": "Food", "date": today,
		"notes": "lunch",
	}, gohttp.StatusCreated, &created)
	if created.ID == "" || created.Amount.Cents != 12_50 {
		t.Fatalf("create response wrong: %+v", created)
	}
	if created.Prefix != "-" {
		t.Fatalf("expense prefix = %q, want -", created.Prefix)
	}

	var list []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	env.do(t, gohttp.MethodGet, "/api/transactions", nil, gohttp.StatusOK, &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v", list)
	}

	env.do(t, gohttp.MethodGet, "/api/transactions?q=lunch", nil, gohttp.StatusOK, &list)
	if len(list) != 1 {
		t.Fatalf("search miss: %+v", list)
	}
	env.do(t, gohttp.MethodGet, "/api/transactions?type=income", nil, gohttp.StatusOK, &list)
	if len(list) != 0 {
		t.Fatalf("type filter leaked: %+v", list)
	}

	env.do(t, gohttp.MethodDelete, "/api/transactions/"+created.ID, nil, gohttp.StatusNoContent, nil)
	env.do(t, gohttp.MethodGet, "/api/transactions", nil, gohttp.StatusOK, &list)
	if len(list) != 0 {
		t.Fatalf("delete did not stick: %+v", list)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	env := newTestEnv(t)
	today := time.Now().UTC().Format("2006-01-02")

	env.do(t, gohttp.MethodPost, "/api/transactions", map[string]string{
		"kind": "expense", "amount": "-5.00", "category_name": "Food", "date": today,
	}, gohttp.StatusBadRequest, nil)
	env.do(t, gohttp.MethodPost, "/api/transactions", map[string]string{
		"kind": "loan", "amount": "5.00", "category_name": "Food", "date": today,
	}, gohttp.StatusBadRequest, nil)
}

func TestAccountSetupAndTransfer(t *testing.T) {
	env := newTestEnv(t)
	today := time.Now().UTC().Format("2006-01-02")

	var accounts []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	env.do(t, gohttp.MethodPost, "/api/accounts/setup", map[string]any{
		"accounts": []map[string]string{
			{"name": "Checking", "balance": "500.00"},
			{"name": "Savings", "balance": "100.00"},
		},
	}, gohttp.StatusCreated, &accounts)
	if len(accounts) != 2 {
		t.Fatalf("setup created %d accounts", len(accounts))
	}

	var transfer struct {
		Type      string `json:"type"`
		Name      string `json:"name"`
		Prefix    string `json:"prefix"`
		Color     string `json:"color"`
		FromAfter struct {
			Cents int64 `json:"cents"`
		} `json:"from_after"`
	}
	env.do(t, gohttp.MethodPost, "/api/transfers", map[string]string{
		"from_account_id": accounts[0].ID,
		"to_account_id":   accounts[1].ID,
		"amount":          "200.00",
		"date":            today,
	}, gohttp.StatusCreated, &transfer)
	if transfer.Type != "transfer" {
		t.Fatalf("type = %q", transfer.Type)
	}
	if transfer.Name != "Checking → Savings" {
		t.Fatalf("display name = %q", transfer.Name)
	}
	if transfer.Prefix != "⇄" || transfer.Color != "neutral" {
		t.Fatalf("transfer presentation wrong: prefix=%q color=%q", transfer.Prefix, transfer.Color)
	}
	if transfer.FromAfter.Cents != 300_00 {
		t.Fatalf("from_after = %d, want 30000", transfer.FromAfter.Cents)
	}

	var listing struct {
		Accounts []struct {
			Balance struct {
				Cents int64 `json:"cents"`
			} `json:"balance"`
		} `json:"accounts"`
		Total struct {
			Cents int64 `json:"cents"`
		} `json:"total"`
	}
	env.do(t, gohttp.MethodGet, "/api/accounts", nil, gohttp.StatusOK, &listing)
	if listing.Total.Cents != 600_00 {
		t.Fatalf("total = %d, want 60000 (transfers are balance neutral)", listing.Total.Cents)
	}
}

func TestFeedCacheInvalidatedByWrites(t *testing.T) {
	env := newTestEnv(t)
	today := time.Now().UTC().Format("2006-01-02")

	var list []json.RawMessage
	env.do(t, gohttp.MethodGet, "/api/transactions", nil, gohttp.StatusOK, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty feed, got %d", len(list))
	}

	env.do(t, gohttp.MethodPost, "/api/transactions", map[string]string{
		"kind": "income", "amount": "100.00", "category_name": "Salary", "date": today,
	}, gohttp.StatusCreated, nil)

	env.do(t, gohttp.MethodGet, "/api/transactions", nil, gohttp.StatusOK, &list)
	if len(list) != 1 {
		t.Fatalf("stale cache: feed has %d items after write", len(list))
	}
}

func TestCategoriesMergedWithDefaults(t *testing.T) {
	env := newTestEnv(t)

	var categories []struct {
		Name      string `json:"name"`
		IsDefault bool   `json:"is_default"`
	}
	env.do(t, gohttp.MethodGet, "/api/categories", nil, gohttp.StatusOK, &categories)
	if len(categories) == 0 {
		t.Fatal("expected seeded default categories")
	}
	for _, c := range categories {
		if !c.IsDefault {
			t.Fatalf("unexpected non-default category %q before any create", c.Name)
		}
	}

	env.do(t, gohttp.MethodPost, "/api/categories", map[string]string{
		"name": "Pets", "kind": "expense", "icon": "🐈",
	}, gohttp.StatusCreated, nil)

	env.do(t, gohttp.MethodGet, "/api/categories", nil, gohttp.StatusOK, &categories)
	found := false
	for _, c := range categories {
		if c.Name == "Pets" && !c.IsDefault {
			found = true
		}
	}
	if !found {
		t.Fatalf("created category missing from merged list: %+v", categories)
	}
}

func TestBudgetStatusesAndOverview(t *testing.T) {
	env := newTestEnv(t)
	today := time.Now().UTC().Format("2006-01-02")

	env.do(t, gohttp.MethodPost, "/api/budgets", map[string]string{
		"category_name": "Food", "amount": "1000.00",
	}, gohttp.StatusCreated, nil)
	env.do(t, gohttp.MethodPost, "/api/transactions", map[string]string{
		"kind": "expense", "amount": "700.00", "category_name": "food", "date": today,
	}, gohttp.StatusCreated, nil)

	var statuses []struct {
		Percent int    `json:"percent"`
		Tier    string `json:"tier"`
		Spent   struct {
			Cents int64 `json:"cents"`
		} `json:"spent"`
	}
	env.do(t, gohttp.MethodGet, "/api/budgets", nil, gohttp.StatusOK, &statuses)
	if len(statuses) != 1 {
		t.Fatalf("got %d statuses", len(statuses))
	}
	if statuses[0].Spent.Cents != 700_00 || statuses[0].Percent != 70 || statuses[0].Tier != "normal" {
		t.Fatalf("status wrong: %+v", statuses[0])
	}

	var overview struct {
		Percent int    `json:"percent"`
		Tier    string `json:"tier"`
	}
	env.do(t, gohttp.MethodGet, "/api/budgets/overview", nil, gohttp.StatusOK, &overview)
	if overview.Percent != 70 || overview.Tier != "warning" {
		t.Fatalf("overview wrong: %+v", overview)
	}
}

func TestMonthlyStatsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now().UTC()
	today := now.Format("2006-01-02")

	env.do(t, gohttp.MethodPost, "/api/transactions", map[string]string{
		"kind": "income", "amount": "2500.00", "category_name": "Salary", "date": today,
	}, gohttp.StatusCreated, nil)
	env.do(t, gohttp.MethodPost, "/api/transactions", map[string]string{
		"kind": "expense", "amount": "900.00", "category_name": "Rent", "date": today,
	}, gohttp.StatusCreated, nil)

	var stats struct {
		Month  string `json:"month"`
		Year   int    `json:"year"`
		Income struct {
			Cents int64 `json:"cents"`
		} `json:"income"`
		Net struct {
			Cents int64 `json:"cents"`
		} `json:"net"`
	}
	path := fmt.Sprintf("/api/stats/monthly?month=%d&year=%d", int(now.Month()), now.Year())
	env.do(t, gohttp.MethodGet, path, nil, gohttp.StatusOK, &stats)
	if stats.Income.Cents != 2500_00 || stats.Net.Cents != 1600_00 {
		t.Fatalf("stats wrong: %+v", stats)
	}
	if stats.Month != now.Month().String() {
		t.Fatalf("month = %q, want %q", stats.Month, now.Month())
	}
}

func TestAdvisorUnconfigured(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, gohttp.MethodPost, "/api/advisor/chat", map[string]string{
		"message": "hello",
	}, gohttp.StatusServiceUnavailable, nil)
}

func TestOwnerIsolation(t *testing.T) {
	env := newTestEnv(t)
	today := time.Now().UTC().Format("2006-01-02")

	env.do(t, gohttp.MethodPost, "/api/transactions", map[string]string{
		"kind": "expense", "amount": "10.00", "category_name": "Food", "date": today,
	}, gohttp.StatusCreated, nil)

	// Second user sees an empty feed.
	other := &testEnv{server: env.server, mem: env.mem}
	var session struct {
		Token string `json:"token"`
	}
	other.do(t, gohttp.MethodPost, "/api/auth/register", map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "longenough",
	}, gohttp.StatusCreated, &session)
	other.token = session.Token

	var list []json.RawMessage
	other.do(t, gohttp.MethodGet, "/api/transactions", nil, gohttp.StatusOK, &list)
	if len(list) != 0 {
		t.Fatalf("foreign transactions leaked: %d items", len(list))
	}
}
