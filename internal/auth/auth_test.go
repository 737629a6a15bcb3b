package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"soldi/internal/core"
	"soldi/internal/store"
	"soldi/internal/store/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	mem := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(mem, "test-secret", logger), mem
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Ada", "Ada@Example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "correct horse" {
		t.Fatal("password stored in clear")
	}
	if token == "" {
		t.Fatal("expected session token")
	}

	_, loginToken, err := svc.Login(ctx, "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	session, err := svc.ParseToken(loginToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if session.UserID != user.ID || session.Email != user.Email {
		t.Fatalf("session mismatch: %+v", session)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		want     error
	}{
		{"empty name", "", "a@b.com", "longenough", core.ErrEmptyName},
		{"bad email", "Ada", "not-an-email", "longenough", ErrInvalidEmail},
		{"short password", "Ada", "a@b.com", "short", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "longenough"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, _, err := svc.Register(ctx, "Other", "ada@example.com", "longenough")
	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Fatalf("got %v, want ErrDuplicateEmail", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "longenough"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := svc.Login(ctx, "ada@example.com", "wrong password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	_, _, err = svc.Login(ctx, "nobody@example.com", "longenough")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "Ada", "ada@example.com", "longenough")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(TokenTTL + time.Minute) }
	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.ParseToken("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestSessionContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Fatal("empty context should carry no session")
	}
	want := Session{UserID: "u1", Name: "Ada", Email: "ada@example.com"}
	got, ok := FromContext(WithSession(ctx, want))
	if !ok || got != want {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
}
