// Package auth handles registration, login and bearer-token sessions.
// Passwords are stored as bcrypt hashes; sessions are HS256 JWTs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"soldi/internal/core"
	"soldi/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const TokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
)

// Session is the authenticated identity attached to each request. The
// UserID is the owner key every store query filters on.
type Session struct {
	UserID string
	Name   string
	Email  string
}

type claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	users  store.UserStore
	secret []byte
	logger *slog.Logger
	now    func() time.Time
}

func NewService(users store.UserStore, secret string, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		secret: []byte(secret),
		logger: logger,
		now:    time.Now,
	}
}

// Register creates the user and returns it with a fresh session token.
func (s *Service) Register(ctx context.Context, name, email, password string) (core.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" {
		return core.User{}, "", core.ErrEmptyName
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return core.User{}, "", ErrInvalidEmail
	}
	if len(password) < 8 {
		return core.User{}, "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, core.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return core.User{}, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return core.User{}, "", err
	}
	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))
	return user, token, nil
}

// Login verifies the password and returns the user with a session
// token. Unknown emails and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (core.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return core.User{}, "", ErrInvalidCredentials
		}
		return core.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return core.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return core.User{}, "", err
	}
	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))
	return user, token, nil
}

func (s *Service) issueToken(user core.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates the signature and expiry and rebuilds the
// session.
func (s *Service) ParseToken(raw string) (Session, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid || c.Subject == "" {
		return Session{}, ErrInvalidToken
	}
	return Session{UserID: c.Subject, Name: c.Name, Email: c.Email}, nil
}

type ctxKey struct{}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, session)
}

// FromContext extracts the session placed by the auth middleware.
func FromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(ctxKey{}).(Session)
	return session, ok
}
