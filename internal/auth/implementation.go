// internal/auth/implementation.go
package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"bookshop/internal/apperr"
	"bookshop/internal/token"
)

// attemptLimiter throttles register and login attempts per account
// name, so a flood against one name cannot lock everyone else out.
type attemptLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{visitors: make(map[string]*rate.Limiter)}
}

func (l *attemptLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.visitors[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(time.Minute), 5) // 5 attempts per minute per name
		l.visitors[key] = lim
	}
	return lim.Allow()
}

// service implements the Service interface.
type service struct {
	store      Store
	tokenMaker *token.Maker
	attempts   *attemptLimiter
}

// NewService creates a new access-layer service instance.
func NewService(store Store, tokenMaker *token.Maker) Service {
	return &service{
		store:      store,
		tokenMaker: tokenMaker,
		attempts:   newAttemptLimiter(),
	}
}

func limiterKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register creates a new user with a salted Argon2id password hash.
func (s *service) Register(ctx context.Context, username, email, password string) (*User, error) {
	if !s.attempts.allow(limiterKey(username)) {
		return nil, apperr.New(apperr.CodeRateLimited, "too many attempts, try again later")
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, apperr.New(apperr.CodeInvalid, "username and email are required")
	}
	if len(password) < 8 {
		return nil, apperr.New(apperr.CodeInvalid, "password must be at least 8 characters")
	}

	passwordHash, salt, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
		DateJoined:   time.Now().UTC(),
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	if !s.attempts.allow(limiterKey(username)) {
		return nil, apperr.New(apperr.CodeRateLimited, "too many attempts, try again later")
	}

	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		// Same response for a missing user and a wrong password.
		return nil, apperr.New(apperr.CodeUnauthenticated, "invalid credentials")
	}

	ok, err := verifyPassword(password, user.Salt, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, apperr.New(apperr.CodeUnauthenticated, "invalid credentials")
	}

	access, err := s.tokenMaker.CreateToken(user.ID, user.Username, user.IsStaff, token.TypeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refresh, err := s.tokenMaker.CreateToken(user.ID, user.Username, user.IsStaff, token.TypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// user is re-read so a revoked account or changed staff flag takes
// effect immediately.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	payload, err := s.tokenMaker.VerifyToken(refreshToken)
	if err != nil {
		return "", err
	}
	if payload.Type != token.TypeRefresh {
		return "", apperr.New(apperr.CodeUnauthenticated, "refresh token required")
	}

	user, err := s.store.UserByID(ctx, payload.UserID)
	if err != nil {
		return "", apperr.New(apperr.CodeUnauthenticated, "invalid credentials")
	}

	access, err := s.tokenMaker.CreateToken(user.ID, user.Username, user.IsStaff, token.TypeAccess)
	if err != nil {
		return "", fmt.Errorf("failed to create access token: %w", err)
	}
	return access, nil
}

// GetUser retrieves a user by ID.
func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.UserByID(ctx, id)
}

// ListUsers returns a page of users.
func (s *service) ListUsers(ctx context.Context, limit, offset int) ([]*User, error) {
	return s.store.Users(ctx, limit, offset)
}
