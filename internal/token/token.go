// internal/token/token.go
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"bookshop/internal/apperr"
)

// Token kinds carried in the token_type claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Payload is the authenticated principal decoded from a token.
type Payload struct {
	UserID   uuid.UUID
	Username string
	IsStaff  bool
	Type     string
	IssuedAt time.Time
	Expires  time.Time
}

type claims struct {
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
	Type     string `json:"token_type"`
	jwt.RegisteredClaims
}

// Maker signs and verifies HS256 JWTs.
type Maker struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewMaker(key string, accessTTL, refreshTTL time.Duration) *Maker {
	return &Maker{key: []byte(key), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// CreateToken issues a token of the given type for the principal.
func (m *Maker) CreateToken(userID uuid.UUID, username string, isStaff bool, tokenType string) (string, error) {
	ttl := m.accessTTL
	if tokenType == TypeRefresh {
		ttl = m.refreshTTL
	}

	now := time.Now().UTC()
	c := claims{
		Username: username,
		IsStaff:  isStaff,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.key)
}

// VerifyToken parses and validates a token, returning its payload.
func (m *Maker) VerifyToken(tokenStr string) (*Payload, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.CodeUnauthenticated, "unexpected signing method")
		}
		return m.key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.New(apperr.CodeUnauthenticated, "invalid or expired token")
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, apperr.New(apperr.CodeUnauthenticated, "malformed token subject")
	}

	return &Payload{
		UserID:   userID,
		Username: c.Username,
		IsStaff:  c.IsStaff,
		Type:     c.Type,
		IssuedAt: c.IssuedAt.Time,
		Expires:  c.ExpiresAt.Time,
	}, nil
}
