// Package token issues and verifies signed access tokens carrying
// identity and role claims.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/arkuznet/stockfolio/internal/model"
)

// DefaultTTL is the access token lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken is the single verification failure returned to callers.
// Malformed tokens, bad signatures, expired tokens and unexpected claim
// shapes are indistinguishable past this boundary.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 tokens with a process-wide secret.
// It is a pure function of its inputs and safe for concurrent use.
type Service struct {
	signKey []byte
	ttl     time.Duration
	now     func() time.Time
}

// New constructs a token service. ttl <= 0 falls back to DefaultTTL.
func New(signKey []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{signKey: signKey, ttl: ttl, now: time.Now}
}

// Issue produces a signed token embedding c with expiry now+TTL.
func (s *Service) Issue(c model.Claims) (model.Session, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	cl := claims{
		Email: c.Email,
		Role:  string(c.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	signed, err := tok.SignedString(s.signKey)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: signed, ExpiresAt: exp}, nil
}

// Verify validates signature and expiry and returns the embedded claims.
// A token is rejected at or after its expiry instant (no leeway).
func (s *Service) Verify(raw string) (model.Claims, error) {
	var cl claims
	parsed, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.signKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return model.Claims{}, ErrInvalidToken
	}
	id, err := uuid.FromString(cl.Subject)
	if err != nil {
		return model.Claims{}, ErrInvalidToken
	}
	role := model.Role(cl.Role)
	if !role.Valid() {
		return model.Claims{}, ErrInvalidToken
	}
	return model.Claims{UserID: id, Email: cl.Email, Role: role}, nil
}
