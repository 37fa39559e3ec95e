// Package service contains application services for accounts and portfolios.
package service

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/arkuznet/stockfolio/internal/crypto"
	"github.com/arkuznet/stockfolio/internal/errs"
	"github.com/arkuznet/stockfolio/internal/limiter"
	"github.com/arkuznet/stockfolio/internal/model"
	"github.com/arkuznet/stockfolio/internal/repository"
)

// AuthService defines account creation and credential verification.
type AuthService interface {
	// Signup creates a new account and returns a logged-in session.
	Signup(ctx context.Context, name, email, password string, role model.Role) (model.Session, model.Claims, error)
	// Login verifies credentials with rate limiting and issues a session.
	Login(ctx context.Context, email, password, ip string) (model.Session, model.Claims, error)
}

// Tokens abstracts token issuance for the auth service.
type Tokens interface {
	Issue(c model.Claims) (model.Session, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens Tokens
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens Tokens, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim}
}

// canonicalEmail lowercases email so lookups are case-insensitive.
func canonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// clientIP strips the ephemeral port from an "ip:port" address so every
// attempt from one host counts against the same limiter key.
func clientIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// Signup creates a user with a per-record salt and signs them in.
func (s *AuthServiceImpl) Signup(ctx context.Context, name, email, password string, role model.Role) (model.Session, model.Claims, error) {
	if name == "" || email == "" || password == "" {
		return model.Session{}, model.Claims{}, fmt.Errorf("%w: name, email and password are required", errs.ErrValidation)
	}
	if !role.Valid() {
		return model.Session{}, model.Claims{}, fmt.Errorf("%w: unknown role %q", errs.ErrValidation, role)
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return model.Session{}, model.Claims{}, err
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return model.Session{}, model.Claims{}, err
	}

	u := &model.User{
		ID:       uid,
		Name:     name,
		Email:    canonicalEmail(email),
		PwdHash:  pkgcrypto.HashPassword([]byte(password), salt),
		SaltAuth: salt,
		Role:     role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return model.Session{}, model.Claims{}, err
	}

	claims := model.Claims{UserID: u.ID, Email: u.Email, Role: u.Role}
	sess, err := s.tokens.Issue(claims)
	if err != nil {
		return model.Session{}, model.Claims{}, err
	}
	return sess, claims, nil
}

// Login authenticates with rate limiting by (email, ip). Unknown email and
// wrong password collapse to the same ErrUnauthorized so callers cannot
// enumerate accounts.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (model.Session, model.Claims, error) {
	if email == "" || password == "" {
		return model.Session{}, model.Claims{}, fmt.Errorf("%w: email and password are required", errs.ErrValidation)
	}
	email = canonicalEmail(email)
	ipHash := limiter.HashIP(clientIP(ip))

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Session{}, model.Claims{}, err
	}
	if !allowed {
		return model.Session{}, model.Claims{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Session{}, model.Claims{}, errs.ErrRateLimited
		}
		// lookup errors and wrong passwords are indistinguishable here
		return model.Session{}, model.Claims{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	claims := model.Claims{UserID: u.ID, Email: u.Email, Role: u.Role}
	sess, err := s.tokens.Issue(claims)
	if err != nil {
		return model.Session{}, model.Claims{}, err
	}
	return sess, claims, nil
}
