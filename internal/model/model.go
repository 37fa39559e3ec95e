// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleInvestor Role = "investor"
	RoleAnalyst  Role = "analyst"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleInvestor, RoleAnalyst, RoleAdmin:
		return true
	}
	return false
}

// User represents an account. The password is stored only as an
// Argon2id hash with a per-user salt.
type User struct {
	ID        uuid.UUID // PK
	Name      string
	Email     string // unique, stored lowercased
	PwdHash   []byte // Argon2id(password, SaltAuth)
	SaltAuth  []byte // per-user auth salt
	Role      Role
	CreatedAt time.Time
}

// Claims is the identity payload embedded in an access token.
// Role is fixed for the token's lifetime even if the stored role changes.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// Session is an issued access token together with its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Portfolio is a per-user set of tracked ticker symbols, keyed by the
// owner's email. Symbols carries no duplicates.
type Portfolio struct {
	OwnerEmail string
	Symbols    []string
}

// Quote is the latest known price for a symbol.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// PricePoint is one day of closing-price history.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Recommendation is a one-word trading signal for a quoted symbol.
type Recommendation struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Signal string  `json:"recommendation"`
}
