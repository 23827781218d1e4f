// Package operator defines the operator account read model. Operator
// accounts are provisioned out of band; this service only authenticates
// against them.
package operator

import (
	"context"
	"time"
)

// Operator is a human account that can hold device authorizations.
type Operator struct {
	ID           uint
	Login        string
	PasswordHash string
	Name         string
	Disabled     bool
	CreatedAt    time.Time
}

// Directory provides read access to operator accounts.
type Directory interface {
	GetByLogin(ctx context.Context, login string) (*Operator, error)
	GetByID(ctx context.Context, id uint) (*Operator, error)
}

// PasswordHasher abstracts credential verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}
