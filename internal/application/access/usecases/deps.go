package usecases

import (
	"context"
	"time"
)

// IssuedToken is one freshly generated token with its lifecycle timestamps.
type IssuedToken struct {
	Value     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TokenIssuer generates opaque access and refresh tokens. The caller passes
// the issuance instant so both halves of a pair share one clock reading.
type TokenIssuer interface {
	AccessToken(seed string, now time.Time) IssuedToken
	RefreshToken(seed string, now time.Time) IssuedToken
}

// TransactionManager wraps a read-modify-write sequence in one storage
// transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
