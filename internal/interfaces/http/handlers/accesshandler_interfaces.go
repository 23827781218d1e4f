package handlers

import (
	"context"

	"deviceauth/internal/application/access/usecases"
)

// Use case interfaces for AccessHandler - enables unit testing with fakes.

type grantAccessUseCase interface {
	Execute(ctx context.Context, cmd usecases.GrantAccessCommand) (*usecases.GrantAccessResult, error)
}

type validateAccessUseCase interface {
	Execute(ctx context.Context, cmd usecases.ValidateAccessCommand) (*usecases.ValidateAccessResult, error)
}

type refreshAccessUseCase interface {
	Execute(ctx context.Context, cmd usecases.RefreshAccessCommand) (*usecases.RefreshAccessResult, error)
}

type revokeAccessUseCase interface {
	Execute(ctx context.Context, cmd usecases.RevokeAccessCommand) error
}
