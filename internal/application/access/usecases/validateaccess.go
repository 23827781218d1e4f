package usecases

import (
	"context"
	"fmt"

	"deviceauth/internal/domain/authorization"
	"deviceauth/internal/shared/biztime"
	"deviceauth/internal/shared/errors"
	"deviceauth/internal/shared/logger"
)

type ValidateAccessCommand struct {
	AccessToken string
}

type ValidateAccessResult struct {
	Authorization *authorization.Authorization
}

// ValidateAccessUseCase checks whether an access token is currently valid.
// No rotation happens here, but a successful check acknowledges a pending
// rotation: once the client uses the new token the previous generation is
// retired.
type ValidateAccessUseCase struct {
	authRepo authorization.Repository
	logger   logger.Interface
}

func NewValidateAccessUseCase(
	authRepo authorization.Repository,
	logger logger.Interface,
) *ValidateAccessUseCase {
	return &ValidateAccessUseCase{
		authRepo: authRepo,
		logger:   logger,
	}
}

func (uc *ValidateAccessUseCase) Execute(ctx context.Context, cmd ValidateAccessCommand) (*ValidateAccessResult, error) {
	auth, err := uc.authRepo.GetByAccessToken(ctx, cmd.AccessToken)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to look up authorization", "error", err)
			return nil, fmt.Errorf("failed to look up authorization: %w", err)
		}

		// The token may be the previous generation of a rotated pair; tell
		// the caller to switch rather than just rejecting.
		if _, prevErr := uc.authRepo.GetByPreviousAccessToken(ctx, cmd.AccessToken); prevErr == nil {
			return nil, errors.NewTokenSupersededError()
		} else if !errors.IsNotFoundError(prevErr) {
			uc.logger.Errorw("failed to look up authorization by previous token", "error", prevErr)
			return nil, fmt.Errorf("failed to look up authorization: %w", prevErr)
		}

		return nil, errors.NewInvalidAccessTokenError()
	}

	now := biztime.NowUTC()
	if auth.IsAccessExpired(now) {
		return nil, errors.NewExpiredAccessTokenError()
	}

	// Client presented the rotated token, so it has received the new pair;
	// retire the grace window. Best effort: a concurrent rotation wins and
	// the acknowledgment is dropped.
	if auth.AcknowledgeRotation() {
		if err := uc.authRepo.UpdateIfAccessToken(ctx, auth, auth.AccessToken); err != nil {
			if errors.IsConflictError(err) {
				uc.logger.Debugw("rotation acknowledgment lost to concurrent update",
					"authorization_id", auth.ID)
			} else {
				uc.logger.Errorw("failed to acknowledge rotation", "error", err)
			}
		}
	}

	return &ValidateAccessResult{Authorization: auth}, nil
}
