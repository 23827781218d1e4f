package usecases

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"deviceauth/internal/domain/authorization"
	"deviceauth/internal/domain/device"
	"deviceauth/internal/domain/operator"
	"deviceauth/internal/shared/biztime"
	"deviceauth/internal/shared/errors"
	"deviceauth/internal/shared/logger"
)

type RefreshAccessCommand struct {
	AccessToken  string
	RefreshToken string
}

type RefreshAccessResult struct {
	Authorization *authorization.Authorization
}

// RefreshAccessUseCase rotates a token pair. The outgoing pair is parked in
// the previous-generation slots so a client that never sees the response can
// still chain one more refresh from the tokens it holds.
type RefreshAccessUseCase struct {
	operatorDir        operator.Directory
	deviceRepo         device.Repository
	authRepo           authorization.Repository
	tokenIssuer        TokenIssuer
	txManager          TransactionManager
	minRefreshInterval time.Duration
	logger             logger.Interface
}

func NewRefreshAccessUseCase(
	operatorDir operator.Directory,
	deviceRepo device.Repository,
	authRepo authorization.Repository,
	tokenIssuer TokenIssuer,
	txManager TransactionManager,
	minRefreshInterval time.Duration,
	logger logger.Interface,
) *RefreshAccessUseCase {
	return &RefreshAccessUseCase{
		operatorDir:        operatorDir,
		deviceRepo:         deviceRepo,
		authRepo:           authRepo,
		tokenIssuer:        tokenIssuer,
		txManager:          txManager,
		minRefreshInterval: minRefreshInterval,
		logger:             logger,
	}
}

func (uc *RefreshAccessUseCase) Execute(ctx context.Context, cmd RefreshAccessCommand) (*RefreshAccessResult, error) {
	var result *RefreshAccessResult
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		res, err := uc.refresh(txCtx, cmd)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *RefreshAccessUseCase) refresh(ctx context.Context, cmd RefreshAccessCommand) (*RefreshAccessResult, error) {
	now := biztime.NowUTC()

	auth, err := uc.authRepo.GetByAccessToken(ctx, cmd.AccessToken)
	chainFromPrevious := false
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to look up authorization", "error", err)
			return nil, fmt.Errorf("failed to look up authorization: %w", err)
		}

		auth, err = uc.authRepo.GetByPreviousAccessToken(ctx, cmd.AccessToken)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return nil, errors.NewInvalidAccessTokenError()
			}
			uc.logger.Errorw("failed to look up authorization by previous token", "error", err)
			return nil, fmt.Errorf("failed to look up authorization: %w", err)
		}

		// Rotation already happened and the new pair is still live: the
		// caller is retrying with a stale token, so re-deliver as-is.
		if !auth.IsAccessExpired(now) {
			return &RefreshAccessResult{Authorization: auth}, nil
		}

		// Both generations expired; the refresh must chain from the previous
		// refresh token the client actually holds. Only one grace generation
		// exists, so an empty slot fails closed.
		chainFromPrevious = true
	}

	expectedRefresh := auth.RefreshToken
	if chainFromPrevious {
		expectedRefresh = auth.PreviousRefreshToken
	}
	if expectedRefresh == "" ||
		subtle.ConstantTimeCompare([]byte(cmd.RefreshToken), []byte(expectedRefresh)) != 1 {
		return nil, errors.NewInvalidRefreshTokenError()
	}

	if auth.IsRefreshExpired(now) {
		return nil, errors.NewExpiredRefreshTokenError()
	}

	// Parallel retries inside the interval are one logical refresh; hand
	// back the pair the winning call installed.
	if !chainFromPrevious && auth.WithinRefreshInterval(now, uc.minRefreshInterval) {
		return &RefreshAccessResult{Authorization: auth}, nil
	}

	op, err := uc.operatorDir.GetByID(ctx, auth.OperatorID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Errorw("authorization references missing operator",
				"authorization_id", auth.ID, "operator_id", auth.OperatorID)
			return nil, errors.NewInvalidOperatorError()
		}
		return nil, fmt.Errorf("failed to look up operator: %w", err)
	}

	dev, err := uc.deviceRepo.GetByID(ctx, auth.DeviceID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Errorw("authorization references missing device",
				"authorization_id", auth.ID, "device_id", auth.DeviceID)
			return nil, errors.NewInvalidDeviceError()
		}
		return nil, fmt.Errorf("failed to look up device: %w", err)
	}

	// Guard for the conditional update: the access token the stored row
	// carried when we read it.
	guard := auth.AccessToken

	if chainFromPrevious {
		// The client never saw the current pair; demote the refresh token it
		// still holds so the grace slots line up with reality.
		auth.RefreshToken = auth.PreviousRefreshToken
	}

	accessToken := uc.tokenIssuer.AccessToken(op.Login, now)
	refreshToken := uc.tokenIssuer.RefreshToken(dev.UUID, now)
	auth.Rotate(
		accessToken.Value, accessToken.CreatedAt, accessToken.ExpiresAt,
		refreshToken.Value, refreshToken.CreatedAt, refreshToken.ExpiresAt,
	)

	if err := uc.authRepo.UpdateIfAccessToken(ctx, auth, guard); err != nil {
		if errors.IsConflictError(err) {
			// A concurrent refresh rotated first; return the winner's pair.
			winner, werr := uc.authRepo.GetByPreviousAccessToken(ctx, guard)
			if werr != nil {
				uc.logger.Errorw("lost refresh race and winner not found", "error", werr)
				return nil, errors.NewInvalidAccessTokenError()
			}
			return &RefreshAccessResult{Authorization: winner}, nil
		}
		uc.logger.Errorw("failed to persist rotation", "error", err)
		return nil, fmt.Errorf("failed to persist rotation: %w", err)
	}

	uc.logger.Infow("token pair rotated",
		"authorization_id", auth.ID,
		"operator_id", op.ID,
		"device_id", dev.ID)

	return &RefreshAccessResult{Authorization: auth}, nil
}
