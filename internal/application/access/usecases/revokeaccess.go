package usecases

import (
	"context"
	"fmt"

	"deviceauth/internal/domain/authorization"
	"deviceauth/internal/domain/device"
	"deviceauth/internal/shared/errors"
	"deviceauth/internal/shared/logger"
)

type RevokeAccessCommand struct {
	AccessToken string
	DeviceUUID  string
}

// RevokeAccessUseCase tears an authorization down. Devices and
// authorizations pair 1:1, so revoking access also forgets the device
// registration.
type RevokeAccessUseCase struct {
	deviceRepo device.Repository
	authRepo   authorization.Repository
	txManager  TransactionManager
	logger     logger.Interface
}

func NewRevokeAccessUseCase(
	deviceRepo device.Repository,
	authRepo authorization.Repository,
	txManager TransactionManager,
	logger logger.Interface,
) *RevokeAccessUseCase {
	return &RevokeAccessUseCase{
		deviceRepo: deviceRepo,
		authRepo:   authRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *RevokeAccessUseCase) Execute(ctx context.Context, cmd RevokeAccessCommand) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		auth, err := uc.authRepo.GetByAccessToken(txCtx, cmd.AccessToken)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return errors.NewInvalidAccessTokenError()
			}
			uc.logger.Errorw("failed to look up authorization", "error", err)
			return fmt.Errorf("failed to look up authorization: %w", err)
		}

		dev, err := uc.deviceRepo.GetByID(txCtx, auth.DeviceID)
		if err != nil {
			if errors.IsNotFoundError(err) {
				uc.logger.Errorw("authorization references missing device",
					"authorization_id", auth.ID, "device_id", auth.DeviceID)
				return errors.NewInvalidDeviceError()
			}
			return fmt.Errorf("failed to look up device: %w", err)
		}

		// A valid token alone must not let one device revoke another's
		// session; the caller has to name the device it claims to be.
		if dev.UUID != cmd.DeviceUUID {
			return errors.NewDeviceMismatchError()
		}

		if err := uc.authRepo.Delete(txCtx, auth.ID); err != nil {
			uc.logger.Errorw("failed to delete authorization", "error", err)
			return fmt.Errorf("failed to delete authorization: %w", err)
		}
		if err := uc.deviceRepo.Delete(txCtx, dev.ID); err != nil {
			uc.logger.Errorw("failed to delete device", "error", err)
			return fmt.Errorf("failed to delete device: %w", err)
		}

		uc.logger.Infow("access revoked",
			"authorization_id", auth.ID,
			"device_id", dev.ID)

		return nil
	})
}
