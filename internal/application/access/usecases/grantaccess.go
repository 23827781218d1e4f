package usecases

import (
	"context"
	"fmt"

	"deviceauth/internal/domain/authorization"
	"deviceauth/internal/domain/device"
	"deviceauth/internal/domain/operator"
	"deviceauth/internal/shared/biztime"
	"deviceauth/internal/shared/errors"
	"deviceauth/internal/shared/logger"
)

type GrantAccessCommand struct {
	Username   string
	Password   string
	ClientID   string
	DeviceUUID string
	Platform   string
	DeviceType string
	DeviceName string
	OS         string
	OSVersion  string
}

type GrantAccessResult struct {
	Authorization *authorization.Authorization
	Device        *device.Device
}

// GrantAccessUseCase authenticates an operator and issues a fresh token pair
// bound to their device. A second login from the same device revokes the
// first; one device holds at most one live authorization.
type GrantAccessUseCase struct {
	operatorDir    operator.Directory
	passwordHasher operator.PasswordHasher
	deviceRepo     device.Repository
	authRepo       authorization.Repository
	tokenIssuer    TokenIssuer
	txManager      TransactionManager
	logger         logger.Interface
}

func NewGrantAccessUseCase(
	operatorDir operator.Directory,
	passwordHasher operator.PasswordHasher,
	deviceRepo device.Repository,
	authRepo authorization.Repository,
	tokenIssuer TokenIssuer,
	txManager TransactionManager,
	logger logger.Interface,
) *GrantAccessUseCase {
	return &GrantAccessUseCase{
		operatorDir:    operatorDir,
		passwordHasher: passwordHasher,
		deviceRepo:     deviceRepo,
		authRepo:       authRepo,
		tokenIssuer:    tokenIssuer,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *GrantAccessUseCase) Execute(ctx context.Context, cmd GrantAccessCommand) (*GrantAccessResult, error) {
	op, err := uc.operatorDir.GetByLogin(ctx, cmd.Username)
	if err != nil {
		if errors.IsNotFoundError(err) {
			// Generic rejection; do not reveal whether the login exists
			return nil, errors.NewBadCredentialsError()
		}
		uc.logger.Errorw("failed to look up operator", "error", err)
		return nil, fmt.Errorf("failed to look up operator: %w", err)
	}

	if op.Disabled {
		return nil, errors.NewBadCredentialsError()
	}

	if err := uc.passwordHasher.Verify(cmd.Password, op.PasswordHash); err != nil {
		return nil, errors.NewBadCredentialsError()
	}

	var result *GrantAccessResult
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		dev, existed, err := uc.resolveDevice(txCtx, cmd)
		if err != nil {
			return err
		}

		if existed {
			// Single live authorization per device: a second login from the
			// same device revokes whatever came before.
			if err := uc.authRepo.DeleteByDevice(txCtx, dev.ID); err != nil {
				return fmt.Errorf("failed to revoke prior authorizations: %w", err)
			}
		}

		now := biztime.NowUTC()
		accessToken := uc.tokenIssuer.AccessToken(op.Login, now)
		refreshToken := uc.tokenIssuer.RefreshToken(dev.UUID, now)

		auth, err := authorization.New(
			accessToken.Value, accessToken.CreatedAt, accessToken.ExpiresAt,
			refreshToken.Value, refreshToken.CreatedAt, refreshToken.ExpiresAt,
			op.ID, dev.ID, cmd.ClientID,
		)
		if err != nil {
			return err
		}

		if err := uc.authRepo.Create(txCtx, auth); err != nil {
			uc.logger.Errorw("failed to persist authorization", "error", err)
			return errors.NewUnknownIssuanceError()
		}

		result = &GrantAccessResult{Authorization: auth, Device: dev}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("access granted",
		"operator_id", op.ID,
		"device_id", result.Device.ID,
		"client_id", cmd.ClientID)

	return result, nil
}

// resolveDevice finds the device for (uuid, platform) or registers a new
// one. Known devices get their OS fields refreshed from the request.
func (uc *GrantAccessUseCase) resolveDevice(ctx context.Context, cmd GrantAccessCommand) (*device.Device, bool, error) {
	dev, err := uc.deviceRepo.GetByUUID(ctx, cmd.DeviceUUID, cmd.Platform)
	if err == nil {
		if dev.UpdateOS(cmd.OS, cmd.OSVersion) {
			if err := uc.deviceRepo.Update(ctx, dev); err != nil {
				return nil, false, fmt.Errorf("failed to update device: %w", err)
			}
		}
		return dev, true, nil
	}
	if !errors.IsNotFoundError(err) {
		return nil, false, fmt.Errorf("failed to look up device: %w", err)
	}

	dev, err = device.New(cmd.DeviceUUID, cmd.Platform, cmd.DeviceType, cmd.DeviceName, cmd.OS, cmd.OSVersion)
	if err != nil {
		return nil, false, err
	}
	if err := uc.deviceRepo.Create(ctx, dev); err != nil {
		uc.logger.Errorw("failed to register device", "error", err)
		return nil, false, errors.NewInternalError("Failed to register device", errors.InternalDetailUnknown)
	}
	return dev, false, nil
}
