package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"deviceauth/internal/domain/authorization"
	"deviceauth/internal/infrastructure/persistence/mappers"
	"deviceauth/internal/infrastructure/persistence/models"
	"deviceauth/internal/shared/db"
	"deviceauth/internal/shared/errors"
)

type AuthorizationRepository struct {
	db     *gorm.DB
	mapper mappers.AuthorizationMapper
}

func NewAuthorizationRepository(gormDB *gorm.DB) authorization.Repository {
	return &AuthorizationRepository{
		db:     gormDB,
		mapper: mappers.NewAuthorizationMapper(),
	}
}

func (r *AuthorizationRepository) Create(ctx context.Context, a *authorization.Authorization) error {
	model := r.mapper.ToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create authorization: %w", err)
	}
	a.ID = model.ID
	return nil
}

func (r *AuthorizationRepository) GetByAccessToken(ctx context.Context, token string) (*authorization.Authorization, error) {
	var model models.AuthorizationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("access_token = ?", token).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("authorization not found")
		}
		return nil, fmt.Errorf("failed to get authorization by access token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *AuthorizationRepository) GetByPreviousAccessToken(ctx context.Context, token string) (*authorization.Authorization, error) {
	var model models.AuthorizationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("previous_access_token = ?", token).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("authorization not found")
		}
		return nil, fmt.Errorf("failed to get authorization by previous access token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *AuthorizationRepository) ListByDevice(ctx context.Context, deviceID uint) ([]*authorization.Authorization, error) {
	var authModels []models.AuthorizationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("device_id = ?", deviceID).
		Order("created_at DESC").
		Find(&authModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list authorizations by device: %w", err)
	}

	auths := make([]*authorization.Authorization, len(authModels))
	for i := range authModels {
		auths[i] = r.mapper.ToDomain(&authModels[i])
	}
	return auths, nil
}

func (r *AuthorizationRepository) Update(ctx context.Context, a *authorization.Authorization) error {
	if a.ID == 0 {
		return errors.NewPreconditionFailedError("authorization has no ID")
	}
	model := r.mapper.ToModel(a)
	// Save skips NULL-ing cleared previous tokens; use a full-column update
	// so AcknowledgeRotation actually clears them.
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AuthorizationModel{}).
		Where("id = ?", a.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update authorization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("authorization not found")
	}
	return nil
}

// UpdateIfAccessToken persists the record only while the stored row still
// carries currentToken as its access token. A concurrent rotation that won
// the race leaves zero rows affected, reported as a conflict.
func (r *AuthorizationRepository) UpdateIfAccessToken(ctx context.Context, a *authorization.Authorization, currentToken string) error {
	if a.ID == 0 {
		return errors.NewPreconditionFailedError("authorization has no ID")
	}
	model := r.mapper.ToModel(a)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AuthorizationModel{}).
		Where("id = ? AND access_token = ?", a.ID, currentToken).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update authorization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("authorization was modified concurrently")
	}
	return nil
}

func (r *AuthorizationRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.NewPreconditionFailedError("authorization has no ID")
	}
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.AuthorizationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete authorization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("authorization not found")
	}
	return nil
}

func (r *AuthorizationRepository) DeleteByDevice(ctx context.Context, deviceID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("device_id = ?", deviceID).
		Delete(&models.AuthorizationModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete authorizations by device: %w", err)
	}
	return nil
}
