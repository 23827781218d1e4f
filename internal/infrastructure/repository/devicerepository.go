package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"deviceauth/internal/domain/device"
	"deviceauth/internal/infrastructure/persistence/mappers"
	"deviceauth/internal/infrastructure/persistence/models"
	"deviceauth/internal/shared/db"
	"deviceauth/internal/shared/errors"
)

type DeviceRepository struct {
	db     *gorm.DB
	mapper mappers.DeviceMapper
}

func NewDeviceRepository(gormDB *gorm.DB) device.Repository {
	return &DeviceRepository{
		db:     gormDB,
		mapper: mappers.NewDeviceMapper(),
	}
}

func (r *DeviceRepository) Create(ctx context.Context, d *device.Device) error {
	model := r.mapper.ToModel(d)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	d.ID = model.ID
	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, id uint) (*device.Device, error) {
	var model models.DeviceModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("device not found")
		}
		return nil, fmt.Errorf("failed to get device by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *DeviceRepository) GetByUUID(ctx context.Context, uuid, platform string) (*device.Device, error) {
	var model models.DeviceModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("device_uuid = ? AND platform = ?", uuid, platform).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("device not found")
		}
		return nil, fmt.Errorf("failed to get device by UUID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *DeviceRepository) Update(ctx context.Context, d *device.Device) error {
	if d.ID == 0 {
		return errors.NewPreconditionFailedError("device has no ID")
	}
	model := r.mapper.ToModel(d)
	result := db.GetTxFromContext(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update device: %w", result.Error)
	}
	return nil
}

func (r *DeviceRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.NewPreconditionFailedError("device has no ID")
	}
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.DeviceModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete device: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("device not found")
	}
	return nil
}
