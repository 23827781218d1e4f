package mappers

import (
	"deviceauth/internal/domain/device"
	"deviceauth/internal/infrastructure/persistence/models"
)

// DeviceMapper handles the conversion between Device domain entities and persistence models.
type DeviceMapper interface {
	// ToModel converts a domain entity to a persistence model.
	ToModel(entity *device.Device) *models.DeviceModel

	// ToDomain converts a persistence model to a domain entity.
	ToDomain(model *models.DeviceModel) *device.Device
}

// DeviceMapperImpl is the concrete implementation of DeviceMapper.
type DeviceMapperImpl struct{}

// NewDeviceMapper creates a new DeviceMapper.
func NewDeviceMapper() DeviceMapper {
	return &DeviceMapperImpl{}
}

// ToModel converts a domain entity to a persistence model.
func (m *DeviceMapperImpl) ToModel(entity *device.Device) *models.DeviceModel {
	if entity == nil {
		return nil
	}
	return &models.DeviceModel{
		ID:         entity.ID,
		DeviceUUID: entity.UUID,
		Platform:   entity.Platform,
		Type:       entity.Type,
		Name:       entity.Name,
		OS:         entity.OS,
		OSVersion:  entity.OSVersion,
		CreatedAt:  entity.CreatedAt,
		ModifiedAt: entity.ModifiedAt,
	}
}

// ToDomain converts a persistence model to a domain entity.
func (m *DeviceMapperImpl) ToDomain(model *models.DeviceModel) *device.Device {
	if model == nil {
		return nil
	}
	return &device.Device{
		ID:         model.ID,
		UUID:       model.DeviceUUID,
		Platform:   model.Platform,
		Type:       model.Type,
		Name:       model.Name,
		OS:         model.OS,
		OSVersion:  model.OSVersion,
		CreatedAt:  model.CreatedAt,
		ModifiedAt: model.ModifiedAt,
	}
}
