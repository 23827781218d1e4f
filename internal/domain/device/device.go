// Package device contains the device entity and repository contract.
// A device is a client installation identified by a caller-supplied UUID
// plus the platform it runs on.
package device

import (
	"context"
	"time"

	"deviceauth/internal/shared/errors"
)

// Device represents a registered client device.
type Device struct {
	ID         uint
	UUID       string
	Platform   string
	Type       string
	Name       string
	OS         string
	OSVersion  string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// New creates a device after validating the descriptive fields. All six
// fields are required; the server never invents device identity.
func New(uuid, platform, deviceType, name, os, osVersion string) (*Device, error) {
	if uuid == "" {
		return nil, errors.NewValidationError("device uuid is required")
	}
	if platform == "" {
		return nil, errors.NewValidationError("platform is required")
	}
	if deviceType == "" {
		return nil, errors.NewValidationError("device type is required")
	}
	if name == "" {
		return nil, errors.NewValidationError("device name is required")
	}
	if os == "" {
		return nil, errors.NewValidationError("device os is required")
	}
	if osVersion == "" {
		return nil, errors.NewValidationError("device os version is required")
	}

	now := time.Now().UTC()
	return &Device{
		UUID:       uuid,
		Platform:   platform,
		Type:       deviceType,
		Name:       name,
		OS:         os,
		OSVersion:  osVersion,
		CreatedAt:  now,
		ModifiedAt: now,
	}, nil
}

// UpdateOS records a changed operating system version on a known device.
// Returns true when anything actually changed.
func (d *Device) UpdateOS(os, osVersion string) bool {
	changed := false
	if os != "" && os != d.OS {
		d.OS = os
		changed = true
	}
	if osVersion != "" && osVersion != d.OSVersion {
		d.OSVersion = osVersion
		changed = true
	}
	if changed {
		d.ModifiedAt = time.Now().UTC()
	}
	return changed
}

// Repository defines persistence operations for devices.
type Repository interface {
	Create(ctx context.Context, d *Device) error
	GetByID(ctx context.Context, id uint) (*Device, error)
	// GetByUUID looks a device up by its caller-supplied identity pair.
	GetByUUID(ctx context.Context, uuid, platform string) (*Device, error)
	Update(ctx context.Context, d *Device) error
	Delete(ctx context.Context, id uint) error
}
