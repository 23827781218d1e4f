package models

import "time"

// DeviceModel represents the database persistence model for devices.
type DeviceModel struct {
	ID         uint      `gorm:"primarykey"`
	DeviceUUID string    `gorm:"column:device_uuid;size:255;not null;uniqueIndex:idx_devices_uuid_platform"`
	Platform   string    `gorm:"size:64;not null;uniqueIndex:idx_devices_uuid_platform"`
	Type       string    `gorm:"size:64;not null"`
	Name       string    `gorm:"size:255;not null"`
	OS         string    `gorm:"column:os;size:64;not null"`
	OSVersion  string    `gorm:"column:os_version;size:64;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	ModifiedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (DeviceModel) TableName() string {
	return "devices"
}
