package models

import "time"

// AuthorizationModel represents the database persistence model for
// authorization records. Previous token columns are nullable; NULL maps to
// the unset state in the domain entity. The unique index on device_id
// enforces the single-live-authorization-per-device invariant at the
// storage layer.
type AuthorizationModel struct {
	ID         uint   `gorm:"primarykey"`
	OperatorID uint   `gorm:"not null;index"`
	DeviceID   uint   `gorm:"not null;uniqueIndex"`
	ClientID   string `gorm:"size:255"`

	AccessToken     string    `gorm:"size:512;not null;uniqueIndex"`
	AccessCreatedAt time.Time `gorm:"not null"`
	AccessExpiresAt time.Time `gorm:"not null;index"`

	RefreshToken     string    `gorm:"size:512;not null;index"`
	RefreshCreatedAt time.Time `gorm:"not null"`
	RefreshExpiresAt time.Time `gorm:"not null"`

	PreviousAccessToken  *string `gorm:"size:512;index"`
	PreviousRefreshToken *string `gorm:"size:512"`

	CreatedAt  time.Time `gorm:"not null"`
	ModifiedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AuthorizationModel) TableName() string {
	return "authorizations"
}
