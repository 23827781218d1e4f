package models

import "time"

// OperatorModel represents the database persistence model for operators.
// Accounts are provisioned out of band; this service only reads them.
type OperatorModel struct {
	ID           uint      `gorm:"primarykey"`
	Login        string    `gorm:"size:64;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Name         string    `gorm:"size:255"`
	Disabled     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (OperatorModel) TableName() string {
	return "operators"
}
