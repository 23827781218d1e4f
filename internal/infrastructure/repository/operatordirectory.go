package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"deviceauth/internal/domain/operator"
	"deviceauth/internal/infrastructure/persistence/models"
	"deviceauth/internal/shared/db"
	"deviceauth/internal/shared/errors"
)

// OperatorDirectory is the read-only lookup over provisioned operator
// accounts. No mapper indirection; the model is flat enough to convert
// inline.
type OperatorDirectory struct {
	db *gorm.DB
}

func NewOperatorDirectory(gormDB *gorm.DB) operator.Directory {
	return &OperatorDirectory{db: gormDB}
}

func (r *OperatorDirectory) GetByLogin(ctx context.Context, login string) (*operator.Operator, error) {
	var model models.OperatorModel
	err := db.GetTxFromContext(ctx, r.db).Where("login = ?", login).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("operator not found")
		}
		return nil, fmt.Errorf("failed to get operator by login: %w", err)
	}
	return toOperator(&model), nil
}

func (r *OperatorDirectory) GetByID(ctx context.Context, id uint) (*operator.Operator, error) {
	var model models.OperatorModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("operator not found")
		}
		return nil, fmt.Errorf("failed to get operator by ID: %w", err)
	}
	return toOperator(&model), nil
}

func toOperator(model *models.OperatorModel) *operator.Operator {
	return &operator.Operator{
		ID:           model.ID,
		Login:        model.Login,
		PasswordHash: model.PasswordHash,
		Name:         model.Name,
		Disabled:     model.Disabled,
		CreatedAt:    model.CreatedAt,
	}
}
