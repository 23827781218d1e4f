package mappers

import (
	"deviceauth/internal/domain/authorization"
	"deviceauth/internal/infrastructure/persistence/models"
)

// AuthorizationMapper handles the conversion between Authorization domain
// entities and persistence models. Unset previous tokens are stored as NULL
// rather than empty strings so partial indexes stay small.
type AuthorizationMapper interface {
	// ToModel converts a domain entity to a persistence model.
	ToModel(entity *authorization.Authorization) *models.AuthorizationModel

	// ToDomain converts a persistence model to a domain entity.
	ToDomain(model *models.AuthorizationModel) *authorization.Authorization
}

// AuthorizationMapperImpl is the concrete implementation of AuthorizationMapper.
type AuthorizationMapperImpl struct{}

// NewAuthorizationMapper creates a new AuthorizationMapper.
func NewAuthorizationMapper() AuthorizationMapper {
	return &AuthorizationMapperImpl{}
}

// ToModel converts a domain entity to a persistence model.
func (m *AuthorizationMapperImpl) ToModel(entity *authorization.Authorization) *models.AuthorizationModel {
	if entity == nil {
		return nil
	}
	return &models.AuthorizationModel{
		ID:                   entity.ID,
		OperatorID:           entity.OperatorID,
		DeviceID:             entity.DeviceID,
		ClientID:             entity.ClientID,
		AccessToken:          entity.AccessToken,
		AccessCreatedAt:      entity.AccessCreatedAt,
		AccessExpiresAt:      entity.AccessExpiresAt,
		RefreshToken:         entity.RefreshToken,
		RefreshCreatedAt:     entity.RefreshCreatedAt,
		RefreshExpiresAt:     entity.RefreshExpiresAt,
		PreviousAccessToken:  toNullable(entity.PreviousAccessToken),
		PreviousRefreshToken: toNullable(entity.PreviousRefreshToken),
		CreatedAt:            entity.CreatedAt,
		ModifiedAt:           entity.ModifiedAt,
	}
}

// ToDomain converts a persistence model to a domain entity.
func (m *AuthorizationMapperImpl) ToDomain(model *models.AuthorizationModel) *authorization.Authorization {
	if model == nil {
		return nil
	}
	return &authorization.Authorization{
		ID:                   model.ID,
		OperatorID:           model.OperatorID,
		DeviceID:             model.DeviceID,
		ClientID:             model.ClientID,
		AccessToken:          model.AccessToken,
		AccessCreatedAt:      model.AccessCreatedAt,
		AccessExpiresAt:      model.AccessExpiresAt,
		RefreshToken:         model.RefreshToken,
		RefreshCreatedAt:     model.RefreshCreatedAt,
		RefreshExpiresAt:     model.RefreshExpiresAt,
		PreviousAccessToken:  fromNullable(model.PreviousAccessToken),
		PreviousRefreshToken: fromNullable(model.PreviousRefreshToken),
		CreatedAt:            model.CreatedAt,
		ModifiedAt:           model.ModifiedAt,
	}
}

func toNullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
