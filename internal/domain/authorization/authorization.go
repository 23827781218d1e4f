// Package authorization contains the authorization record entity, the unit
// of access control binding an operator and a device to a token pair.
package authorization

import (
	"context"
	"time"

	"deviceauth/internal/shared/errors"
)

// Authorization represents one operator/device grant and its current token
// pair. Previous token fields hold the prior generation during the refresh
// grace window; empty string means unset.
type Authorization struct {
	ID         uint
	OperatorID uint
	DeviceID   uint
	ClientID   string

	AccessToken     string
	AccessCreatedAt time.Time
	AccessExpiresAt time.Time

	RefreshToken     string
	RefreshCreatedAt time.Time
	RefreshExpiresAt time.Time

	PreviousAccessToken  string
	PreviousRefreshToken string

	CreatedAt  time.Time
	ModifiedAt time.Time
}

// New creates an authorization record for a fresh grant.
func New(
	accessToken string, accessCreated, accessExpires time.Time,
	refreshToken string, refreshCreated, refreshExpires time.Time,
	operatorID, deviceID uint, clientID string,
) (*Authorization, error) {
	if accessToken == "" {
		return nil, errors.NewValidationError("access token is required")
	}
	if refreshToken == "" {
		return nil, errors.NewValidationError("refresh token is required")
	}
	if operatorID == 0 {
		return nil, errors.NewValidationError("operator id is required")
	}
	if deviceID == 0 {
		return nil, errors.NewValidationError("device id is required")
	}

	now := time.Now().UTC()
	return &Authorization{
		OperatorID:       operatorID,
		DeviceID:         deviceID,
		ClientID:         clientID,
		AccessToken:      accessToken,
		AccessCreatedAt:  accessCreated,
		AccessExpiresAt:  accessExpires,
		RefreshToken:     refreshToken,
		RefreshCreatedAt: refreshCreated,
		RefreshExpiresAt: refreshExpires,
		CreatedAt:        now,
		ModifiedAt:       now,
	}, nil
}

// IsAccessExpired reports whether the access token has expired at the given
// instant. A token expiring exactly now is still valid.
func (a *Authorization) IsAccessExpired(now time.Time) bool {
	return now.After(a.AccessExpiresAt)
}

// IsRefreshExpired reports whether the refresh token has expired at the
// given instant.
func (a *Authorization) IsRefreshExpired(now time.Time) bool {
	return now.After(a.RefreshExpiresAt)
}

// WithinRefreshInterval reports whether the current access token was minted
// recently enough that a repeated refresh should replay the stored pair
// instead of rotating again.
func (a *Authorization) WithinRefreshInterval(now time.Time, min time.Duration) bool {
	return now.Sub(a.AccessCreatedAt) <= min
}

// Rotate installs a new token pair, demoting the current pair to the
// previous-generation slots for the grace window.
func (a *Authorization) Rotate(
	accessToken string, accessCreated, accessExpires time.Time,
	refreshToken string, refreshCreated, refreshExpires time.Time,
) {
	a.PreviousAccessToken = a.AccessToken
	a.PreviousRefreshToken = a.RefreshToken

	a.AccessToken = accessToken
	a.AccessCreatedAt = accessCreated
	a.AccessExpiresAt = accessExpires
	a.RefreshToken = refreshToken
	a.RefreshCreatedAt = refreshCreated
	a.RefreshExpiresAt = refreshExpires
	a.ModifiedAt = time.Now().UTC()
}

// AcknowledgeRotation clears the previous-generation tokens once the client
// has proven receipt of the new pair. Returns true when anything was cleared.
func (a *Authorization) AcknowledgeRotation() bool {
	if a.PreviousAccessToken == "" && a.PreviousRefreshToken == "" {
		return false
	}
	a.PreviousAccessToken = ""
	a.PreviousRefreshToken = ""
	a.ModifiedAt = time.Now().UTC()
	return true
}

// Repository defines persistence operations for authorization records.
type Repository interface {
	Create(ctx context.Context, a *Authorization) error
	GetByAccessToken(ctx context.Context, token string) (*Authorization, error)
	// GetByPreviousAccessToken finds the record whose prior-generation
	// access token matches, used to serve duplicate refresh requests.
	GetByPreviousAccessToken(ctx context.Context, token string) (*Authorization, error)
	ListByDevice(ctx context.Context, deviceID uint) ([]*Authorization, error)
	Update(ctx context.Context, a *Authorization) error
	// UpdateIfAccessToken persists the record only while its stored access
	// token still equals currentToken, guarding concurrent rotations.
	UpdateIfAccessToken(ctx context.Context, a *Authorization, currentToken string) error
	Delete(ctx context.Context, id uint) error
	DeleteByDevice(ctx context.Context, deviceID uint) error
}
