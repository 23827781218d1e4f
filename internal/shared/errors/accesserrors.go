package errors

import (
	stderrors "errors"
	"net/http"
)

// Access-control error types. These are the stable machine-readable codes
// the token protocol reports to callers; transports map them to status codes
// but must pass the type through verbatim.
const (
	ErrorTypeBadCredentials      ErrorType = "bad_username_or_password"
	ErrorTypeInvalidAccessToken  ErrorType = "invalid_access_token"
	ErrorTypeExpiredAccessToken  ErrorType = "expired_access_token"
	ErrorTypeInvalidRefreshToken ErrorType = "invalid_refresh_token"
	ErrorTypeExpiredRefreshToken ErrorType = "expired_refresh_token"
	ErrorTypeNewTokenGenerated   ErrorType = "new_token_generated"
	ErrorTypeInvalidDevice       ErrorType = "invalid_device"
)

// Detail kinds for internal errors raised by the access manager. These mark
// server-side failures (referential corruption, persistence trouble) as
// opposed to anything the client can correct.
const (
	InternalDetailUnknown         = "unknown"
	InternalDetailInvalidOperator = "invalid_operator"
	InternalDetailInvalidDevice   = "invalid_device"
)

// AccessError represents an access-denied error with security context.
type AccessError struct {
	*AppError
	// ShouldLog determines if this error should be logged at error level.
	// Expired tokens and stale-token notices are routine and stay quiet.
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AccessError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AccessError) Unwrap() error {
	return e.AppError
}

// NewBadCredentialsError covers every credential rejection: unknown login,
// wrong password, and disabled account. The message deliberately does not
// reveal which of the three it was.
func NewBadCredentialsError() *AccessError {
	return &AccessError{
		AppError: &AppError{
			Type:    ErrorTypeBadCredentials,
			Message: "Invalid username or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true, // track for brute force detection
	}
}

// NewInvalidAccessTokenError creates an error for access tokens with no
// matching authorization record.
func NewInvalidAccessTokenError() *AccessError {
	return &AccessError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidAccessToken,
			Message: "Invalid access token",
			Code:    http.StatusUnauthorized,
			Details: "Token is invalid or has been revoked",
		},
		ShouldLog:     true, // may indicate probing
		SecurityEvent: true,
	}
}

// NewExpiredAccessTokenError creates an error for expired access tokens.
func NewExpiredAccessTokenError() *AccessError {
	return &AccessError{
		AppError: &AppError{
			Type:    ErrorTypeExpiredAccessToken,
			Message: "Access token has expired",
			Code:    http.StatusUnauthorized,
			Details: "Refresh the token pair to continue",
		},
		ShouldLog:     false, // normal expiration
		SecurityEvent: false,
	}
}

// NewInvalidRefreshTokenError creates an error for refresh tokens that do
// not match the authorization they were presented against.
func NewInvalidRefreshTokenError() *AccessError {
	return &AccessError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidRefreshToken,
			Message: "Invalid refresh token",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewExpiredRefreshTokenError creates an error for expired refresh tokens.
// The holder must log in again.
func NewExpiredRefreshTokenError() *AccessError {
	return &AccessError{
		AppError: &AppError{
			Type:    ErrorTypeExpiredRefreshToken,
			Message: "Refresh token has expired",
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewTokenSupersededError signals that the presented access token was
// recently rotated away and the caller must switch to the new pair.
func NewTokenSupersededError() *AccessError {
	return &AccessError{
		AppError: &AppError{
			Type:    ErrorTypeNewTokenGenerated,
			Message: "A new token has been generated",
			Code:    http.StatusUnauthorized,
			Details: "Use the token pair from the latest refresh",
		},
		ShouldLog:     false, // expected during grace window
		SecurityEvent: false,
	}
}

// NewDeviceMismatchError rejects a revocation attempt whose device uuid does
// not match the device bound to the authorization.
func NewDeviceMismatchError() *AccessError {
	return &AccessError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidDevice,
			Message: "Invalid device",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     true, // one device touching another's session
		SecurityEvent: true,
	}
}

// NewInvalidOperatorError marks referential corruption: an authorization
// points at an operator that no longer exists.
func NewInvalidOperatorError() *AppError {
	return NewInternalError("Invalid operator", InternalDetailInvalidOperator)
}

// NewInvalidDeviceError marks referential corruption: an authorization
// points at a device that no longer exists.
func NewInvalidDeviceError() *AppError {
	return NewInternalError("Invalid device", InternalDetailInvalidDevice)
}

// NewUnknownIssuanceError reports that issuance silently produced no
// authorization without a classified failure.
func NewUnknownIssuanceError() *AppError {
	return NewInternalError("Unknown error", InternalDetailUnknown)
}

// IsAccessError checks if the error is an AccessError (supports wrapped errors via errors.As)
func IsAccessError(err error) bool {
	var accessErr *AccessError
	return stderrors.As(err, &accessErr)
}

// GetAccessError extracts AccessError from error chain (supports wrapped errors via errors.As)
func GetAccessError(err error) *AccessError {
	var accessErr *AccessError
	if stderrors.As(err, &accessErr) {
		return accessErr
	}
	return nil
}

// ShouldLogAccessError returns true if the access error should be logged at
// error level. This keeps expected denials out of the error stream.
func ShouldLogAccessError(err error) bool {
	if accessErr := GetAccessError(err); accessErr != nil {
		return accessErr.ShouldLog
	}
	return true
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if accessErr := GetAccessError(err); accessErr != nil {
		return accessErr.SecurityEvent
	}
	return false
}
