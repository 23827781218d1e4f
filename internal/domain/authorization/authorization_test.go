package authorization

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthorization(t *testing.T, now time.Time) *Authorization {
	t.Helper()
	auth, err := New(
		"access-1", now, now.Add(time.Hour),
		"refresh-1", now, now.Add(30*24*time.Hour),
		1, 2, "client-a",
	)
	require.NoError(t, err)
	return auth
}

func TestNew(t *testing.T) {
	now := time.Now().UTC()

	t.Run("creates record without previous tokens", func(t *testing.T) {
		auth := newTestAuthorization(t, now)

		assert.Equal(t, "access-1", auth.AccessToken)
		assert.Equal(t, "refresh-1", auth.RefreshToken)
		assert.Equal(t, uint(1), auth.OperatorID)
		assert.Equal(t, uint(2), auth.DeviceID)
		assert.Equal(t, "client-a", auth.ClientID)
		assert.Empty(t, auth.PreviousAccessToken)
		assert.Empty(t, auth.PreviousRefreshToken)
	})

	t.Run("rejects empty tokens", func(t *testing.T) {
		_, err := New("", now, now, "refresh-1", now, now, 1, 2, "c")
		assert.Error(t, err)

		_, err = New("access-1", now, now, "", now, now, 1, 2, "c")
		assert.Error(t, err)
	})

	t.Run("rejects missing owner ids", func(t *testing.T) {
		_, err := New("a", now, now, "r", now, now, 0, 2, "c")
		assert.Error(t, err)

		_, err = New("a", now, now, "r", now, now, 1, 0, "c")
		assert.Error(t, err)
	})
}

func TestAuthorization_Expiry(t *testing.T) {
	now := time.Now().UTC()
	auth := newTestAuthorization(t, now)

	t.Run("valid before expiry", func(t *testing.T) {
		assert.False(t, auth.IsAccessExpired(now.Add(59*time.Minute)))
		assert.False(t, auth.IsRefreshExpired(now.Add(29*24*time.Hour)))
	})

	t.Run("valid at exact expiry instant", func(t *testing.T) {
		assert.False(t, auth.IsAccessExpired(auth.AccessExpiresAt))
		assert.False(t, auth.IsRefreshExpired(auth.RefreshExpiresAt))
	})

	t.Run("expired after expiry instant", func(t *testing.T) {
		assert.True(t, auth.IsAccessExpired(auth.AccessExpiresAt.Add(time.Second)))
		assert.True(t, auth.IsRefreshExpired(auth.RefreshExpiresAt.Add(time.Second)))
	})
}

func TestAuthorization_WithinRefreshInterval(t *testing.T) {
	now := time.Now().UTC()
	auth := newTestAuthorization(t, now)
	min := 30 * time.Second

	assert.True(t, auth.WithinRefreshInterval(now.Add(10*time.Second), min))
	assert.True(t, auth.WithinRefreshInterval(now.Add(30*time.Second), min))
	assert.False(t, auth.WithinRefreshInterval(now.Add(31*time.Second), min))
	assert.False(t, auth.WithinRefreshInterval(now.Add(time.Minute), min))
}

func TestAuthorization_Rotate(t *testing.T) {
	now := time.Now().UTC()
	auth := newTestAuthorization(t, now)

	later := now.Add(10 * time.Minute)
	auth.Rotate(
		"access-2", later, later.Add(time.Hour),
		"refresh-2", later, later.Add(30*24*time.Hour),
	)

	assert.Equal(t, "access-2", auth.AccessToken)
	assert.Equal(t, "refresh-2", auth.RefreshToken)
	assert.Equal(t, "access-1", auth.PreviousAccessToken)
	assert.Equal(t, "refresh-1", auth.PreviousRefreshToken)
	assert.Equal(t, later, auth.AccessCreatedAt)
	assert.Equal(t, later.Add(time.Hour), auth.AccessExpiresAt)
}

func TestAuthorization_AcknowledgeRotation(t *testing.T) {
	now := time.Now().UTC()
	auth := newTestAuthorization(t, now)

	t.Run("no-op without previous generation", func(t *testing.T) {
		assert.False(t, auth.AcknowledgeRotation())
	})

	t.Run("clears previous generation", func(t *testing.T) {
		auth.Rotate(
			"access-2", now, now.Add(time.Hour),
			"refresh-2", now, now.Add(30*24*time.Hour),
		)
		require.NotEmpty(t, auth.PreviousAccessToken)

		assert.True(t, auth.AcknowledgeRotation())
		assert.Empty(t, auth.PreviousAccessToken)
		assert.Empty(t, auth.PreviousRefreshToken)
	})
}
