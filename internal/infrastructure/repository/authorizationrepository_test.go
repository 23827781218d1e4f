package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"deviceauth/internal/domain/authorization"
	"deviceauth/internal/domain/device"
	"deviceauth/internal/infrastructure/persistence/models"
	"deviceauth/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.OperatorModel{}, &models.DeviceModel{}, &models.AuthorizationModel{})
	require.NoError(t, err)

	return db
}

func createTestAuthorization(t *testing.T, accessToken string, deviceID uint) *authorization.Authorization {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	auth, err := authorization.New(
		accessToken, now, now.Add(time.Hour),
		"refresh-"+accessToken, now, now.Add(30*24*time.Hour),
		1, deviceID, "client-a",
	)
	require.NoError(t, err)
	return auth
}

func TestAuthorizationRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthorizationRepository(db)
	ctx := context.Background()

	t.Run("create assigns ID", func(t *testing.T) {
		auth := createTestAuthorization(t, "access-create-1", 1)
		err := repo.Create(ctx, auth)
		assert.NoError(t, err)
		assert.NotZero(t, auth.ID)
	})

	t.Run("duplicate access token fails", func(t *testing.T) {
		auth1 := createTestAuthorization(t, "access-dup", 2)
		require.NoError(t, repo.Create(ctx, auth1))

		auth2 := createTestAuthorization(t, "access-dup", 3)
		err := repo.Create(ctx, auth2)
		assert.Error(t, err)
	})

	t.Run("second authorization for same device fails", func(t *testing.T) {
		auth1 := createTestAuthorization(t, "access-dev-1", 10)
		require.NoError(t, repo.Create(ctx, auth1))

		auth2 := createTestAuthorization(t, "access-dev-2", 10)
		err := repo.Create(ctx, auth2)
		assert.Error(t, err)
	})
}

func TestAuthorizationRepository_GetByAccessToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthorizationRepository(db)
	ctx := context.Background()

	auth := createTestAuthorization(t, "access-get-1", 1)
	require.NoError(t, repo.Create(ctx, auth))

	t.Run("found", func(t *testing.T) {
		found, err := repo.GetByAccessToken(ctx, "access-get-1")
		require.NoError(t, err)
		assert.Equal(t, auth.ID, found.ID)
		assert.Equal(t, auth.RefreshToken, found.RefreshToken)
		assert.Empty(t, found.PreviousAccessToken)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByAccessToken(ctx, "no-such-token")
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestAuthorizationRepository_Rotation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthorizationRepository(db)
	ctx := context.Background()

	auth := createTestAuthorization(t, "access-rot-1", 1)
	require.NoError(t, repo.Create(ctx, auth))

	now := time.Now().UTC().Truncate(time.Second)
	auth.Rotate(
		"access-rot-2", now, now.Add(time.Hour),
		"refresh-rot-2", now, now.Add(30*24*time.Hour),
	)
	require.NoError(t, repo.Update(ctx, auth))

	t.Run("previous access token is queryable", func(t *testing.T) {
		found, err := repo.GetByPreviousAccessToken(ctx, "access-rot-1")
		require.NoError(t, err)
		assert.Equal(t, "access-rot-2", found.AccessToken)
		assert.Equal(t, "refresh-access-rot-1", found.PreviousRefreshToken)
	})

	t.Run("acknowledge clears previous tokens in storage", func(t *testing.T) {
		found, err := repo.GetByAccessToken(ctx, "access-rot-2")
		require.NoError(t, err)
		require.True(t, found.AcknowledgeRotation())
		require.NoError(t, repo.Update(ctx, found))

		_, err = repo.GetByPreviousAccessToken(ctx, "access-rot-1")
		assert.True(t, errors.IsNotFoundError(err))

		reloaded, err := repo.GetByAccessToken(ctx, "access-rot-2")
		require.NoError(t, err)
		assert.Empty(t, reloaded.PreviousAccessToken)
		assert.Empty(t, reloaded.PreviousRefreshToken)
	})
}

func TestAuthorizationRepository_UpdateIfAccessToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthorizationRepository(db)
	ctx := context.Background()

	auth := createTestAuthorization(t, "access-cas-1", 1)
	require.NoError(t, repo.Create(ctx, auth))

	now := time.Now().UTC().Truncate(time.Second)

	t.Run("succeeds while token unchanged", func(t *testing.T) {
		auth.Rotate(
			"access-cas-2", now, now.Add(time.Hour),
			"refresh-cas-2", now, now.Add(30*24*time.Hour),
		)
		err := repo.UpdateIfAccessToken(ctx, auth, "access-cas-1")
		assert.NoError(t, err)
	})

	t.Run("conflicts after a concurrent rotation", func(t *testing.T) {
		stale, err := repo.GetByAccessToken(ctx, "access-cas-2")
		require.NoError(t, err)

		stale.Rotate(
			"access-cas-3", now, now.Add(time.Hour),
			"refresh-cas-3", now, now.Add(30*24*time.Hour),
		)
		// Guard token no longer matches the stored row
		err = repo.UpdateIfAccessToken(ctx, stale, "access-cas-1")
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestAuthorizationRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthorizationRepository(db)
	ctx := context.Background()

	t.Run("delete by id", func(t *testing.T) {
		auth := createTestAuthorization(t, "access-del-1", 1)
		require.NoError(t, repo.Create(ctx, auth))

		require.NoError(t, repo.Delete(ctx, auth.ID))

		_, err := repo.GetByAccessToken(ctx, "access-del-1")
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("delete missing id", func(t *testing.T) {
		err := repo.Delete(ctx, 99999)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("delete by device removes all records", func(t *testing.T) {
		auth := createTestAuthorization(t, "access-del-dev", 42)
		require.NoError(t, repo.Create(ctx, auth))

		require.NoError(t, repo.DeleteByDevice(ctx, 42))

		list, err := repo.ListByDevice(ctx, 42)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestDeviceRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	t.Run("create and look up by uuid", func(t *testing.T) {
		d, err := device.New("uuid-1", "android", "phone", "Pixel 9", "Android", "15")
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, d))
		assert.NotZero(t, d.ID)

		found, err := repo.GetByUUID(ctx, "uuid-1", "android")
		require.NoError(t, err)
		assert.Equal(t, d.ID, found.ID)
		assert.Equal(t, "Pixel 9", found.Name)
	})

	t.Run("same uuid on another platform is a distinct device", func(t *testing.T) {
		d, err := device.New("uuid-1", "ios", "phone", "iPhone", "iOS", "18")
		require.NoError(t, err)
		assert.NoError(t, repo.Create(ctx, d))
	})

	t.Run("duplicate uuid and platform fails", func(t *testing.T) {
		d, err := device.New("uuid-1", "android", "tablet", "Tab", "Android", "15")
		require.NoError(t, err)
		assert.Error(t, repo.Create(ctx, d))
	})

	t.Run("update persists os change", func(t *testing.T) {
		found, err := repo.GetByUUID(ctx, "uuid-1", "android")
		require.NoError(t, err)

		require.True(t, found.UpdateOS("Android", "16"))
		require.NoError(t, repo.Update(ctx, found))

		reloaded, err := repo.GetByID(ctx, found.ID)
		require.NoError(t, err)
		assert.Equal(t, "16", reloaded.OSVersion)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByUUID(ctx, "missing", "android")
		assert.True(t, errors.IsNotFoundError(err))
	})
}
