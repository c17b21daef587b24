package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIdempotencyRepository_ScopesKeysByEndpoint(t *testing.T) {
	log := zap.NewNop()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "keys.db"), false, log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, log))

	ctx := context.Background()
	repo := NewIdempotencyRepository(db)
	userID := uuid.New()
	expires := time.Now().Add(time.Hour)

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", UserID: userID, Endpoint: "POST /api/v1/transactions",
		ResponseCode: 201, ResponseBody: `{"sale":1}`, ExpiresAt: expires,
	}))

	got, err := repo.GetByKey(ctx, "k1", userID, "POST /api/v1/transactions")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"sale":1}`, got.ResponseBody)

	miss, err := repo.GetByKey(ctx, "k1", userID, "POST /api/v1/cash-register/open")
	require.NoError(t, err)
	assert.Nil(t, miss)

	// same key on another route is its own entry
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", UserID: userID, Endpoint: "POST /api/v1/cash-register/open",
		ResponseCode: 201, ResponseBody: `{"open":1}`, ExpiresAt: expires,
	}))
	// and a rewrite of the first replaces it
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", UserID: userID, Endpoint: "POST /api/v1/transactions",
		ResponseCode: 201, ResponseBody: `{"sale":2}`, ExpiresAt: expires,
	}))

	var n int64
	require.NoError(t, db.Model(&entity.IdempotencyKey{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)

	got, err = repo.GetByKey(ctx, "k1", userID, "POST /api/v1/transactions")
	require.NoError(t, err)
	assert.Equal(t, `{"sale":2}`, got.ResponseBody)

	open, err := repo.GetByKey(ctx, "k1", userID, "POST /api/v1/cash-register/open")
	require.NoError(t, err)
	assert.Equal(t, `{"open":1}`, open.ResponseBody)
}

func TestIdempotencyRepository_DeleteExpired(t *testing.T) {
	log := zap.NewNop()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "keys.db"), false, log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, log))

	ctx := context.Background()
	repo := NewIdempotencyRepository(db)
	userID := uuid.New()
	for key, expires := range map[string]time.Time{
		"stale": time.Now().Add(-time.Minute),
		"fresh": time.Now().Add(time.Hour),
	} {
		require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
			Key: key, UserID: userID, Endpoint: "POST /api/v1/transactions",
			ResponseCode: 201, ExpiresAt: expires,
		}))
	}

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	fresh, err := repo.GetByKey(ctx, "fresh", userID, "POST /api/v1/transactions")
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}
