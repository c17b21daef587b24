package database

import (
	"path/filepath"
	"testing"

	"github.com/sangkips/storepos-api/internal/config"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedDefaultData_IsIdempotent(t *testing.T) {
	log := zap.NewNop()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "seed.db"), false, log)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db, log))

	admin := config.AdminConfig{Email: "Owner@Store.test", Password: "secret123", Name: "Owner"}
	require.NoError(t, SeedDefaultData(db, admin, log))
	require.NoError(t, SeedDefaultData(db, admin, log))

	var methods []entity.PaymentMethod
	require.NoError(t, db.Find(&methods).Error)
	require.Len(t, methods, 1)
	assert.True(t, methods[0].IsCash)
	assert.True(t, methods[0].IsActive)

	var profiles int64
	require.NoError(t, db.Model(&entity.StoreProfile{}).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles)

	var users []entity.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "owner@store.test", users[0].Email)
	assert.Equal(t, enum.RoleAdmin, users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("secret123")))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, false, zap.NewNop())
	assert.Error(t, err)
}

func TestGormLogger_SkipsRecordNotFound(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "log.db"), false, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db, zap.NewNop()))

	var product entity.Product
	err = db.Where("sku = ?", "NOPE").First(&product).Error
	require.Error(t, err)
	assert.Zero(t, logs.FilterMessageSnippet("record not found").Len())

	require.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	assert.Equal(t, 1, logs.FilterMessageSnippet("no such table").Len())
	assert.Equal(t, 1, logs.FilterLoggerName("gorm").FilterMessageSnippet("no such table").Len())
}
