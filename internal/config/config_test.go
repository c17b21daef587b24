package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := Load()

	assert.Equal(t, "storepos-api", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "TRX", cfg.Store.ReceiptPrefix)
	assert.Equal(t, int64(1), cfg.Store.ReceiptNodeID)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.CORS.MaxAge)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("RECEIPT_PREFIX", "POS")
	t.Setenv("PRINTER_AUTO_PRINT", "true")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "false")
	t.Setenv("CORS_MAX_AGE_HOURS", "1")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "POS", cfg.Store.ReceiptPrefix)
	assert.True(t, cfg.Printer.AutoPrint)
	assert.False(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, time.Hour, cfg.CORS.MaxAge)
}

func TestStoreConfig_Location(t *testing.T) {
	loc := StoreConfig{Timezone: "Africa/Nairobi"}.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "Africa/Nairobi", loc.String())

	assert.Equal(t, time.UTC, StoreConfig{Timezone: "Not/AZone"}.Location())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := &DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "pos", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=pos port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
