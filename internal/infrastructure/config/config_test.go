package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, AssetsLocal, cfg.Assets.Driver)
	assert.Equal(t, "uploads", cfg.Assets.UploadDir)
	assert.Equal(t, 10, cfg.Redis.LoginMaxAttempts)
	assert.Equal(t, time.Minute, cfg.Redis.LoginWindow)
	assert.False(t, cfg.LoginThrottleEnabled())
	assert.Equal(t, 50, cfg.MaxUploadMB)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"PORT":         "8080",
		"TOKEN_TTL":    "2h",
		"STORE_DRIVER": "mongo",
		"MONGO_DB":     "catalogo",
		"REDIS_ADDR":   "localhost:6379",
		"ASSET_DRIVER": "s3",
		"S3_BUCKET":    "libros",
		"S3_ENDPOINT":  "http://127.0.0.1:9000",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "catalogo", cfg.Mongo.Database)
	assert.True(t, cfg.LoginThrottleEnabled())
	assert.Equal(t, "http://127.0.0.1:9000", cfg.Assets.S3Endpoint)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"TOKEN_TTL": "forever",
	}))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")

	cfg.JWTSecret = "x"
	cfg.StoreDriver = "sqlite"
	cfg.Assets.Driver = "s3"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `STORE_DRIVER "sqlite"`)
	assert.Contains(t, err.Error(), "S3_BUCKET is required")
}
