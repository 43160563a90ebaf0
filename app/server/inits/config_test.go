package inits

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_CONN", "postgres://library@localhost/library")
	t.Setenv("REDIS_CONN", "redis://localhost:6379/0")
	t.Setenv("APISETTINGS_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestConfigFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MODE", "Production")
	t.Setenv("S3_BUCKET", "covers")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg, err := configFrom(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.System.IsProd)
	assert.Equal(t, ":1323", cfg.System.Listen)
	assert.Equal(t, "postgres://library@localhost/library", cfg.System.DBConnectionString)
	assert.Equal(t, "redis://localhost:6379/0", cfg.System.RedisConnectionString)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.ApiSettings.Secret)
	assert.Equal(t, "covers", cfg.Storage.Container)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.True(t, cfg.Storage.UsePathStyle)
	assert.Empty(t, cfg.Bootstrap.AdminEmail)
}

func TestConfigLegacySecretName(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APISETTINGS_SECRET", "")
	t.Setenv("SIGNATURE_SECRET_KEY", "legacy-secret")

	cfg, err := configFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "legacy-secret", cfg.ApiSettings.Secret)
	assert.False(t, cfg.System.IsProd)
}

func TestConfigMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "db", unset: "DB_CONN"},
		{name: "redis", unset: "REDIS_CONN"},
		{name: "secret", unset: "APISETTINGS_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			cfg, err := configFrom(viper.New())
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
