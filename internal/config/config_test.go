package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("ENVIRONMENT", "Test")
	t.Setenv("STORAGE_BACKEND", StorageMemory)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TABLE_PREFIX", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "test_", cfg.TablePrefix)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1024, cfg.AuditQueueSize)
	assert.True(t, cfg.DebugEnabled())
}

func TestLoad_ProdDisablesDebug(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("STORAGE_BACKEND", StorageMemory)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TABLE_PREFIX", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod_", cfg.TablePrefix)
	assert.False(t, cfg.DebugEnabled())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "postgres without url",
			env:  map[string]string{"STORAGE_BACKEND": StoragePostgres, "DATABASE_URL": "", "JWT_SECRET": "s"},
		},
		{
			name: "unknown backend",
			env:  map[string]string{"STORAGE_BACKEND": "sqlite", "JWT_SECRET": "s"},
		},
		{
			name: "no token verification",
			env:  map[string]string{"STORAGE_BACKEND": StorageMemory, "JWT_SECRET": "", "JWKS_URL": ""},
		},
		{
			name: "zero workers",
			env:  map[string]string{"STORAGE_BACKEND": StorageMemory, "JWT_SECRET": "s", "AUDIT_WORKERS": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadTooling_SkipsTokenSettings(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", StorageMemory)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWKS_URL", "")

	_, err := LoadTooling()
	assert.NoError(t, err)
}
