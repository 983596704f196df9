package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"RETAILHUB_APP_NAME":          os.Getenv("RETAILHUB_APP_NAME"),
		"RETAILHUB_APP_ENV":           os.Getenv("RETAILHUB_APP_ENV"),
		"RETAILHUB_APP_PORT":          os.Getenv("RETAILHUB_APP_PORT"),
		"RETAILHUB_DATABASE_HOST":     os.Getenv("RETAILHUB_DATABASE_HOST"),
		"RETAILHUB_DATABASE_PORT":     os.Getenv("RETAILHUB_DATABASE_PORT"),
		"RETAILHUB_DATABASE_USER":     os.Getenv("RETAILHUB_DATABASE_USER"),
		"RETAILHUB_DATABASE_PASSWORD": os.Getenv("RETAILHUB_DATABASE_PASSWORD"),
		"RETAILHUB_DATABASE_DBNAME":   os.Getenv("RETAILHUB_DATABASE_DBNAME"),
		"RETAILHUB_DATABASE_SSLMODE":  os.Getenv("RETAILHUB_DATABASE_SSLMODE"),
		"RETAILHUB_JWT_SECRET":        os.Getenv("RETAILHUB_JWT_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "retailhub-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "retailhub", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
		assert.Equal(t, int64(5<<20), cfg.Import.MaxFeedSize)
	})

	t.Run("loads values from environment variables", func(t *testing.T) {
		clearEnv()
		os.Setenv("RETAILHUB_APP_NAME", "test-app")
		os.Setenv("RETAILHUB_APP_PORT", "9000")
		os.Setenv("RETAILHUB_DATABASE_HOST", "testdb.local")
		os.Setenv("RETAILHUB_DATABASE_PORT", "5433")
		os.Setenv("RETAILHUB_DATABASE_USER", "testuser")
		os.Setenv("RETAILHUB_DATABASE_PASSWORD", "testpass")
		os.Setenv("RETAILHUB_DATABASE_DBNAME", "testdb")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("RETAILHUB_APP_ENV", "production")
		os.Setenv("RETAILHUB_DATABASE_PASSWORD", "secret")
		os.Setenv("RETAILHUB_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")

		os.Setenv("RETAILHUB_JWT_SECRET", "short")
		_, err = Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")

		os.Setenv("RETAILHUB_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("production rejects disabled ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("RETAILHUB_APP_ENV", "production")
		os.Setenv("RETAILHUB_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("RETAILHUB_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "retailhub",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
