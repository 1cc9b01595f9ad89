package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/herogame/herogame/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  address: ":8080"
auth:
  signing_key: "file-signing-key-0123"
`)

		cfg, err := config.Load(path, nil)
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Address)
		assert.Equal(t, "file-signing-key-0123", cfg.GetSigningKey())
		// untouched keys keep their defaults
		assert.Equal(t, 7*24, cfg.GetTokenExpiration())
		assert.Equal(t, "herogame", cfg.GetIssuer())
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfigFile(t, `
auth:
  signing_key: "file-signing-key-0123"
`)
		t.Setenv("HEROGAME_AUTH__SIGNING_KEY", "env-signing-key-45678")

		cfg, err := config.Load(path, nil)
		require.NoError(t, err)

		assert.Equal(t, "env-signing-key-45678", cfg.GetSigningKey())
	})

	t.Run("flags override the environment", func(t *testing.T) {
		t.Setenv("HEROGAME_AUTH__SIGNING_KEY", "env-signing-key-45678")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("auth.signing_key", "", "")
		require.NoError(t, flags.Parse([]string{"--auth.signing_key=flag-signing-key-9999"}))

		cfg, err := config.Load("", flags)
		require.NoError(t, err)

		assert.Equal(t, "flag-signing-key-9999", cfg.GetSigningKey())
	})

	t.Run("refuses to start without a signing key", func(t *testing.T) {
		_, err := config.Load("", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "auth.signing_key")
	})

	t.Run("rejects a short signing key", func(t *testing.T) {
		t.Setenv("HEROGAME_AUTH__SIGNING_KEY", "short")

		_, err := config.Load("", nil)
		assert.Error(t, err)
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, ":3000", cfg.Server.Address)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, 7*24, cfg.Auth.TokenExpiration)
	assert.Empty(t, cfg.Auth.SigningKey)
}
