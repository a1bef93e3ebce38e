package auth_test

import (
	"testing"

	auth "github.com/goliatone/go-auth-tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("parses configuration from the environment", func(t *testing.T) {
		t.Setenv("AUTH_APP_NAME", "console")
		t.Setenv("AUTH_SIGNING_KEY", "0123456789abcdef0123456789abcdef")
		t.Setenv("AUTH_TOKEN_ISSUER", "https://issuer.test")
		t.Setenv("AUTH_TOKEN_AUDIENCE", "console-clients,console-admin")
		t.Setenv("AUTH_TOKEN_EXPIRATION_MINUTES", "45")

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "console", cfg.GetAppName())
		assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.GetSigningKey())
		assert.Equal(t, "https://issuer.test", cfg.GetIssuer())
		assert.Equal(t, []string{"console-clients", "console-admin"}, cfg.GetAudience())
		assert.Equal(t, 45, cfg.GetTokenExpiration())
	})

	t.Run("defaults token expiration to 30 minutes", func(t *testing.T) {
		t.Setenv("AUTH_APP_NAME", "console")
		t.Setenv("AUTH_SIGNING_KEY", "0123456789abcdef0123456789abcdef")
		t.Setenv("AUTH_TOKEN_ISSUER", "https://issuer.test")

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.GetTokenExpiration())
	})

	t.Run("rejects a missing signing key", func(t *testing.T) {
		t.Setenv("AUTH_APP_NAME", "console")
		t.Setenv("AUTH_SIGNING_KEY", "")
		t.Setenv("AUTH_TOKEN_ISSUER", "https://issuer.test")

		_, err := auth.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("rejects a short signing key", func(t *testing.T) {
		t.Setenv("AUTH_APP_NAME", "console")
		t.Setenv("AUTH_SIGNING_KEY", "too-short")
		t.Setenv("AUTH_TOKEN_ISSUER", "https://issuer.test")

		_, err := auth.LoadConfig()
		assert.Error(t, err)
	})
}

func TestProviderConfigValidate(t *testing.T) {
	cfg := newTestConfig()
	assert.NoError(t, cfg.Validate())

	cfg.AppName = ""
	assert.Error(t, cfg.Validate())
}
