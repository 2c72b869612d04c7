package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOAuthClientFromPath(t *testing.T) {
	t.Run("valid client file", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "oauthClient.json", `{
  "installed": {
    "client_id": "test-client-id.apps.googleusercontent.com",
    "project_id": "test-project",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
    "client_secret": "test-secret",
    "redirect_uris": ["http://localhost"]
  }
}`)

		cfg, err := LoadOAuthClientFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, "test-client-id.apps.googleusercontent.com", cfg.Installed.ClientID)
		assert.Equal(t, []string{"http://localhost"}, cfg.Installed.RedirectURIs)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "oauthClient.json", `{"installed": {"client_id": "x" "project_id": "y"}}`)

		_, err := LoadOAuthClientFromPath(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse oauth client file")
	})

	t.Run("missing client secret", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "oauthClient.json", `{
  "installed": {
    "client_id": "test-client-id",
    "project_id": "test-project",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
    "redirect_uris": ["http://localhost"]
  }
}`)

		_, err := LoadOAuthClientFromPath(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("env specific file in working directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "oauthClient.test.json", `{
  "installed": {
    "client_id": "env-client",
    "project_id": "test-project",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
    "client_secret": "test-secret",
    "redirect_uris": ["http://localhost"]
  }
}`)
		chdir(t, dir)

		cfg, err := LoadOAuthClientWithEnv("test")
		require.NoError(t, err)
		assert.Equal(t, "env-client", cfg.Installed.ClientID)
	})
}
