package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newViper(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"RS256"}, cfg.Auth.Algorithms)
	assert.Equal(t, time.Duration(0), cfg.Auth.JWKSCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.Auth.JWKSTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("COFFEESHOP_AUTH_DOMAIN", "coffee.example.auth0.com")
	t.Setenv("COFFEESHOP_AUTH_AUDIENCE", "coffee")
	t.Setenv("COFFEESHOP_AUTH_JWKS_CACHE_TTL", "5m")
	t.Setenv("COFFEESHOP_AUTH_ALGORITHMS", "RS256,RS384")
	t.Setenv("COFFEESHOP_SERVER_PORT", "9090")

	cfg, err := loadConfig(newViper(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "coffee.example.auth0.com", cfg.Auth.Domain)
	assert.Equal(t, "coffee", cfg.Auth.Audience)
	assert.Equal(t, 5*time.Minute, cfg.Auth.JWKSCacheTTL)
	assert.Equal(t, []string{"RS256", "RS384"}, cfg.Auth.Algorithms)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("COFFEESHOP_DB_DSN=postgres://from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("COFFEESHOP_DB_DSN") })

	cfg, err := loadConfig(newViper(), envFile)
	require.NoError(t, err)

	assert.Equal(t, "postgres://from-dotenv", cfg.DB.DSN)
}

func TestLoadConfigEnvironmentWinsOverDotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("COFFEESHOP_AUTH_AUDIENCE=from-dotenv\n"), 0o600))
	t.Setenv("COFFEESHOP_AUTH_AUDIENCE", "from-env")

	cfg, err := loadConfig(newViper(), envFile)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.Audience)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
auth:
  domain: tenant.auth0.com
  audience: menu
  leeway: 30s
cors:
  allowed_origins:
    - http://localhost:8100
http:
  internal_cidrs:
    - 10.0.0.0/8
`), 0o600))

	v := newViper()
	v.SetConfigFile(path)
	cfg, err := loadConfig(v, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "tenant.auth0.com", cfg.Auth.Domain)
	assert.Equal(t, 30*time.Second, cfg.Auth.Leeway)
	assert.Equal(t, []string{"http://localhost:8100"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.HTTP.InternalCIDRs)
}

func TestRootCommandWiresSubcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"serve", "seed"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("auth-domain"))
}
