package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, defaultConfig().Validate())
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
http:
  address: ":9090"
hydration:
  maxGlassesPerDay: 20
analytics:
  windows: [7, 14]
risk:
  interval: 2h
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("USER_CITY", "Singapore")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("VALKEY_ENABLED", "true")
	t.Setenv("VALKEY_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 20, cfg.Hydration.MaxGlassesPerDay)
	require.Equal(t, 10, cfg.Hydration.HotWeatherGoal)
	require.Equal(t, []int{7, 14}, cfg.Analytics.Windows)
	require.Equal(t, 2*time.Hour, cfg.Risk.Interval)
	require.Equal(t, "Singapore", cfg.User.City)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.True(t, cfg.Storage.Valkey.Enabled)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty secret":             func(c *Config) { c.Auth.Secret = " " },
		"bad timezone":             func(c *Config) { c.User.Timezone = "Mars/Olympus" },
		"zero window":              func(c *Config) { c.Analytics.Windows = []int{7, 0} },
		"risk without url":         func(c *Config) { c.Risk.Enabled = true },
		"valkey without addr":      func(c *Config) { c.Storage.Valkey.Enabled = true },
		"sns without topic":        func(c *Config) { c.Notify.SNS.Enabled = true },
		"archive without endpoint": func(c *Config) { c.Archive.Enabled = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
