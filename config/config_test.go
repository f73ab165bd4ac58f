package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/casualjim/rxagent/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(mapLookup(nil))
	require.NoError(t, err)

	assert.Equal(t, Config{
		Model:         DefaultModel,
		Temperature:   DefaultTemperature,
		CachePath:     DefaultCachePath,
		CacheBackend:  cache.BackendFile,
		DefaultChoice: "D",
	}, cfg)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingCredential)
	assert.Equal(t, 3, cfg.Rounds(3))
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(mapLookup(map[string]string{
		EnvOpenAIAPIKey:   "sk-test",
		EnvOpenAIBaseURL:  "http://localhost:8080/v1",
		EnvModel:          "gpt-4o",
		EnvTemperature:    "0.7",
		EnvMaxRounds:      "6",
		EnvCachePath:      "/tmp/cache",
		EnvCacheBackend:   "Badger",
		EnvOpenFDABaseURL: "http://fda.local",
		EnvOpenFDAAPIKey:  "fda-key",
		EnvDefaultChoice:  "a",
	}))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.Equal(t, 6, cfg.Rounds(3))
	assert.Equal(t, cache.BackendBadger, cfg.CacheBackend)
	assert.Equal(t, "http://fda.local", cfg.OpenFDABaseURL)
	assert.Equal(t, "A", cfg.DefaultChoice)
}

func TestFromEnv_BlankValuesUseDefaults(t *testing.T) {
	cfg, err := FromEnv(mapLookup(map[string]string{EnvModel: "  ", EnvTemperature: ""}))
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.InDelta(t, DefaultTemperature, cfg.Temperature, 1e-9)
}

func TestFromEnv_InvalidNumbers(t *testing.T) {
	_, err := FromEnv(mapLookup(map[string]string{EnvTemperature: "warm"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvTemperature)

	_, err = FromEnv(mapLookup(map[string]string{EnvMaxRounds: "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMaxRounds)
}

func TestValidate(t *testing.T) {
	valid := Config{OpenAIAPIKey: "k", CacheBackend: cache.BackendFile}
	require.NoError(t, valid.Validate())

	tests := map[string]func(*Config){
		"temperature":   func(c *Config) { c.Temperature = 3 },
		"rounds":        func(c *Config) { c.MaxRounds = -1 },
		"cache backend": func(c *Config) { c.CacheBackend = "redis" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("RXAGENT_TEST_ONLY_VAR=from-file\nRXAGENT_TEST_PRESET=from-file\n"), 0o600))

	t.Setenv("RXAGENT_TEST_PRESET", "from-env")
	t.Setenv("RXAGENT_TEST_ONLY_VAR", "")
	require.NoError(t, os.Unsetenv("RXAGENT_TEST_ONLY_VAR"))

	require.NoError(t, LoadEnvFiles("", filepath.Join(dir, "missing.env"), file))
	assert.Equal(t, "from-file", os.Getenv("RXAGENT_TEST_ONLY_VAR"))
	assert.Equal(t, "from-env", os.Getenv("RXAGENT_TEST_PRESET"))
}
