// Package config resolves the runtime configuration from the environment and
// optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/casualjim/rxagent/cache"
	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned when no OpenAI API key is configured.
var ErrMissingCredential = errors.New("OPENAI_API_KEY is not set")

// Environment variable names.
const (
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvOpenAIBaseURL  = "OPENAI_BASE_URL"
	EnvModel          = "RXAGENT_MODEL"
	EnvTemperature    = "RXAGENT_TEMPERATURE"
	EnvMaxRounds      = "RXAGENT_MAX_ROUNDS"
	EnvCachePath      = "RXAGENT_CACHE_PATH"
	EnvCacheBackend   = "RXAGENT_CACHE_BACKEND"
	EnvOpenFDABaseURL = "OPENFDA_BASE_URL"
	EnvOpenFDAAPIKey  = "OPENFDA_API_KEY"
	EnvDefaultChoice  = "RXAGENT_DEFAULT_CHOICE"
)

// Defaults.
const (
	DefaultModel         = "gpt-4o-mini"
	DefaultTemperature   = 0.2
	DefaultCachePath     = "tool_cache.json"
	DefaultCacheBackend  = cache.BackendFile
	DefaultDefaultChoice = "D"
)

// Config is the resolved runtime configuration.
type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string
	Temperature   float64
	// MaxRounds is zero when unset; each command applies its own default.
	MaxRounds      int
	CachePath      string
	CacheBackend   cache.Backend
	OpenFDABaseURL string
	OpenFDAAPIKey  string
	DefaultChoice  string
}

// Rounds returns MaxRounds, or fallback when it is unset.
func (c Config) Rounds(fallback int) int {
	if c.MaxRounds > 0 {
		return c.MaxRounds
	}
	return fallback
}

// Validate checks the settings a model run cannot do without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.OpenAIAPIKey) == "" {
		return ErrMissingCredential
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0, 2]", c.Temperature)
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("max rounds must not be negative, got %d", c.MaxRounds)
	}
	switch c.CacheBackend {
	case cache.BackendFile, cache.BackendBadger:
	default:
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
	return nil
}

// LoadEnvFiles loads variables from the given .env files without overriding
// variables that are already set. Missing files are ignored.
func LoadEnvFiles(files ...string) error {
	for _, file := range files {
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", file, err)
		}
	}
	return nil
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromEnv(os.LookupEnv)
}

// FromEnv reads the configuration through lookup, applying defaults for
// unset variables.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		OpenAIAPIKey:   get(EnvOpenAIAPIKey, ""),
		OpenAIBaseURL:  get(EnvOpenAIBaseURL, ""),
		Model:          get(EnvModel, DefaultModel),
		Temperature:    DefaultTemperature,
		CachePath:      get(EnvCachePath, DefaultCachePath),
		CacheBackend:   cache.Backend(strings.ToLower(get(EnvCacheBackend, string(DefaultCacheBackend)))),
		OpenFDABaseURL: get(EnvOpenFDABaseURL, ""),
		OpenFDAAPIKey:  get(EnvOpenFDAAPIKey, ""),
		DefaultChoice:  strings.ToUpper(get(EnvDefaultChoice, DefaultDefaultChoice)),
	}

	if v := get(EnvTemperature, ""); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTemperature, err)
		}
		cfg.Temperature = t
	}
	if v := get(EnvMaxRounds, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvMaxRounds, err)
		}
		cfg.MaxRounds = n
	}
	return cfg, nil
}
