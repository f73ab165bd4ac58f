package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/casualjim/rxagent/agent"
	"github.com/casualjim/rxagent/cache"
	"github.com/casualjim/rxagent/config"
	"github.com/casualjim/rxagent/internal/openfda"
	"github.com/casualjim/rxagent/pkg/slogx"
	"github.com/casualjim/rxagent/provider/openai"
	"github.com/casualjim/rxagent/tool"
	"github.com/fogfish/opts"
	"github.com/openai/openai-go/option"
)

// loadConfig resolves the configuration and applies flag overrides.
func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.cachePath != "" {
		cfg.CachePath = flags.cachePath
	}
	return cfg, nil
}

// loadCatalog returns the embedded catalog merged with the JSON files of dir.
func loadCatalog(dir string) (*tool.Catalog, error) {
	catalog := tool.DefaultCatalog()
	if dir == "" {
		return catalog, nil
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		files[i] = filepath.Base(f)
	}
	catalog.Load(os.DirFS(dir), files...)
	return catalog, nil
}

// environment is everything a run needs, built once per command.
type environment struct {
	cfg   config.Config
	cache *cache.Cache
	agent *agent.Agent
}

func (e *environment) Close() {
	if err := e.cache.Close(); err != nil {
		slog.Error("failed to close tool cache", slogx.Error(err))
	}
}

// withLoggingHook adds agent.LoggingHook when logger records debug messages.
func withLoggingHook(logger *slog.Logger, hooks []agent.Hook) []agent.Hook {
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		return append(hooks, agent.LoggingHook())
	}
	return hooks
}

func newEnvironment(flags *globalFlags, maxRounds int, hooks ...agent.Hook) (*environment, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(flags.catalogDir)
	if err != nil {
		return nil, err
	}

	var fdaOpts []opts.Option[openfda.Client]
	if cfg.OpenFDABaseURL != "" {
		fdaOpts = append(fdaOpts, openfda.WithBaseURL(cfg.OpenFDABaseURL))
	}
	if cfg.OpenFDAAPIKey != "" {
		fdaOpts = append(fdaOpts, openfda.WithAPIKey(cfg.OpenFDAAPIKey))
	}
	executor, err := openfda.New(catalog, fdaOpts...)
	if err != nil {
		return nil, err
	}

	results, err := cache.Open(cfg.CacheBackend, cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("opening tool cache: %w", err)
	}

	invoker, err := tool.NewInvoker(tool.WithExecutor(executor), tool.WithCache(results))
	if err != nil {
		_ = results.Close()
		return nil, err
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}
	if cfg.OpenAIBaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}

	a, err := agent.New(
		agent.Model(openai.Model(cfg.Model, reqOpts...)),
		agent.Invoker(invoker),
		agent.MaxRounds(cfg.Rounds(maxRounds)),
		agent.Temperature(cfg.Temperature),
		agent.WithHook(withLoggingHook(slog.Default(), hooks)...),
	)
	if err != nil {
		_ = results.Close()
		return nil, err
	}

	slog.Debug("environment ready",
		slog.String("model", cfg.Model),
		slog.Int("tools", catalog.Len()),
		slog.String("cache", cfg.CachePath),
		slog.Int("max_rounds", a.MaxRounds()),
	)
	return &environment{cfg: cfg, cache: results, agent: a}, nil
}
