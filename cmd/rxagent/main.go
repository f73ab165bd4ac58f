package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/casualjim/rxagent/config"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	envFile    string
	logLevel   string
	logJSON    bool
	model      string
	cachePath  string
	catalogDir string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, config.ErrMissingCredential) {
			fmt.Fprintln(os.Stderr, "Set OPENAI_API_KEY in the environment or in a .env file.")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "rxagent",
		Short:         "Answer multiple-choice pharmacology questions with FDA label lookups",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := setupLogging(cmd.ErrOrStderr(), flags.logLevel, flags.logJSON); err != nil {
				return err
			}
			return config.LoadEnvFiles(".env", flags.envFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "additional .env file to load")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&flags.logJSON, "log-json", false, "log JSON lines instead of console output")
	pf.StringVar(&flags.model, "model", "", "chat model (overrides RXAGENT_MODEL)")
	pf.StringVar(&flags.cachePath, "cache", "", "tool result cache location (overrides RXAGENT_CACHE_PATH)")
	pf.StringVar(&flags.catalogDir, "catalog-dir", "", "directory of extra tool catalog JSON files")

	root.AddCommand(
		newBatchCmd(flags, false),
		newBatchCmd(flags, true),
		newAskCmd(flags),
		newToolsCmd(flags),
		newCacheCmd(flags),
	)
	return root
}

func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return l, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

func setupLogging(w io.Writer, level string, asJSON bool) error {
	l, err := parseLevel(level)
	if err != nil {
		return err
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Stamp}
	if asJSON {
		out = w
	}
	log := zerolog.New(out).With().Timestamp().Logger()
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: l}),
	))
	return nil
}
