// Package batch drives the agent over a dataset and writes one prediction row
// per record.
package batch

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/casualjim/rxagent/agent"
	"github.com/casualjim/rxagent/dataset"
	"github.com/casualjim/rxagent/pkg/slogx"
)

// DefaultChoice is written when a run produces no usable letter.
const DefaultChoice = "D"

var validChoices = []string{"A", "B", "C", "D"}

// Runner answers one question.
type Runner interface {
	Run(context.Context, agent.Question) (agent.Result, error)
}

// Config controls a batch.
type Config struct {
	// Validation adds the correct_answer column and scores predictions.
	Validation bool
	// DefaultChoice replaces DefaultChoice when set.
	DefaultChoice string
	// Limit stops after this many records when positive.
	Limit int
}

// Summary reports a finished batch.
type Summary struct {
	Records int
	// Skipped counts malformed input lines.
	Skipped int
	// Defaulted counts rows whose choice fell back to the default letter.
	Defaulted int
	Correct   int
	// Scored counts rows that had a correct answer to compare with.
	Scored int
}

// Accuracy is Correct over Records, or 0 for an empty batch.
func (s Summary) Accuracy() float64 {
	if s.Records == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Records)
}

// ValidChoice normalizes a run's final choice to one letter of A to D,
// falling back to fallback.
func ValidChoice(choice, fallback string) (string, bool) {
	c := strings.ToUpper(strings.TrimSpace(choice))
	if c != "" {
		c = c[:1]
	}
	if slices.Contains(validChoices, c) {
		return c, true
	}
	return fallback, false
}

// Run answers every record and writes its row to out. A malformed line that
// still names its record gets a row with the default letter; other malformed
// lines are logged and skipped. Any other read error stops the batch, and so
// does a model failure. Rows written so far are flushed and the error is
// returned with the partial summary.
func Run(ctx context.Context, runner Runner, records iter.Seq2[dataset.Record, error], out *dataset.Writer, cfg Config) (Summary, error) {
	fallback := cfg.DefaultChoice
	if _, ok := ValidChoice(fallback, ""); !ok {
		fallback = DefaultChoice
	}
	log := slog.With(slogx.LoggerName("batch"))

	var summary Summary
	if err := out.WriteHeader(); err != nil {
		return summary, err
	}

	abort := func(err error) (Summary, error) {
		if ferr := out.Flush(); ferr != nil {
			log.ErrorContext(ctx, "failed to flush predictions", slogx.Error(ferr))
		}
		return summary, err
	}

	write := func(rec dataset.Record, choice, rationale string) error {
		summary.Records++
		if cfg.Validation && rec.CorrectAnswer != "" {
			summary.Scored++
		}
		if cfg.Validation && choice == rec.CorrectAnswer {
			summary.Correct++
		}
		if err := out.Write(dataset.Row{
			ID:             rec.ID,
			Prediction:     choice,
			ReasoningTrace: rationale,
			Choice:         choice,
			CorrectAnswer:  rec.CorrectAnswer,
		}); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("flushing predictions: %w", err)
		}
		return nil
	}

	for rec, err := range records {
		if cfg.Limit > 0 && summary.Records >= cfg.Limit {
			break
		}

		var malformed *dataset.RecordError
		if errors.As(err, &malformed) {
			if !malformed.Recovered {
				log.WarnContext(ctx, "skipping record", slogx.Error(err))
				summary.Skipped++
				continue
			}
			log.WarnContext(ctx, "writing default choice for malformed record", slog.String("id", malformed.Partial.ID), slogx.Error(err))
			summary.Defaulted++
			if err := write(malformed.Partial, fallback, ""); err != nil {
				return summary, err
			}
			continue
		}
		if err != nil {
			return abort(err)
		}

		res, err := runner.Run(ctx, agent.Question{Text: rec.Question, Options: rec.Options})
		if err != nil {
			return abort(fmt.Errorf("record %s: %w", rec.ID, err))
		}

		choice, ok := ValidChoice(res.FinalChoice, fallback)
		if !ok {
			summary.Defaulted++
		}
		if err := write(rec, choice, res.Rationale); err != nil {
			return summary, err
		}

		log.InfoContext(ctx, "answered record",
			slog.String("id", rec.ID),
			slog.String("choice", choice),
			slog.Int("tool_calls", len(res.Tools)),
			slog.Int("done", summary.Records),
		)
	}
	return summary, out.Flush()
}
