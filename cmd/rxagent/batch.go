package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/casualjim/rxagent/dataset"
	"github.com/casualjim/rxagent/internal/batch"
	"github.com/spf13/cobra"
)

const batchMaxRounds = 3

func newBatchCmd(flags *globalFlags, validation bool) *cobra.Command {
	var (
		input  string
		output string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Answer every question of a test set and write a submission CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(input); err != nil {
				return err
			}
			env, err := newEnvironment(flags, batchMaxRounds)
			if err != nil {
				return err
			}
			defer env.Close()

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()

			summary, err := batch.Run(cmd.Context(), env.agent, dataset.ReadFile(input), dataset.NewWriter(f, validation), batch.Config{
				Validation:    validation,
				DefaultChoice: env.cfg.DefaultChoice,
				Limit:         limit,
			})
			if err != nil {
				return err
			}

			slog.Info("batch finished",
				slog.Int("records", summary.Records),
				slog.Int("skipped", summary.Skipped),
				slog.Int("defaulted", summary.Defaulted),
			)
			if validation {
				fmt.Fprintf(cmd.OutOrStdout(), "Accuracy: %.4f\n", summary.Accuracy())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d predictions to %s\n", summary.Records, output)
			return nil
		},
	}

	inputDefault, outputDefault := "test.jsonl", "submission.csv"
	if validation {
		cmd.Use = "validate"
		cmd.Short = "Answer a labelled validation set and report accuracy"
		inputDefault, outputDefault = "validation.jsonl", "validation_predictions.csv"
	}

	cmd.Flags().StringVarP(&input, "input", "i", inputDefault, "JSONL question file")
	cmd.Flags().StringVarP(&output, "output", "o", outputDefault, "CSV predictions file")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many questions (0 for all)")
	return cmd
}
