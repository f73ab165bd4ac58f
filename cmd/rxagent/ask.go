package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/casualjim/rxagent/agent"
	"github.com/casualjim/rxagent/dataset"
	"github.com/casualjim/rxagent/internal/console"
	"github.com/casualjim/rxagent/pkg/slogx"
	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const exampleQuestion = "A patient stable on venlafaxine starts taking St. John's Wort for low mood. " +
	"Which is the most appropriate advice?"

var exampleOptions = []string{
	"Continue both; the combination is safe",
	"Avoid the combination because of the risk of serotonin syndrome",
	"Double the venlafaxine dose",
	"Stop venlafaxine abruptly",
}

func newAskCmd(flags *globalFlags) *cobra.Command {
	var (
		options []string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer one question and show the conversation and tool trace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := exampleQuestion
			if len(args) > 0 {
				question = args[0]
			}
			if len(args) == 0 && len(options) == 0 {
				options = exampleOptions
			}

			renderer, err := console.NewMarkdownRenderer()
			if err != nil {
				slog.Warn("markdown rendering disabled", slogx.Error(err))
			}
			out := cmd.OutOrStdout()

			env, err := newEnvironment(flags, agent.DefaultMaxRounds, console.NewHook(out, renderer, verbose))
			if err != nil {
				return err
			}
			defer env.Close()

			res, err := env.agent.Run(cmd.Context(), agent.Question{Text: question, Options: letterOptions(options)})
			if err != nil {
				return err
			}
			console.PrintResult(out, res)
			fmt.Fprintf(out, "Tokens: %d over %d requests\n", res.Usage.TotalTokens, res.Usage.Requests)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&options, "option", "O", nil, "answer option, repeat in order (A first)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the nudges the agent adds")
	return cmd
}

// letterOptions labels options A, B, C and so on. An option written as
// "B: text" keeps its own letter.
func letterOptions(options []string) *orderedmap.OrderedMap[string, string] {
	pairs := make([]orderedmap.Pair[string, string], 0, len(options))
	for i, opt := range options {
		letter := string(rune('A' + i))
		if l, text, ok := strings.Cut(opt, ":"); ok && len(strings.TrimSpace(l)) == 1 {
			letter, opt = strings.ToUpper(strings.TrimSpace(l)), text
		}
		pairs = append(pairs, orderedmap.Pair[string, string]{Key: letter, Value: strings.TrimSpace(opt)})
	}
	return dataset.NewOptions(pairs...)
}
