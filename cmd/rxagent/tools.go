package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/casualjim/rxagent/tool"
	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
)

func newToolsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the tool catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog tools and whether the agent may call them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(flags.catalogDir)
			if err != nil {
				return err
			}
			allowed := tool.DefaultTables().AllowedTools()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tALLOWED\tDESCRIPTION")
			for _, name := range catalog.Names() {
				spec, _ := catalog.Lookup(name)
				fmt.Fprintf(tw, "%s\t%t\t%s\n", name, slices.Contains(allowed, name), firstLine(spec.Description))
			}
			fmt.Fprintf(tw, "\n%d tools\n", catalog.Len())
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(flags.catalogDir)
			if err != nil {
				return err
			}
			name := tool.DefaultTables().CanonicalName(args[0])
			spec, ok := catalog.Lookup(name)
			if !ok {
				return fmt.Errorf("%w: %s", tool.ErrUnknownTool, args[0])
			}
			printer := pp.New()
			printer.SetOutput(cmd.OutOrStdout())
			printer.SetColoringEnabled(!color.NoColor)
			_, err = printer.Println(spec)
			return err
		},
	})
	return cmd
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
