package main

import (
	"fmt"

	"github.com/casualjim/rxagent/cache"
	"github.com/spf13/cobra"
)

func newCacheCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the tool result cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print the number of cached tool results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			c, err := cache.Open(cfg.CacheBackend, cfg.CachePath)
			if err != nil {
				return err
			}
			defer c.Close()

			n, err := c.Len()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backend: %s\npath:    %s\nentries: %d\n", cfg.CacheBackend, cfg.CachePath, n)
			return nil
		},
	})
	return cmd
}
