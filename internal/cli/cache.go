package cli

import (
	"fmt"

	"github.com/dshills/srclens/internal/cache"
	"github.com/dshills/srclens/internal/config"
	"github.com/spf13/cobra"
)

func newCacheCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the model response cache",
	}

	open := func() (*cache.Cache, error) {
		cfg, err := config.Load(g.configPath, nil)
		if err != nil {
			return nil, err
		}
		c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		return c, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := open()
			if err != nil {
				return err
			}
			n, err := c.Clear()
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached responses from %s\n", n, c.Dir())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := open()
			if err != nil {
				return err
			}
			stats, err := c.Stats()
			if err != nil {
				return fmt.Errorf("reading cache stats: %w", err)
			}
			state := "disabled"
			if stats.Enabled {
				state = "enabled"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache:     %s\n", state)
			fmt.Fprintf(out, "Directory: %s\n", stats.Dir)
			fmt.Fprintf(out, "Entries:   %d (%d expired)\n", stats.Entries, stats.Expired)
			fmt.Fprintf(out, "Size:      %d bytes\n", stats.TotalBytes)
			return nil
		},
	})

	return cmd
}
