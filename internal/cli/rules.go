package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dshills/srclens/internal/config"
	"github.com/dshills/srclens/internal/scan"
	"github.com/spf13/cobra"
)

func newRulesCmd(g *globalFlags) *cobra.Command {
	var rulesFile string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the pattern rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ov map[string]any
			if rulesFile != "" {
				ov = map[string]any{"scan.rules_file": rulesFile}
			}
			cfg, err := config.Load(g.configPath, ov)
			if err != nil {
				return err
			}
			s, err := scan.Build(cfg.ScanOptions(), cfg.Scan.RulesFile)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tCLASS\tMESSAGE\tPATTERN")
			for i, r := range s.Rules() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, r.Name, r.Class, r.Message, r.Pattern)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&rulesFile, "rules", "", "Rule pack file to apply")
	return cmd
}
