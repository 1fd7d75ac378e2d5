package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dshills/srclens/internal/config"
	"github.com/dshills/srclens/internal/logging"
	"github.com/dshills/srclens/internal/output"
	"github.com/dshills/srclens/internal/review"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type analyzeFlags struct {
	rules        string
	noRemote     bool
	noLocal      bool
	localModel   string
	remoteModels string
	out          string
	noRedact     bool
	quiet        bool
}

func addAnalyzeFlags(cmd *cobra.Command, a *analyzeFlags) {
	cmd.Flags().StringVar(&a.rules, "rules", "", "Rule pack file (YAML) to disable or add pattern rules")
	cmd.Flags().BoolVar(&a.noRemote, "no-remote", false, "Skip the Hugging Face analyzer")
	cmd.Flags().BoolVar(&a.noLocal, "no-local", false, "Skip the Ollama analyzer")
	cmd.Flags().StringVar(&a.localModel, "local-model", "", "Ollama model name")
	cmd.Flags().StringVar(&a.remoteModels, "remote-models", "", "Hugging Face models to try in order (comma-separated)")
	cmd.Flags().StringVar(&a.out, "out", "", "Report file path (default: <file>.ai_analysis.md)")
	cmd.Flags().BoolVar(&a.noRedact, "no-redact", false, "Send code to models without secret redaction")
	cmd.Flags().BoolVarP(&a.quiet, "quiet", "q", false, "Do not echo the reports to the terminal")
}

// overrides maps explicitly set flags onto config keys.
func overrides(cmd *cobra.Command, g *globalFlags, a *analyzeFlags) map[string]any {
	m := make(map[string]any)
	set := func(flag, key string, v any) {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			m[key] = v
		}
	}
	set("log-level", "log.level", g.logLevel)
	set("rules", "scan.rules_file", a.rules)
	set("no-remote", "remote.enabled", !a.noRemote)
	set("no-local", "local.enabled", !a.noLocal)
	set("local-model", "local.model", a.localModel)
	set("remote-models", "remote.models", splitComma(a.remoteModels))
	set("no-redact", "privacy.redact_secrets", !a.noRedact)
	set("quiet", "output.quiet", a.quiet)
	return m
}

func runAnalyze(cmd *cobra.Command, g *globalFlags, a *analyzeFlags, path string) error {
	cfg, err := config.Load(g.configPath, overrides(cmd, g, a))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !cfg.SupportsExtension(path) {
		return usageErrorf("Only C++ source files are supported (%s): %s", strings.Join(cfg.Extensions, " "), path)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return usageErrorf("File not found: %s", path)
		}
		return usageErrorf("Cannot access %s: %v", path, err)
	}

	log, err := logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	defer log.Sync()

	rt := config.Resolve(cfg)
	pipeline, err := review.Build(cfg, rt, log)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	stdout := cmd.OutOrStdout()
	if !cfg.Output.Quiet {
		output.WriteBanner(stdout, path)
	}

	res := pipeline.Run(cmd.Context(), path)

	dest := a.out
	if dest == "" {
		dest = output.ReportPath(path, cfg.Output.Suffix)
	}
	writeErr := output.WriteMarkdownFile(dest, path, res.Reports)
	saved := dest
	if writeErr != nil {
		log.Error("saving report failed", zap.String("dest", dest), zap.Error(writeErr))
		saved = ""
	}

	if !cfg.Output.Quiet {
		output.WriteConsole(stdout, output.Console{
			Reports: res.Reports,
			SavedTo: saved,
			Recommendations: output.Recommendations(output.Hints{
				MissingRemoteKey: cfg.Remote.Enabled && rt.HuggingFaceKey == "",
				LocalUnavailable: cfg.Local.Enabled && res.Failed("ollama"),
			}),
		})
	}

	if writeErr != nil {
		return &exitError{code: ExitOutputError, err: writeErr}
	}
	return nil
}

// splitComma splits a comma-separated string and trims whitespace.
func splitComma(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
