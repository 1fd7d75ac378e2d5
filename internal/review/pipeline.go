package review

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"github.com/dshills/srclens/internal/cache"
	"github.com/dshills/srclens/internal/config"
	"github.com/dshills/srclens/internal/providers"
	"github.com/dshills/srclens/internal/scan"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the outcome of one run.
type Result struct {
	RunID string
	Path  string
	// Reports are in analyzer order with the scanner report last.
	Reports []string
	// Missing names the analyzers that ran and contributed no report.
	Missing []string
	// Skipped names the analyzers that never ran, because the input could
	// not be read or the run was cancelled.
	Skipped []string
}

// Produced reports whether the named analyzer contributed a report.
func (r Result) Produced(name string) bool {
	return !contains(r.Missing, name) && !contains(r.Skipped, name)
}

// Failed reports whether the named analyzer ran without producing a report.
func (r Result) Failed(name string) bool {
	return contains(r.Missing, name)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Pipeline combines the optional analyzers with the pattern scanner.
type Pipeline struct {
	scanner   *scan.Scanner
	analyzers []Analyzer
	log       *zap.Logger
}

// NewPipeline creates a pipeline. Analyzers run in the order given.
func NewPipeline(scanner *scan.Scanner, log *zap.Logger, analyzers ...Analyzer) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{scanner: scanner, analyzers: analyzers, log: log}
}

// Analyzers returns the configured analyzers in run order.
func (p *Pipeline) Analyzers() []Analyzer {
	return append([]Analyzer(nil), p.analyzers...)
}

// Run analyzes the file at path. It never fails: an unreadable file yields
// a single report describing the read error, and analyzers that fail are
// left out.
func (p *Pipeline) Run(ctx context.Context, path string) Result {
	res := Result{RunID: uuid.NewString(), Path: path}
	log := p.log.With(zap.String("run_id", res.RunID), zap.String("path", path))
	start := time.Now()

	data, err := os.ReadFile(path)
	if err == nil && !utf8.Valid(data) {
		err = scan.ErrInvalidUTF8
	}
	if err != nil {
		log.Error("cannot read input", zap.Error(err))
		for _, a := range p.analyzers {
			res.Skipped = append(res.Skipped, a.Name())
		}
		res.Reports = []string{scan.Describe(&scan.ReadError{Path: path, Err: unwrapPath(err)})}
		return res
	}

	src := Source{Path: path, Text: string(data)}
	for _, a := range p.analyzers {
		if ctx.Err() != nil {
			res.Skipped = append(res.Skipped, a.Name())
			continue
		}
		log.Info("running analyzer", zap.String("analyzer", a.Name()))
		report, ok := a.Analyze(ctx, src)
		if !ok {
			res.Missing = append(res.Missing, a.Name())
			continue
		}
		res.Reports = append(res.Reports, report)
	}
	res.Reports = append(res.Reports, p.scanner.Report(src.Text))

	log.Info("run complete",
		zap.Int("reports", len(res.Reports)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res
}

// unwrapPath drops the *fs.PathError layer, whose path ReadError already carries.
func unwrapPath(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// Build assembles a pipeline from configuration. Only an invalid rules file
// is an error; a missing credential or an unusable cache directory is
// logged and the run continues without that part.
func Build(cfg config.Config, rt config.Runtime, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}
	scanner, err := scan.Build(cfg.ScanOptions(), cfg.Scan.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("building scanner: %w", err)
	}

	var c *cache.Cache
	if cfg.Cache.Enabled {
		if c, err = cache.New(true, cfg.Cache.Dir, cfg.Cache.TTLSeconds); err != nil {
			log.Warn("cache disabled", zap.Error(err))
			c = nil
		}
	}

	var analyzers []Analyzer
	if cfg.Remote.Enabled {
		hf, err := providers.NewHuggingFace(providers.Options{
			APIKey:  rt.HuggingFaceKey,
			BaseURL: cfg.Remote.BaseURL,
			Models:  cfg.Remote.Models,
			Client:  &http.Client{Timeout: cfg.Remote.Timeout},
			Logger:  log,
		})
		switch {
		case errors.Is(err, providers.ErrMissingCredential):
			log.Warn(config.EnvHuggingFaceKey + " not set, skipping Hugging Face analysis")
		case err != nil:
			return nil, fmt.Errorf("creating remote analyzer: %w", err)
		default:
			analyzers = append(analyzers, NewModelAnalyzer(hf, ModelOptions{
				Label:       "Hugging Face",
				Prompt:      RemotePrompt,
				MaxChars:    cfg.Remote.MaxChars,
				MaxTokens:   cfg.Remote.MaxNewTokens,
				Temperature: cfg.Remote.Temperature,
				Redact:      cfg.Privacy.RedactSecrets,
				Cache:       c,
				Logger:      log,
			}))
		}
	}

	if cfg.Local.Enabled {
		ol, err := providers.NewOllama(providers.Options{
			BaseURL: rt.OllamaURL,
			Models:  []string{cfg.Local.Model},
			Client:  &http.Client{Timeout: cfg.Local.Timeout},
			Logger:  log,
		})
		if err != nil {
			return nil, fmt.Errorf("creating local analyzer: %w", err)
		}
		analyzers = append(analyzers, NewModelAnalyzer(ol, ModelOptions{
			Label:    "Ollama",
			Prompt:   LocalPrompt,
			MaxChars: cfg.Local.MaxChars,
			Redact:   cfg.Privacy.RedactSecrets,
			Cache:    c,
			Logger:   log,
		}))
	}

	return NewPipeline(scanner, log, analyzers...), nil
}
