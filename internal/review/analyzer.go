package review

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/srclens/internal/cache"
	"github.com/dshills/srclens/internal/providers"
	"github.com/dshills/srclens/internal/redact"
	"go.uber.org/zap"
)

// Source is the file under analysis, read once per run.
type Source struct {
	Path string
	Text string
}

// Analyzer produces an optional report for a source file. ok is false when
// the analyzer had nothing to contribute.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, src Source) (report string, ok bool)
}

// ModelOptions configures a ModelAnalyzer.
type ModelOptions struct {
	// Label is the display name used in the report header.
	Label       string
	Prompt      PromptFunc
	MaxChars    int
	MaxTokens   int
	Temperature float64
	Redact      bool
	Cache       *cache.Cache
	Logger      *zap.Logger
}

// ModelAnalyzer asks a model backend to review the head of the file.
type ModelAnalyzer struct {
	reviewer providers.Reviewer
	opts     ModelOptions
	log      *zap.Logger
}

// NewModelAnalyzer wraps reviewer as an Analyzer.
func NewModelAnalyzer(reviewer providers.Reviewer, opts ModelOptions) *ModelAnalyzer {
	if opts.Label == "" {
		opts.Label = reviewer.Name()
	}
	if opts.Prompt == nil {
		opts.Prompt = LocalPrompt
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &ModelAnalyzer{
		reviewer: reviewer,
		opts:     opts,
		log:      log.With(zap.String("provider", reviewer.Name())),
	}
}

func (a *ModelAnalyzer) Name() string { return a.reviewer.Name() }

// Analyze returns "🤖 <Label> (<model>):\n<text>" on success.
func (a *ModelAnalyzer) Analyze(ctx context.Context, src Source) (string, bool) {
	code := src.Text
	if a.opts.Redact {
		var n int
		if code, n = redact.Code(code); n > 0 {
			a.log.Debug("redacted secrets from prompt", zap.Int("count", n))
		}
	}
	prompt := a.opts.Prompt(Truncate(code, a.opts.MaxChars))

	key := cache.Key(a.reviewer.Name(), a.reviewer.Model(), prompt)
	if a.opts.Cache != nil {
		if entry, ok := a.opts.Cache.Get(key); ok {
			a.log.Debug("cache hit", zap.String("model", entry.Model))
			return Render(a.opts.Label, entry.Model, entry.Response), true
		}
	}

	start := time.Now()
	resp, err := a.reviewer.Review(ctx, providers.ReviewRequest{
		Prompt:      prompt,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: a.opts.Temperature,
	})
	if err != nil {
		a.log.Warn("analyzer unavailable", zap.Error(err))
		return "", false
	}
	a.log.Info("analysis complete",
		zap.String("model", resp.Model),
		zap.Duration("elapsed", time.Since(start)),
	)

	if a.opts.Cache != nil {
		if err := a.opts.Cache.Put(key, a.reviewer.Name(), resp.Model, resp.Content); err != nil {
			a.log.Warn("cache write failed", zap.Error(err))
		}
	}
	return Render(a.opts.Label, resp.Model, resp.Content), true
}

// Render formats a model answer as a report.
func Render(label, model, text string) string {
	return fmt.Sprintf("🤖 %s (%s):\n%s", label, model, text)
}
