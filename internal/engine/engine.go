// Package engine is the single entry point to the job-fit and
// content-selection engine. It wires the scorers, the bullet library, the
// verification gate and the spinning strategies, and records metrics and
// logs around each call.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/jobfit/internal/bullets"
	"github.com/jonathan/jobfit/internal/competency"
	"github.com/jonathan/jobfit/internal/diversity"
	"github.com/jonathan/jobfit/internal/fit"
	"github.com/jonathan/jobfit/internal/library"
	"github.com/jonathan/jobfit/internal/llm"
	"github.com/jonathan/jobfit/internal/logging"
	"github.com/jonathan/jobfit/internal/metrics"
	"github.com/jonathan/jobfit/internal/selection"
	"github.com/jonathan/jobfit/internal/spinning"
	"github.com/jonathan/jobfit/internal/stage"
	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
	"github.com/jonathan/jobfit/internal/verification"
	"go.uber.org/zap"
)

// DefaultConcurrency bounds AnalyzeBullets fan-out
const DefaultConcurrency = 8

// Options configures an Engine. Zero values fall back to defaults: the
// embedded taxonomy, an in-memory store, no language model, no metrics.
type Options struct {
	Taxonomy        *taxonomy.Taxonomy
	Store           library.Store
	LLM             llm.Client
	SpinTimeout     time.Duration
	SpinTemperature float32
	TargetBullets   int
	PreferUnused    bool
	Concurrency     int
	Metrics         *metrics.Metrics
	Logger          *zap.Logger
}

// Engine exposes the engine operations
type Engine struct {
	tax        *taxonomy.Taxonomy
	classifier *stage.Classifier
	scorer     *fit.Scorer
	analyzer   *bullets.Analyzer
	sets       *diversity.SetAnalyzer
	selector   *selection.Selector
	library    *library.Library
	gate       *verification.Gate
	rules      *spinning.RuleBased
	model      *spinning.ModelAugmented

	target       int
	preferUnused bool
	concurrency  int
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// New builds an engine
func New(opts Options) (*Engine, error) {
	tax := opts.Taxonomy
	if tax == nil {
		var err error
		if tax, err = taxonomy.Default(); err != nil {
			return nil, err
		}
	}
	store := opts.Store
	if store == nil {
		store = library.NewMemoryStore()
	}
	logger := logging.For(opts.Logger, "engine")
	target := opts.TargetBullets
	if target <= 0 {
		target = selection.DefaultCount
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	matcher := competency.NewMatcher(tax)
	classifier := stage.NewClassifier(tax)
	analyzer := bullets.NewAnalyzer(tax)
	metricDiv := diversity.NewMetricDiversifier(tax)
	verbs := diversity.NewVerbChecker(tax)
	selector := selection.NewSelector(matcher)

	e := &Engine{
		tax:          tax,
		classifier:   classifier,
		scorer:       fit.NewScorer(matcher, classifier),
		analyzer:     analyzer,
		sets:         diversity.NewSetAnalyzer(analyzer, metricDiv, verbs),
		selector:     selector,
		library:      library.New(store, analyzer, selector, logging.For(opts.Logger, "library")),
		gate:         verification.NewGate(tax, target),
		rules:        spinning.NewRuleBased(tax),
		target:       target,
		preferUnused: opts.PreferUnused,
		concurrency:  concurrency,
		metrics:      opts.Metrics,
		logger:       logger,
	}
	if opts.LLM != nil {
		spinOpts := []spinning.Option{spinning.WithLogger(logging.For(opts.Logger, "spinning"))}
		if opts.SpinTimeout > 0 {
			spinOpts = append(spinOpts, spinning.WithTimeout(opts.SpinTimeout))
		}
		if opts.SpinTemperature > 0 {
			spinOpts = append(spinOpts, spinning.WithTemperature(opts.SpinTemperature))
		}
		e.model = spinning.NewModelAugmented(tax, opts.LLM, spinOpts...)
	}
	return e, nil
}

// Taxonomy returns the tables the engine was built with
func (e *Engine) Taxonomy() *taxonomy.Taxonomy {
	return e.tax
}

// Library returns the bullet library
func (e *Engine) Library() *library.Library {
	return e.library
}

// ModelEnabled reports whether spin requests can use the language model
func (e *Engine) ModelEnabled() bool {
	return e.model != nil
}

// Assess scores a candidate against a job posting
func (e *Engine) Assess(ctx context.Context, req types.AssessRequest) (result *types.FitAssessment, err error) {
	defer e.observe("assess", time.Now(), &err)
	if err := req.Validate(); err != nil {
		return nil, types.FromValidation(err)
	}

	result, err = e.scorer.Assess(req)
	if err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.FitScore.Observe(float64(result.FitScore))
	}
	e.logger.Debug("assessment complete",
		zap.Int("fit_score", result.FitScore),
		zap.String("decision", string(result.Decision)),
		zap.String("stage", string(result.StageRecommendation.Stage)))
	return result, nil
}

// AnalyzeBullet validates one six-part statement
func (e *Engine) AnalyzeBullet(s types.SixPartStatement) types.ValidationResult {
	defer e.observe("analyze_bullet", time.Now(), nil)
	return e.analyzer.Analyze(s)
}

// AutoFix proposes a corrected statement without modifying the input
func (e *Engine) AutoFix(s types.SixPartStatement) bullets.Proposal {
	defer e.observe("autofix", time.Now(), nil)
	return e.analyzer.AutoFix(s)
}

// AnalyzeSet scores a set of assembled bullets as a whole
func (e *Engine) AnalyzeSet(statements []string) diversity.SetReport {
	defer e.observe("analyze_set", time.Now(), nil)
	return e.sets.Analyze(statements)
}

// SuggestStage classifies the hiring organization and returns writing guidance
func (e *Engine) SuggestStage(text string) (types.StageRecommendation, error) {
	if strings.TrimSpace(text) == "" {
		return types.StageRecommendation{}, &types.InputError{Field: "text", Message: "text is required"}
	}
	return e.classifier.Recommendation(e.classifier.Classify(text)), nil
}

// SelectFromPool allocates from a caller-supplied pool without touching the library
func (e *Engine) SelectFromPool(pool []types.LibraryItem, req types.SelectRequest) (result *types.SelectionResult, err error) {
	defer e.observe("select_pool", time.Now(), &err)
	return e.selector.Select(pool, e.selectDefaults(req))
}

// Select allocates from the library and records usage of the chosen items
func (e *Engine) Select(ctx context.Context, req types.SelectRequest) (result *types.SelectionResult, err error) {
	defer e.observe("select", time.Now(), &err)
	result, err = e.library.Select(ctx, e.selectDefaults(req))
	if err != nil {
		return nil, err
	}
	if e.metrics != nil && result.Shortfall > 0 {
		e.metrics.SelectionShort.Add(float64(result.Shortfall))
	}
	return result, nil
}

func (e *Engine) selectDefaults(req types.SelectRequest) types.SelectRequest {
	if req.Count == 0 {
		req.Count = e.target
	}
	if e.preferUnused {
		req.PreferUnused = true
	}
	return req
}

// Verify runs the verification gate for a document
func (e *Engine) Verify(ctx context.Context, req types.VerifyRequest) (report *types.VerificationReport, err error) {
	defer e.observe("verify", time.Now(), &err)
	report, err = e.gate.Verify(req)
	if err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.Verifications.WithLabelValues(report.DocumentType, string(report.OverallStatus)).Inc()
	}
	if report.AutoRetryRecommended {
		e.logger.Info("verification failed", zap.String("document_type", report.DocumentType), zap.Strings("suggestions", report.Suggestions))
	}
	return report, nil
}

// Spin adapts text to a target stage. UseModel selects the model-augmented
// strategy when one is configured; otherwise the rule-based path runs.
func (e *Engine) Spin(ctx context.Context, req types.SpinRequest) (result types.SpinResult, err error) {
	defer e.observe("spin", time.Now(), &err)
	if err := req.Validate(); err != nil {
		return types.SpinResult{}, types.FromValidation(err)
	}
	target, err := types.ParseStage(req.TargetStage)
	if err != nil {
		return types.SpinResult{}, err
	}

	var strategy spinning.Strategy = e.rules
	if req.UseModel {
		if e.model == nil {
			result, err = e.rules.Spin(ctx, req.Text, target)
			if err == nil {
				result.FallbackReason = spinning.ReasonUnavailable
				e.recordFallback(result.FallbackReason)
			}
			return result, err
		}
		strategy = e.model
	}

	result, err = strategy.Spin(ctx, req.Text, target)
	if err != nil {
		return types.SpinResult{}, err
	}
	if result.FallbackReason != "" {
		e.recordFallback(result.FallbackReason)
	}
	return result, nil
}

// SpinExamples returns before/after samples for a stage
func (e *Engine) SpinExamples(stage types.Stage) []taxonomy.Example {
	return e.rules.Examples(stage)
}

func (e *Engine) recordFallback(reason string) {
	if e.metrics != nil {
		e.metrics.SpinFallbacks.WithLabelValues(reason).Inc()
	}
}

func (e *Engine) observe(op string, start time.Time, errp *error) {
	class := ""
	if errp != nil && *errp != nil {
		class = "internal"
		if types.IsInputError(*errp) {
			class = "input"
		}
	}
	e.metrics.Observe(op, start, class)
}
