package spinning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/jobfit/internal/llm"
	"github.com/jonathan/jobfit/internal/prompts"
	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
	"go.uber.org/zap"
)

const (
	promptFile      = "spinning.json"
	promptSystemKey = "spin-system"
	promptRewrite   = "spin-rewrite"

	// DefaultTimeout bounds a single model rewrite
	DefaultTimeout = 15 * time.Second
)

// Fallback reasons recorded on SpinResult
const (
	ReasonUnavailable    = "language model unavailable"
	ReasonTimeout        = "language model timed out"
	ReasonFailed         = "language model call failed"
	ReasonEmpty          = "language model returned no text"
	ReasonMetricsAltered = "language model altered metrics"
	ReasonPrompt         = "prompt could not be rendered"
)

// ModelAugmented asks a language model to rewrite the rule-based output in
// the target stage's voice. Any failure returns the rule-based result with a
// FallbackReason; model errors are never returned to the caller.
type ModelAugmented struct {
	rules       *RuleBased
	tax         *taxonomy.Taxonomy
	client      llm.Client
	timeout     time.Duration
	temperature float32
	logger      *zap.Logger
}

// Option configures a ModelAugmented strategy
type Option func(*ModelAugmented)

// WithTimeout bounds each model call
func WithTimeout(d time.Duration) Option {
	return func(m *ModelAugmented) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithTemperature sets the sampling temperature for rewrites
func WithTemperature(t float32) Option {
	return func(m *ModelAugmented) {
		m.temperature = t
	}
}

// WithLogger sets the logger used to report fallbacks
func WithLogger(l *zap.Logger) Option {
	return func(m *ModelAugmented) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModelAugmented wraps a rule-based strategy with a model rewrite. A nil
// client is allowed and makes every call fall back.
func NewModelAugmented(tax *taxonomy.Taxonomy, client llm.Client, opts ...Option) *ModelAugmented {
	m := &ModelAugmented{
		rules:       NewRuleBased(tax),
		tax:         tax,
		client:      client,
		timeout:     DefaultTimeout,
		temperature: llm.DefaultTemperature,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Spin runs the rule-based rewrite, then asks the model to restate it for the
// target stage. The model output is accepted only if it carries exactly the
// original metrics, units and scale included, and no new ones.
func (m *ModelAugmented) Spin(ctx context.Context, text string, target types.Stage) (types.SpinResult, error) {
	base, err := m.rules.Spin(ctx, text, target)
	if err != nil {
		return base, err
	}
	if m.client == nil {
		return m.fallback(base, ReasonUnavailable, nil), nil
	}

	profile := m.tax.Stage(target)
	before := MetricTokens(m.tax, text)
	prompt, err := prompts.Render(promptFile, promptRewrite, map[string]string{
		"Stage":       string(target),
		"Guidance":    profile.Guidance,
		"ActionVerbs": strings.Join(profile.ActionVerbs, ", "),
		"Keywords":    strings.Join(profile.Keywords, ", "),
		"Metrics":     metricList(before),
		"Text":        base.Spun,
	})
	if err != nil {
		return m.fallback(base, ReasonPrompt, err), nil
	}
	system, err := prompts.Get(promptFile, promptSystemKey)
	if err != nil {
		return m.fallback(base, ReasonPrompt, err), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	out, err := m.client.Generate(callCtx, llm.Request{
		Prompt:      prompt,
		System:      system,
		Temperature: m.temperature,
		Tier:        llm.TierLite,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return m.fallback(base, ReasonTimeout, err), nil
		}
		return m.fallback(base, ReasonFailed, err), nil
	}

	rewritten := llm.CleanText(out)
	if rewritten == "" {
		return m.fallback(base, ReasonEmpty, nil), nil
	}
	after := MetricTokens(m.tax, rewritten)
	if !sameMetrics(before, after) {
		return m.fallback(base, ReasonMetricsAltered, fmt.Errorf("want %v, got %v", before, after)), nil
	}

	result := base
	result.Spun = rewritten
	result.MetricsBefore = before
	result.MetricsAfter = after
	result.MetricsPreserved = true
	result.Similarity = Similarity(text, rewritten)
	result.Explanation = fmt.Sprintf("%s. Rewritten for %s-stage language with %d term adaptations.", profile.Explanation, target, len(base.Changes))
	result.Source = types.SpinModelAugmented

	m.logger.Debug("model rewrite accepted",
		zap.String("stage", string(target)),
		zap.String("model", m.client.GetModel(llm.TierLite)),
		zap.Float64("similarity", result.Similarity))
	return result, nil
}

// Examples returns before/after samples for a stage
func (m *ModelAugmented) Examples(stage types.Stage) []taxonomy.Example {
	return m.rules.Examples(stage)
}

func (m *ModelAugmented) fallback(base types.SpinResult, reason string, cause error) types.SpinResult {
	fields := []zap.Field{zap.String("reason", reason), zap.String("stage", string(base.TargetStage))}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	m.logger.Warn("spin fell back to rule-based output", fields...)

	base.FallbackReason = reason
	return base
}

func metricList(metrics []string) string {
	if len(metrics) == 0 {
		return "none"
	}
	return strings.Join(metrics, ", ")
}
