package spinning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/jobfit/internal/llm"
	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClient struct {
	response string
	err      error
	block    bool
	last     llm.Request
}

func (f *fakeClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.last = req
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	return f.Generate(ctx, req)
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

const original = "Led hospice teams serving 40% more families"

func TestModelAugmented_Accepted(t *testing.T) {
	client := &fakeClient{response: `"Scaled response teams to serve 40% more populations"`}
	m := NewModelAugmented(taxonomy.MustDefault(), client, WithTemperature(0.7))

	res, err := m.Spin(context.Background(), original, types.StageGrowth)
	require.NoError(t, err)

	assert.Equal(t, types.SpinModelAugmented, res.Source)
	assert.Equal(t, "Scaled response teams to serve 40% more populations", res.Spun)
	assert.Empty(t, res.FallbackReason)
	assert.True(t, res.MetricsPreserved)
	assert.Equal(t, []string{"40%"}, res.MetricsAfter)
	assert.Len(t, res.Changes, 2, "rule-based changes are kept")

	assert.Equal(t, llm.TierLite, client.last.Tier)
	assert.Equal(t, float32(0.7), client.last.Temperature)
	assert.NotEmpty(t, client.last.System)
	assert.Contains(t, client.last.Prompt, "growth-stage company")
	assert.Contains(t, client.last.Prompt, "Led response teams serving 40% more populations")
	assert.Contains(t, client.last.Prompt, "Metrics that must be kept verbatim: 40%")
}

func TestModelAugmented_Fallbacks(t *testing.T) {
	const scaled = "Grew revenue to $500K with 5x gains"
	tests := []struct {
		name   string
		client llm.Client
		opts   []Option
		reason string
		text   string
		spun   string
	}{
		{"no client", nil, nil, ReasonUnavailable},
		{"call fails", &fakeClient{err: errors.New("quota exceeded")}, nil, ReasonFailed},
		{"times out", &fakeClient{block: true}, []Option{WithTimeout(10 * time.Millisecond)}, ReasonTimeout},
		{"empty text", &fakeClient{response: "  "}, nil, ReasonEmpty},
		{"metric dropped", &fakeClient{response: "Scaled response teams for more populations"}, nil, ReasonMetricsAltered},
		{"metric changed", &fakeClient{response: "Scaled teams serving 45% more populations"}, nil, ReasonMetricsAltered},
		{"scale changed", &fakeClient{response: "Grew revenue to $500M with 5x gains"}, nil, ReasonMetricsAltered, scaled, scaled},
		{"multiplier reworded", &fakeClient{response: "Grew revenue to $500K with 5 times the gains"}, nil, ReasonMetricsAltered, scaled, scaled},
		{"metric invented", &fakeClient{response: "Grew revenue to $500K with 5x gains and 900% retention"}, nil, ReasonMetricsAltered, scaled, scaled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			opts := append([]Option{WithLogger(zap.New(core))}, tt.opts...)
			m := NewModelAugmented(taxonomy.MustDefault(), tt.client, opts...)

			text, spun := tt.text, tt.spun
			if text == "" {
				text, spun = original, "Led response teams serving 40% more populations"
			}
			res, err := m.Spin(context.Background(), text, types.StageGrowth)
			require.NoError(t, err)

			assert.Equal(t, tt.reason, res.FallbackReason)
			assert.Equal(t, types.SpinRuleBased, res.Source)
			assert.Equal(t, spun, res.Spun)

			entries := logs.FilterMessage("spin fell back to rule-based output").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.reason, entries[0].ContextMap()["reason"])
		})
	}
}

func TestModelAugmented_InputErrorNotSwallowed(t *testing.T) {
	m := NewModelAugmented(taxonomy.MustDefault(), &fakeClient{response: "x"})
	_, err := m.Spin(context.Background(), "", types.StageGrowth)
	require.Error(t, err)
	assert.True(t, types.IsInputError(err))
}

func TestModelAugmented_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewModelAugmented(taxonomy.MustDefault(), &fakeClient{block: true})
	res, err := m.Spin(ctx, original, types.StageGrowth)
	require.NoError(t, err)
	assert.Equal(t, ReasonFailed, res.FallbackReason)
}

func TestMetricTokens(t *testing.T) {
	tax := taxonomy.MustDefault()
	tests := []struct {
		text string
		want []string
	}{
		{"Grew revenue to $500K with 5x gains", []string{"$500K", "5x"}},
		{"saving $1.2M annually across 12 teams", []string{"$1.2M", "12"}},
		{"cut latency 40% for 10,000 users", []string{"40%", "10,000"}},
		{"no numbers here", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, MetricTokens(tax, tt.text))
		})
	}
}
