package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/jobfit/internal/llm"
	"github.com/jonathan/jobfit/internal/metrics"
	"github.com/jonathan/jobfit/internal/spinning"
	"github.com/jonathan/jobfit/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	response string
	err      error
}

func (s *stubClient) Generate(context.Context, llm.Request) (string, error) {
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	return s.Generate(ctx, req)
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub" }

func (s *stubClient) Close() error { return nil }

func newEngine(t *testing.T, client llm.Client) (*Engine, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	e, err := New(Options{LLM: client, Metrics: m})
	require.NoError(t, err)
	return e, m
}

func statement(outcome string) types.SixPartStatement {
	return types.SixPartStatement{
		Action:  "Led",
		Context: "cross-functional team of 8 devs rebuilding the payment reconciliation platform",
		Method:  "using event sourcing and guided stakeholder interviews",
		Result:  "reducing manual processing time by 40%",
		Impact:  "saving $1.2M annually across 12 finance teams",
		Outcome: outcome,
	}
}

func TestEngine_Assess(t *testing.T) {
	e, m := newEngine(t, nil)

	res, err := e.Assess(context.Background(), types.AssessRequest{
		JobText:   "Senior engineer with Python and SQL. Lead a small team.",
		Candidate: types.CandidateProfile{Skills: []string{"Python", "SQL"}},
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.FitScore, 0)
	assert.LessOrEqual(t, res.FitScore, 100)

	_, err = e.Assess(context.Background(), types.AssessRequest{})
	var inputErr *types.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "job_text", inputErr.Field)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("assess")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationErrors.WithLabelValues("assess", "input")))
}

func TestEngine_AnalyzeBullets(t *testing.T) {
	e, _ := newEngine(t, nil)

	in := []types.SixPartStatement{statement("for Fortune 500 clients"), {Action: "Helped"}, statement("for Fortune 100 clients")}
	results, err := e.AnalyzeBullets(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].IsValid)
	assert.False(t, results[1].IsValid)
	assert.Equal(t, e.AnalyzeBullet(in[2]), results[2])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.AnalyzeBullets(ctx, in)
	assert.ErrorIs(t, err, context.Canceled)

	results, err = e.AnalyzeBullets(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEngine_SelectUsesLibrary(t *testing.T) {
	e, _ := newEngine(t, nil)
	ctx := context.Background()

	for _, outcome := range []string{"for Fortune 500 clients", "for Fortune 100 clients"} {
		_, err := e.Library().Add(ctx, statement(outcome), "")
		require.NoError(t, err)
	}

	res, err := e.Select(ctx, types.SelectRequest{JobText: "Python engineer"})
	require.NoError(t, err)
	assert.Equal(t, 13, res.Requested)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 11, res.Shortfall)

	stats, err := e.Library().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsage)

	pool := []types.LibraryItem{{ID: "p1", Text: "Built Python services", QualityScore: 80}}
	res, err = e.SelectFromPool(pool, types.SelectRequest{JobText: "Python engineer", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, res.IDs())
}

func TestEngine_Spin(t *testing.T) {
	t.Run("model requested but not configured", func(t *testing.T) {
		e, m := newEngine(t, nil)
		res, err := e.Spin(context.Background(), types.SpinRequest{Text: "Led hospice teams", TargetStage: "growth", UseModel: true})
		require.NoError(t, err)
		assert.Equal(t, types.SpinRuleBased, res.Source)
		assert.Equal(t, spinning.ReasonUnavailable, res.FallbackReason)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.SpinFallbacks.WithLabelValues(spinning.ReasonUnavailable)))
	})

	t.Run("model rewrite accepted", func(t *testing.T) {
		e, _ := newEngine(t, &stubClient{response: "Scaled response teams 40% faster"})
		res, err := e.Spin(context.Background(), types.SpinRequest{Text: "Led hospice teams 40% faster", TargetStage: "growth", UseModel: true})
		require.NoError(t, err)
		assert.Equal(t, types.SpinModelAugmented, res.Source)
	})

	t.Run("model failure falls back", func(t *testing.T) {
		e, m := newEngine(t, &stubClient{err: errors.New("quota")})
		res, err := e.Spin(context.Background(), types.SpinRequest{Text: "Led hospice teams", TargetStage: "enterprise", UseModel: true})
		require.NoError(t, err)
		assert.Equal(t, spinning.ReasonFailed, res.FallbackReason)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.SpinFallbacks.WithLabelValues(spinning.ReasonFailed)))
	})

	t.Run("rule-based by default", func(t *testing.T) {
		e, _ := newEngine(t, &stubClient{response: "ignored"})
		res, err := e.Spin(context.Background(), types.SpinRequest{Text: "Led hospice teams", TargetStage: "early"})
		require.NoError(t, err)
		assert.Equal(t, types.SpinRuleBased, res.Source)
		assert.Empty(t, res.FallbackReason)
	})

	t.Run("bad stage", func(t *testing.T) {
		e, _ := newEngine(t, nil)
		_, err := e.Spin(context.Background(), types.SpinRequest{Text: "x", TargetStage: "series_z"})
		assert.True(t, types.IsInputError(err))
	})
}

func TestEngine_Verify(t *testing.T) {
	e, m := newEngine(t, nil)
	report, err := e.Verify(context.Background(), types.VerifyRequest{
		DocumentType: types.DocumentOutreach,
		Letter:       &types.LetterDocument{Text: "Would you be open to a chat?", Tier: "tier_3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verifications.WithLabelValues(report.DocumentType, string(report.OverallStatus))))

	_, err = e.Verify(context.Background(), types.VerifyRequest{DocumentType: types.DocumentCoverLetter, Letter: &types.LetterDocument{}})
	assert.True(t, types.IsInputError(err))
}

func TestEngine_VerifyUnknownTiersShareOneSeries(t *testing.T) {
	e, m := newEngine(t, nil)
	for i := 0; i < 20; i++ {
		report, err := e.Verify(context.Background(), types.VerifyRequest{
			DocumentType: types.DocumentOutreach,
			Letter:       &types.LetterDocument{Text: "Would you be open to a chat?", Tier: fmt.Sprintf("custom-%d", i)},
		})
		require.NoError(t, err)
		assert.Equal(t, "outreach_default", report.DocumentType)
	}
	assert.Equal(t, 1, testutil.CollectAndCount(m.Verifications))
}

func TestEngine_SuggestStage(t *testing.T) {
	e, _ := newEngine(t, nil)

	rec, err := e.SuggestStage("Fortune 500 enterprise with compliance and governance needs")
	require.NoError(t, err)
	assert.Equal(t, types.StageEnterprise, rec.Stage)
	assert.NotEmpty(t, rec.Guidance)

	_, err = e.SuggestStage("  ")
	assert.True(t, types.IsInputError(err))
}
