package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libraryFileJSON = `{"items": [
  {"id": "payments", "statement": {
    "action": "Led",
    "context": "cross-functional team of 8 devs rebuilding the payment reconciliation platform",
    "method": "using event sourcing and guided stakeholder interviews",
    "result": "reducing manual processing time by 40%",
    "impact": "saving $1.2M annually across 12 finance teams",
    "outcome": "for Fortune 500 clients"}},
  {"id": "broken", "statement": {"action": "Helped", "context": "", "method": "", "result": "", "impact": "", "outcome": ""}}
]}`

// resetFlags puts every flag back to its default so commands can run repeatedly in one process
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("JOBFIT_DATABASE_URL", "")
	t.Setenv("JOBFIT_LLM_ENABLED", "false")
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAssessCommand(t *testing.T) {
	candidate := writeTemp(t, "candidate.json", `{"skills": ["Python", "SQL", "Kubernetes"], "experience": []}`)

	out, stderr, err := run(t, "assess", "--job", "Senior engineer with Python and SQL. Lead a small team.", "-c", candidate, "-v")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got, "fit_score")
	assert.Contains(t, got, "decision")
	assert.Contains(t, stderr, "FIT ASSESSMENT")
}

func TestAssessCommand_InputErrors(t *testing.T) {
	_, _, err := run(t, "assess")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --job or --job-file must be provided")

	_, _, err = run(t, "assess", "--job", "x", "--job-file", "y.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestAnalyzeBulletCommand(t *testing.T) {
	out, _, err := run(t, "analyze-bullet", "--action", "Helped", "--fix")
	require.NoError(t, err)

	var report bulletReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Validation.IsValid)
	assert.NotEmpty(t, report.Validation.MissingParts)
	require.NotNil(t, report.Fix)

	_, _, err = run(t, "analyze-bullet")
	require.Error(t, err)
}

func TestSelectCommand_LibraryFile(t *testing.T) {
	lib := writeTemp(t, "library.json", libraryFileJSON)

	out, stderr, err := run(t, "select", "--job", "Python engineer leading payments work", "-n", "3", "--library-file", lib, "-v")
	require.NoError(t, err)

	var got struct {
		Requested int `json:"requested"`
		Items     []struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"items"`
		Shortfall int `json:"shortfall"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Requested)
	require.LessOrEqual(t, len(got.Items), 1)
	for _, item := range got.Items {
		assert.Equal(t, "payments", item.Item.ID)
	}
	assert.Equal(t, 3-len(got.Items), got.Shortfall)
	assert.Contains(t, stderr, "BULLET SELECTION")
}

func TestLibraryCommands(t *testing.T) {
	lib := writeTemp(t, "library.json", libraryFileJSON)

	out, _, err := run(t, "library", "import", lib)
	require.NoError(t, err)
	var report struct {
		Added    []string `json:"added"`
		Rejected []struct {
			ID string `json:"id"`
		} `json:"rejected"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"payments"}, report.Added)
	require.Len(t, report.Rejected, 1)
	assert.Equal(t, "broken", report.Rejected[0].ID)

	out, _, err = run(t, "library", "get", "payments", "--library-file", lib)
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "payments"`)

	_, _, err = run(t, "library", "get", "missing", "--library-file", lib)
	require.Error(t, err)

	out, _, err = run(t, "library", "stats", "--library-file", lib)
	require.NoError(t, err)
	assert.Contains(t, out, `"total_items": 1`)

	out, _, err = run(t, "library", "list", "--library-file", lib, "--min-quality", "101")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestVerifyCommand(t *testing.T) {
	letter := writeTemp(t, "letter.txt", "Hi Dana, would you be open to a short chat about the platform role?")

	out, _, err := run(t, "verify", "--type", "outreach", "--letter-file", letter, "--tier", "tier_3")
	require.NoError(t, err)
	assert.Contains(t, out, `"document_type": "outreach_tier_3"`)
	assert.Contains(t, out, `"overall_status"`)

	bad := writeTemp(t, "resume.json", `{"name": "A"}`)
	_, _, err = run(t, "verify", "--resume", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary")
}

func TestSpinCommands(t *testing.T) {
	out, _, err := run(t, "spin", "--text", "Led hospice teams 40% faster", "--stage", "growth")
	require.NoError(t, err)
	assert.Contains(t, out, "40%")
	assert.Contains(t, out, `"source"`)

	out, _, err = run(t, "spin", "examples", "--stage", "enterprise")
	require.NoError(t, err)
	assert.Contains(t, out, `"before"`)

	_, _, err = run(t, "spin", "--text", "x", "--stage", "series_z")
	require.Error(t, err)

	out, _, err = run(t, "stage", "--job", "Fortune 500 enterprise with compliance and governance needs")
	require.NoError(t, err)
	assert.Contains(t, out, `"stage": "enterprise"`)
}

func TestExtractCommand(t *testing.T) {
	page := writeTemp(t, "posting.html", `<html><body><nav>Menu</nav><main><h1>Data Engineer</h1><p>Build pipelines in Python.</p></main></body></html>`)

	out, _, err := run(t, "extract", page)
	require.NoError(t, err)
	assert.Contains(t, out, "Data Engineer")
	assert.NotContains(t, out, "Menu")

	dir := t.TempDir()
	_, _, err = run(t, "extract", page, "--out", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "posting.txt"))
	assert.FileExists(t, filepath.Join(dir, "posting.meta.json"))
}

func TestRateLimitConfig(t *testing.T) {
	_, _, err := run(t, "stage", "--job", "startup")
	require.NoError(t, err)

	rl := rateLimitConfig()
	require.NotNil(t, rl)
	assert.Equal(t, cfg.RateLimit.Limit, rl.DefaultLimit)
	assert.NotEmpty(t, rl.EndpointConfigs)

	cfg.RateLimit.Enabled = false
	assert.Nil(t, rateLimitConfig())
}
