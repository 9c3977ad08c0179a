package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/jobfit/internal/bullets"
	"github.com/jonathan/jobfit/internal/types"
	"github.com/spf13/cobra"
)

var analyzeBulletCmd = &cobra.Command{
	Use:   "analyze-bullet",
	Short: "Validate six-part bullet statements",
	Long: "Validate one statement given by flags, or every statement in a JSON file " +
		"(a single object or an array). With --fix, also propose a corrected statement.",
	RunE: runAnalyzeBullet,
}

var (
	bulletFile string
	bulletFix  bool
	bulletStmt types.SixPartStatement
)

func init() {
	f := analyzeBulletCmd.Flags()
	f.StringVarP(&bulletFile, "file", "f", "", "JSON file with one statement or an array of statements")
	f.BoolVar(&bulletFix, "fix", false, "propose a corrected statement")
	f.StringVar(&bulletStmt.Action, "action", "", "action verb")
	f.StringVar(&bulletStmt.Context, "context", "", "context part")
	f.StringVar(&bulletStmt.Method, "method", "", "method part")
	f.StringVar(&bulletStmt.Result, "result", "", "result part")
	f.StringVar(&bulletStmt.Impact, "impact", "", "impact part")
	f.StringVar(&bulletStmt.Outcome, "outcome", "", "outcome part")
	rootCmd.AddCommand(analyzeBulletCmd)
}

// readStatements accepts a single statement object or an array
func readStatements(path string) ([]types.SixPartStatement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var many []types.SixPartStatement
		if err := json.Unmarshal(raw, &many); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return many, nil
	}
	var one types.SixPartStatement
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return []types.SixPartStatement{one}, nil
}

type bulletReport struct {
	Validation types.ValidationResult `json:"validation"`
	Fix        *bullets.Proposal      `json:"fix,omitempty"`
}

func runAnalyzeBullet(cmd *cobra.Command, _ []string) error {
	statements := []types.SixPartStatement{bulletStmt}
	if bulletFile != "" {
		var err error
		if statements, err = readStatements(bulletFile); err != nil {
			return err
		}
	} else if bulletStmt.Action == "" {
		return fmt.Errorf("either --file or --action must be provided")
	}

	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	results, err := rt.engine.AnalyzeBullets(cmd.Context(), statements)
	if err != nil {
		return err
	}
	reports := make([]bulletReport, len(results))
	for i, res := range results {
		reports[i].Validation = res
		if bulletFix {
			fix := rt.engine.AutoFix(statements[i])
			reports[i].Fix = &fix
		}
	}
	if len(reports) == 1 {
		return writeJSON(cmd, reports[0])
	}
	return writeJSON(cmd, reports)
}
