package main

import (
	"github.com/jonathan/jobfit/internal/types"
	"github.com/spf13/cobra"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score a candidate against a job posting",
	Long: "Score a candidate profile against a job posting across the competency areas, " +
		"detect the company stage and recommend whether to proceed.",
	RunE: runAssess,
}

var (
	assessJob       string
	assessJobFile   string
	assessCandidate string
)

func init() {
	assessCmd.Flags().StringVar(&assessJob, "job", "", "job posting text")
	assessCmd.Flags().StringVar(&assessJobFile, "job-file", "", "job posting file (.txt, .md or .html)")
	assessCmd.Flags().StringVarP(&assessCandidate, "candidate", "c", "", "candidate profile JSON file")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, _ []string) error {
	jobText, err := readText(assessJob, assessJobFile, "job")
	if err != nil {
		return err
	}
	req := types.AssessRequest{JobText: jobText}
	if assessCandidate != "" {
		if err := readJSON(assessCandidate, &req.Candidate); err != nil {
			return err
		}
	}

	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.engine.Assess(cmd.Context(), req)
	if err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		p.PrintAssessment(result)
	}
	return writeJSON(cmd, result)
}
