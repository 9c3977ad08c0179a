package main

import (
	"github.com/jonathan/jobfit/internal/types"
	"github.com/spf13/cobra"
)

var spinCmd = &cobra.Command{
	Use:   "spin",
	Short: "Rewrite text toward a target company stage",
	Long: "Swap stage vocabulary in a bullet or summary while keeping every metric. " +
		"With --model and llm.enabled, a language model polishes the rule-based rewrite.",
	RunE: runSpin,
}

var spinExamplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Show before/after examples for a stage",
	RunE:  runSpinExamples,
}

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Detect the company stage of a posting and show writing guidance",
	RunE:  runStage,
}

var (
	spinText     string
	spinFile     string
	spinStage    string
	spinModel    bool
	stageJob     string
	stageJobFile string
)

func init() {
	spinCmd.PersistentFlags().StringVarP(&spinStage, "stage", "s", "", "target stage: early, growth or enterprise")
	spinCmd.Flags().StringVar(&spinText, "text", "", "text to rewrite")
	spinCmd.Flags().StringVar(&spinFile, "text-file", "", "file with the text to rewrite")
	spinCmd.Flags().BoolVar(&spinModel, "model", false, "polish the rewrite with the language model")
	spinCmd.AddCommand(spinExamplesCmd)
	rootCmd.AddCommand(spinCmd)

	stageCmd.Flags().StringVar(&stageJob, "job", "", "job posting text")
	stageCmd.Flags().StringVar(&stageJobFile, "job-file", "", "job posting file (.txt, .md or .html)")
	rootCmd.AddCommand(stageCmd)
}

func runSpin(cmd *cobra.Command, _ []string) error {
	text, err := readText(spinText, spinFile, "text")
	if err != nil {
		return err
	}

	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.engine.Spin(cmd.Context(), types.SpinRequest{Text: text, TargetStage: spinStage, UseModel: spinModel})
	if err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		p.PrintSpin(&result)
	}
	return writeJSON(cmd, result)
}

func runSpinExamples(cmd *cobra.Command, _ []string) error {
	stage, err := types.ParseStage(spinStage)
	if err != nil {
		return err
	}
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()
	return writeJSON(cmd, rt.engine.SpinExamples(stage))
}

func runStage(cmd *cobra.Command, _ []string) error {
	text, err := readText(stageJob, stageJobFile, "job")
	if err != nil {
		return err
	}
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	rec, err := rt.engine.SuggestStage(text)
	if err != nil {
		return err
	}
	return writeJSON(cmd, rec)
}
