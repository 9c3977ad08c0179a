package main

import (
	"github.com/jonathan/jobfit/internal/types"
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select resume bullets for a job posting",
	Long: "Allocate bullets across competency areas in proportion to the posting's emphasis " +
		"and fill each area from the library (or from --pool, without recording usage).",
	RunE: runSelect,
}

var (
	selectJob     string
	selectJobFile string
	selectCount   int
	selectUnused  bool
	selectPool    string
	selectLibFile string
)

func init() {
	f := selectCmd.Flags()
	f.StringVar(&selectJob, "job", "", "job posting text")
	f.StringVar(&selectJobFile, "job-file", "", "job posting file (.txt, .md or .html)")
	f.IntVarP(&selectCount, "count", "n", 0, "bullets to select (default target_bullets)")
	f.BoolVar(&selectUnused, "prefer-unused", false, "rank never-used items first")
	f.StringVar(&selectPool, "pool", "", "JSON file with an array of library items to select from")
	f.StringVar(&selectLibFile, "library-file", "", "library import file to load before selecting")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, _ []string) error {
	jobText, err := readText(selectJob, selectJobFile, "job")
	if err != nil {
		return err
	}
	req := types.SelectRequest{JobText: jobText, Count: selectCount, PreferUnused: selectUnused}

	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	var result *types.SelectionResult
	if selectPool != "" {
		var pool []types.LibraryItem
		if err := readJSON(selectPool, &pool); err != nil {
			return err
		}
		result, err = rt.engine.SelectFromPool(pool, req)
	} else {
		if err := seedLibrary(cmd.Context(), rt, selectLibFile); err != nil {
			return err
		}
		result, err = rt.engine.Select(cmd.Context(), req)
	}
	if err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		p.PrintSelection(result)
	}
	return writeJSON(cmd, result)
}
