package main

import (
	"fmt"
	"os"

	"github.com/jonathan/jobfit/internal/library"
	"github.com/jonathan/jobfit/internal/types"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the bullet library",
	Long: "Manage the bullet library. Changes persist only when database_url is configured; " +
		"otherwise --library-file loads an import file into a temporary in-memory library.",
}

var libraryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Validate and add statements from a JSON file",
	RunE:  runLibraryAdd,
}

var libraryImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a library file ({\"items\": [...]})",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryImport,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library items, best first",
	RunE:  runLibraryList,
}

var libraryGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one library item",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryGet,
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a library item",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryDelete,
}

var libraryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics",
	RunE:  runLibraryStats,
}

var (
	libraryFile       string
	libraryAddFile    string
	libraryAddID      string
	libraryCompetency string
	libraryStage      string
	libraryMinQuality int
	libraryTag        string
)

func init() {
	libraryCmd.PersistentFlags().StringVar(&libraryFile, "library-file", "", "library import file to load first")

	libraryAddCmd.Flags().StringVarP(&libraryAddFile, "file", "f", "", "JSON file with one statement or an array of statements")
	libraryAddCmd.Flags().StringVar(&libraryAddID, "id", "", "explicit id (single statement only)")

	libraryListCmd.Flags().StringVar(&libraryCompetency, "competency", "", "filter by competency area")
	libraryListCmd.Flags().StringVar(&libraryStage, "stage", "", "filter by company stage")
	libraryListCmd.Flags().IntVar(&libraryMinQuality, "min-quality", 0, "minimum quality score")
	libraryListCmd.Flags().StringVar(&libraryTag, "tag", "", "filter by tag")

	libraryCmd.AddCommand(libraryAddCmd, libraryImportCmd, libraryListCmd, libraryGetCmd, libraryDeleteCmd, libraryStatsCmd)
	rootCmd.AddCommand(libraryCmd)
}

// openLibrary builds the runtime and loads --library-file when given
func openLibrary(cmd *cobra.Command) (*runtime, error) {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return nil, err
	}
	if err := seedLibrary(cmd.Context(), rt, libraryFile); err != nil {
		rt.Close()
		return nil, err
	}
	if !rt.persist {
		logger.Debug("library is in-memory; changes are not saved")
	}
	return rt, nil
}

func runLibraryAdd(cmd *cobra.Command, _ []string) error {
	if libraryAddFile == "" {
		return fmt.Errorf("--file is required")
	}
	statements, err := readStatements(libraryAddFile)
	if err != nil {
		return err
	}
	if libraryAddID != "" && len(statements) > 1 {
		return fmt.Errorf("--id can only be used with a single statement")
	}

	rt, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	added := make([]types.LibraryItem, 0, len(statements))
	for _, stmt := range statements {
		item, err := rt.engine.Library().Add(cmd.Context(), stmt, libraryAddID)
		if err != nil {
			return err
		}
		added = append(added, item)
	}
	return writeJSON(cmd, added)
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	rt, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	report, err := rt.engine.Library().Import(cmd.Context(), raw)
	if err != nil {
		return err
	}
	return writeJSON(cmd, report)
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	f := library.Filter{Competency: libraryCompetency, MinQuality: libraryMinQuality}
	if libraryStage != "" {
		stage, err := types.ParseStage(libraryStage)
		if err != nil {
			return err
		}
		f.CompanyStage = stage
	}
	if libraryTag != "" {
		f.Tags = []string{libraryTag}
	}

	rt, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	items, err := rt.engine.Library().List(cmd.Context(), f)
	if err != nil {
		return err
	}
	return writeJSON(cmd, items)
}

func runLibraryGet(cmd *cobra.Command, args []string) error {
	rt, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	item, err := rt.engine.Library().Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd, item)
}

func runLibraryDelete(cmd *cobra.Command, args []string) error {
	rt, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.engine.Library().Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}

func runLibraryStats(cmd *cobra.Command, _ []string) error {
	rt, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	stats, err := rt.engine.Library().Stats(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(cmd, stats)
}
