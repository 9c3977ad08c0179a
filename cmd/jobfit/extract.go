package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/jobfit/internal/ingestion"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Extract plain text from a .txt, .md or .html job posting or resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var extractOut string

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "write <name>.txt and <name>.meta.json to this directory")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	doc, err := ingestion.ExtractFile(args[0])
	if err != nil {
		return err
	}
	if extractOut == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), doc.Text)
		return err
	}

	name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	if err := ingestion.WriteOutput(extractOut, name, doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Text: %s\n", filepath.Join(extractOut, name+".txt"))
	fmt.Fprintf(cmd.OutOrStdout(), "Metadata: %s\n", filepath.Join(extractOut, name+".meta.json"))
	return nil
}
