package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/padelf-catalog/internal/catalog"
	"github.com/pdiddy/padelf-catalog/internal/source"
	"github.com/pdiddy/padelf-catalog/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that a local datasets.yaml loads",
	Long: `Verify loads a local datasets.yaml, reports how many datasets it holds,
and prints the first few. Use it to check a generated catalog before
publishing it.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("path", "", "local datasets.yaml to verify (required)")
	verifyCmd.Flags().Int("show", 3, "number of datasets to print")
	verifyCmd.MarkFlagRequired("path")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	show, _ := cmd.Flags().GetInt("show")

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Loading metadata from %s...\n", path)

	loader := catalog.NewLoader(catalog.WithLogger(logger))
	datasets, err := loader.Load(cmd.Context(), &source.Descriptor{Path: path})
	if err != nil {
		// cobra reports err itself.
		fmt.Fprintln(w, "\nFailed to load datasets.")
		return err
	}
	printVerifySummary(w, datasets, show)
	return nil
}

func printVerifySummary(w io.Writer, datasets []types.Dataset, show int) {
	fmt.Fprintf(w, "Success! Loaded %d datasets.\n", len(datasets))
	if show <= 0 || len(datasets) == 0 {
		return
	}
	if show > len(datasets) {
		show = len(datasets)
	}

	fmt.Fprintf(w, "\nFirst %d datasets:\n", show)
	for _, d := range datasets[:show] {
		start := d.StartDate()
		if start == "" {
			start = "n/a"
		}
		fmt.Fprintf(w, "- %s: %s (Start: %s)\n", d.DatasetID, d.Name, start)
	}
}
