// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/padelf-catalog/pkg/types"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Load the catalog and print a preview table",
	Long: `Datasets loads and validates datasets.yaml and prints one row per dataset
with its id, name, domain, resolution, and access URL. A single invalid entry
fails the whole load; the error names the entry index and field.`,
	RunE: runDatasets,
}

func init() {
	addSourceFlags(datasetsCmd)
	datasetsCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(datasetsCmd)
}

func runDatasets(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}

	datasets, err := newLoader(appConfig()).Load(cmd.Context(), explicitSource(cmd))
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Failed to load or validate metadata.")
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(datasets)
	case "yaml":
		data, err := yaml.Marshal(datasets)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	fmt.Fprintf(w, "Metadata loaded. Datasets: %d\n", len(datasets))
	if len(datasets) == 0 {
		fmt.Fprintln(w, "No datasets yet (datasets.yaml is empty).")
		return nil
	}
	fmt.Fprintln(w)
	formatTable(w, datasets)
	return nil
}

// formatTable prints the dashboard preview columns.
func formatTable(w io.Writer, datasets []types.Dataset) {
	fmt.Fprintf(w, "%-24s  %-36s  %-12s  %-10s  %s\n",
		"dataset_id", "name", "domain", "resolution", "url")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, d := range datasets {
		fmt.Fprintf(w, "%-24s  %-36s  %-12s  %-10s  %s\n",
			truncate(d.DatasetID, 24), truncate(d.Name, 36), d.Domain,
			resolution(d.ResolutionMinutes), d.Access.URL)
	}
}

func resolution(minutes *int) string {
	if minutes == nil {
		return "-"
	}
	return strconv.Itoa(*minutes) + " min"
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
