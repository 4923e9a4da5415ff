// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/padelf-catalog/internal/index"
	"github.com/pdiddy/padelf-catalog/internal/schema"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the dashboard index (build, query, status)",
	Long: `Index keeps a local SQLite snapshot of the validated catalog so the
dashboard can filter by domain, type, and horizon and search dataset names
and features. The snapshot is rebuilt from a fresh load on every build.`,
}

// --- build subcommand ---

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Load the catalog and replace the index contents",
	RunE:  runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	cfg := appConfig()
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Index.DBPath = db
	}

	loader := newLoader(cfg)
	desc := loader.Resolve(explicitSource(cmd))
	datasets, err := loader.Load(cmd.Context(), &desc)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Failed to load or validate metadata.")
		return err
	}

	store, err := index.Open(cfg.Index)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Replace(cmd.Context(), desc.Location(), datasets)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d datasets from %s (snapshot %s)\n",
		snap.Count, snap.Source, snap.ID)
	return nil
}

// --- query subcommand ---

var indexQueryCmd = &cobra.Command{
	Use:   "query [terms]",
	Short: "Search the index with full-text terms and filters",
	Long: `Query searches dataset names, abbreviations, and features with FTS5
and narrows the result by --domain, --type, and --horizon. Without terms,
results keep catalog order.`,
	RunE: runIndexQuery,
}

func runIndexQuery(cmd *cobra.Command, args []string) error {
	f := index.Filter{Query: strings.Join(args, " ")}
	f.Domain, _ = cmd.Flags().GetString("domain")
	f.Type, _ = cmd.Flags().GetString("type")
	f.Horizon, _ = cmd.Flags().GetString("horizon")
	f.MaxResults, _ = cmd.Flags().GetInt("limit")
	jsonOut, _ := cmd.Flags().GetBool("json")

	if err := checkFilter(f); err != nil {
		return err
	}

	store, err := openIndex(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Query(cmd.Context(), f)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	if len(results) == 0 {
		if f.IsEmpty() {
			fmt.Fprintln(w, "Index is empty. Run 'padelf index build' first.")
		} else {
			fmt.Fprintln(w, "No matching datasets.")
		}
		return nil
	}
	if f.Horizon != "" {
		fmt.Fprintf(w, "Horizon: %s (%s)\n\n", f.Horizon, schema.HorizonLabel(f.Horizon))
	}
	formatTable(w, results)
	return nil
}

// checkFilter rejects filter values outside the schema vocabulary so a typo
// does not silently return nothing.
func checkFilter(f index.Filter) error {
	if f.Domain != "" && !schema.IsDomain(f.Domain) {
		return fmt.Errorf("unknown domain %q (want one of %v)", f.Domain, schema.Domains())
	}
	if f.Type != "" && !schema.IsDatasetType(f.Type) {
		return fmt.Errorf("unknown type %q (want one of %v)", f.Type, schema.DatasetTypes())
	}
	if f.Horizon != "" && !schema.IsHorizon(f.Horizon) {
		return fmt.Errorf("unknown horizon %q (want one of %s)", f.Horizon, horizonChoices())
	}
	return nil
}

// horizonChoices lists horizon tokens with their labels,
// e.g. "lt (long-term), mt (medium-term)".
func horizonChoices() string {
	hs := schema.Horizons()
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = fmt.Sprintf("%s (%s)", h, schema.HorizonLabel(h))
	}
	return strings.Join(out, ", ")
}

// --- status subcommand ---

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current snapshot and per-domain counts",
	RunE:  runIndexStatus,
}

func runIndexStatus(cmd *cobra.Command, args []string) error {
	store, err := openIndex(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	snap, ok, err := store.Latest(cmd.Context())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Index is empty. Run 'padelf index build' first.")
		return nil
	}

	counts, err := store.Counts(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Snapshot:  %s\n", snap.ID)
	fmt.Fprintf(w, "Source:    %s\n", snap.Source)
	fmt.Fprintf(w, "Built:     %s\n", snap.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Datasets:  %d\n", snap.Count)

	domains := make([]string, 0, len(counts))
	for d := range counts {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	for _, d := range domains {
		fmt.Fprintf(w, "  %-12s %d\n", d, counts[d])
	}
	return nil
}

func openIndex(cmd *cobra.Command) (*index.Store, error) {
	cfg := appConfig().Index
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	return index.Open(cfg)
}

func init() {
	for _, c := range []*cobra.Command{indexBuildCmd, indexQueryCmd, indexStatusCmd} {
		c.Flags().String("db", "", "index database path (default from index.db_path)")
	}

	addSourceFlags(indexBuildCmd)

	indexQueryCmd.Flags().String("domain", "", "filter by domain")
	indexQueryCmd.Flags().String("type", "", "filter by dataset type")
	indexQueryCmd.Flags().String("horizon", "", "filter by forecast horizon: "+horizonChoices())
	indexQueryCmd.Flags().Int("limit", 0, "maximum results (default from index.max_results)")
	indexQueryCmd.Flags().Bool("json", false, "output results as JSON")

	indexCmd.AddCommand(indexBuildCmd, indexQueryCmd, indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}
