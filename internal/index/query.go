// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/padelf-catalog/pkg/types"
)

// Filter holds query parameters. Empty fields do not filter.
type Filter struct {
	// Query is an FTS5 match expression over name, abbreviation, features.
	Query string

	Domain  string
	Type    string
	Horizon string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether f has no search terms or filters.
func (f Filter) IsEmpty() bool {
	return f.Query == "" && f.Domain == "" && f.Type == "" && f.Horizon == ""
}

// Query returns indexed datasets matching f. Full-text queries are ranked
// by relevance; otherwise results keep catalog order.
func (s *Store) Query(ctx context.Context, f Filter) ([]types.Dataset, error) {
	maxResults := f.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	if f.Query != "" {
		qb.WriteString(`SELECT d.doc FROM datasets_fts
			JOIN datasets d ON d.position = datasets_fts.rowid
			WHERE datasets_fts MATCH ?`)
		args = append(args, f.Query)
	} else {
		qb.WriteString(`SELECT d.doc FROM datasets d WHERE 1=1`)
	}

	if f.Domain != "" {
		qb.WriteString(` AND d.domain = ?`)
		args = append(args, f.Domain)
	}
	if f.Type != "" {
		qb.WriteString(` AND d.type = ?`)
		args = append(args, f.Type)
	}
	if f.Horizon != "" {
		qb.WriteString(` AND d.position IN (SELECT position FROM dataset_horizons WHERE horizon = ?)`)
		args = append(args, f.Horizon)
	}

	if f.Query != "" {
		qb.WriteString(` ORDER BY datasets_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY d.position`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	results := []types.Dataset{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var d types.Dataset
		if err := json.Unmarshal([]byte(doc), &d); err != nil {
			return nil, fmt.Errorf("decoding indexed dataset: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// Counts returns the number of indexed datasets per domain.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT domain, count(*) FROM datasets GROUP BY domain`)
	if err != nil {
		return nil, fmt.Errorf("counting datasets: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			domain string
			n      int
		)
		if err := rows.Scan(&domain, &n); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		counts[domain] = n
	}
	return counts, rows.Err()
}
