// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory of plain-text files.
// The filename is the key and the trimmed file contents are the value.
//
// The only key the catalog loader uses is KeyGitHubToken, sent as a bearer
// token when the catalog URL points at a private repository.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDir is where the CLI looks for secrets.
const DefaultDir = ".secrets/"

// KeyGitHubToken names the file holding a GitHub personal access token.
const KeyGitHubToken = "github-token"

// Store is a loaded set of secrets.
type Store map[string]string

// Get returns the value for key, or "" when it is not set.
func (s Store) Get(key string) string {
	return s[key]
}

// Keys returns the names of all loaded secrets, sorted.
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error. Files that cannot be read are reported on warn and
// skipped; warn may be nil.
func Load(dir string, warn io.Writer) (Store, error) {
	if warn == nil {
		warn = io.Discard
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}
