package types

// HTTPConfig holds settings for the remote catalog fetch. There is no
// timeout or retry setting: a remote load is a single best-effort GET.
type HTTPConfig struct {
	// UserAgent is the User-Agent header sent with the request
	// (e.g. "padelf-catalog/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// Token is an optional bearer token for private raw URLs.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// SourceConfig names where the catalog text comes from. When both are set
// the path wins.
type SourceConfig struct {
	// MetadataPath is a local datasets.yaml path.
	MetadataPath string `json:"metadata_path,omitempty" yaml:"metadata_path,omitempty"`

	// MetadataURL is a remote datasets.yaml URL.
	MetadataURL string `json:"metadata_url,omitempty" yaml:"metadata_url,omitempty"`
}

// IndexConfig holds settings for the dashboard SQLite index.
type IndexConfig struct {
	// DBPath is the SQLite database file (e.g. "padelf.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AppConfig groups all configuration for the CLI.
type AppConfig struct {
	Source SourceConfig `json:"source" yaml:"source"`
	HTTP   HTTPConfig   `json:"http" yaml:"http"`
	Index  IndexConfig  `json:"index" yaml:"index"`
}
