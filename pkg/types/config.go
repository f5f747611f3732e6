package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "cheminsight/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the remote fetch client.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries is the number of retry attempts after a transient failure
	// (default 3). Backoff doubles each attempt.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SynonymConfig holds settings for synonym aggregation.
type SynonymConfig struct {
	// MaxPerCompound caps each compound's synonym set, canonical name
	// included. 0 keeps only the canonical name; negative disables the cap.
	MaxPerCompound int `json:"max_per_compound" yaml:"max_per_compound"`

	// MaxPerTarget caps each target's synonym set, same semantics.
	MaxPerTarget int `json:"max_per_target" yaml:"max_per_target"`

	// EnableChEMBL adds the ChEMBL molecule provider for chemicals on top
	// of PubChem.
	EnableChEMBL bool `json:"enable_chembl" yaml:"enable_chembl"`
}

// PubMedConfig holds settings for the literature search client and the
// orchestration cadence.
type PubMedConfig struct {
	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is sent with E-utilities requests per NCBI usage policy.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// BatchSize is how many synonyms go into one query sub-expression
	// (default 5). Larger batches mean fewer remote calls but risk the
	// upstream query-length limit; confirm that limit before raising this.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// ThrottleEvery and ThrottleDelay pause the query loop after every
	// ThrottleEvery queries (defaults: 3 queries, 1s). Fixed cadence.
	ThrottleEvery int           `json:"throttle_every" yaml:"throttle_every"`
	ThrottleDelay time.Duration `json:"throttle_delay" yaml:"throttle_delay"`
}

// CacheConfig holds settings for the optional E-utilities response cache.
type CacheConfig struct {
	// Enabled turns the SQLite response cache on. Off by default: the core
	// keeps no state across tasks, the cache is shell infrastructure.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the cache database.
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all stage configurations.
type Config struct {
	Fetch    FetchConfig   `json:"fetch" yaml:"fetch"`
	Synonyms SynonymConfig `json:"synonyms" yaml:"synonyms"`
	PubMed   PubMedConfig  `json:"pubmed" yaml:"pubmed"`
	Cache    CacheConfig   `json:"cache" yaml:"cache"`
}
