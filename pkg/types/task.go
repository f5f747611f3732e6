// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TaskDescriptor is the sole parameter object the pipeline consumes. The
// delivery shell (CLI flags or a YAML task file) assembles it; the core never
// mutates it.
type TaskDescriptor struct {
	// Compounds maps each original compound name to its synonym list. An
	// empty list means the pipeline should resolve the name and collect
	// synonyms itself.
	Compounds map[string][]string `json:"compounds" yaml:"compounds"`

	// Targets maps each original target (gene/protein) name to its synonym
	// list. May be empty for compound-only searches.
	Targets map[string][]string `json:"targets,omitempty" yaml:"targets,omitempty"`

	// StartYear and EndYear bound the publication date range. EndYear 0
	// disables the date clause.
	StartYear int `json:"start_year" yaml:"start_year"`
	EndYear   int `json:"end_year" yaml:"end_year"`

	// AdditionalKeywords are free-text terms ANDed onto every query.
	AdditionalKeywords []string `json:"additional_keywords,omitempty" yaml:"additional_keywords,omitempty"`

	// ArticleTypes restricts results to the listed PubMed publication
	// types. Entries outside the recognized list are skipped with a warning.
	ArticleTypes []string `json:"article_types,omitempty" yaml:"article_types,omitempty"`

	// ResultsPerPair is how many records to keep per compound-target pair
	// (most recent first). Zero selects the default of 10.
	ResultsPerPair int `json:"results_per_pair" yaml:"results_per_pair"`

	// MaxRecordsPerQuery caps the identifier list fetched per query.
	// Zero selects the default of 1000.
	MaxRecordsPerQuery int `json:"max_records_per_query,omitempty" yaml:"max_records_per_query,omitempty"`
}
