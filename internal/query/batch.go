// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

// Search fields a synonym can be matched against.
const (
	FieldTitleAbstract        = "Title/Abstract"
	FieldMeSHTerms            = "MeSH Terms"
	FieldSupplementaryConcept = "Supplementary Concept"

	fieldPublicationType = "Publication Type"
)

// DefaultBatchSize is how many synonyms go into one query sub-expression.
// Larger batches mean fewer remote calls but risk the upstream query-length
// limit; confirm that limit before raising this.
const DefaultBatchSize = 5

// DefaultFields is the field list synonyms are matched against when the
// caller specifies none.
var DefaultFields = []string{FieldTitleAbstract}

// Options configures batch construction.
type Options struct {
	// Fields lists the search fields each synonym is OR-matched against.
	Fields []string

	// BatchSize chunks synonym lists; zero or negative selects the default.
	BatchSize int

	// Keywords are free-text Title/Abstract terms ANDed onto every query.
	Keywords []string

	// ArticleTypes restricts results to these publication types. Entries
	// outside RecognizedArticleTypes are ignored.
	ArticleTypes []string
}

// SearchQuery is one generated boolean expression plus the synonyms that
// produced it, for traceability. It is immutable and consumed exactly once
// by the orchestrator.
type SearchQuery struct {
	// Expression is the rendered boolean query.
	Expression string

	// Terms lists the compound and target synonyms in this batch.
	Terms []string

	// Options records the filter parameters the query was built with.
	Options Options
}

// BuildBatches chunks compound synonyms (and target synonyms when present)
// into groups of BatchSize and produces one query per compound-chunk, or per
// compound-chunk x target-chunk pair when targets are given. Each chunk is
// OR-joined across the configured fields; keyword and publication-type
// clauses are appended to every query.
func BuildBatches(compounds, targets []string, opts Options) []SearchQuery {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	fields := opts.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}

	keywords := keywordClause(opts.Keywords)
	articleTypes := articleTypeClause(opts.ArticleTypes)

	var queries []SearchQuery
	for _, compoundChunk := range chunk(compounds, batchSize) {
		base := fieldClause(compoundChunk, fields)
		if len(targets) == 0 {
			expr := And(base, keywords, articleTypes)
			queries = append(queries, SearchQuery{
				Expression: Render(expr),
				Terms:      compoundChunk,
				Options:    opts,
			})
			continue
		}
		for _, targetChunk := range chunk(targets, batchSize) {
			expr := And(base, fieldClause(targetChunk, fields), keywords, articleTypes)
			terms := make([]string, 0, len(compoundChunk)+len(targetChunk))
			terms = append(terms, compoundChunk...)
			terms = append(terms, targetChunk...)
			queries = append(queries, SearchQuery{
				Expression: Render(expr),
				Terms:      terms,
				Options:    opts,
			})
		}
	}
	return queries
}

// chunk splits terms into groups of at most size.
func chunk(terms []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(terms); start += size {
		end := start + size
		if end > len(terms) {
			end = len(terms)
		}
		chunks = append(chunks, terms[start:end])
	}
	return chunks
}

// fieldClause ORs every (term, field) pair of a chunk.
func fieldClause(terms, fields []string) Expr {
	var ors []Expr
	for _, t := range terms {
		for _, f := range fields {
			ors = append(ors, Term(t, f))
		}
	}
	return Or(ors...)
}

// keywordClause ORs free-text keywords over Title/Abstract.
func keywordClause(keywords []string) Expr {
	var ors []Expr
	for _, kw := range keywords {
		if kw != "" {
			ors = append(ors, Term(kw, FieldTitleAbstract))
		}
	}
	return Or(ors...)
}

// articleTypeClause ORs recognized publication types; unrecognized entries
// are dropped (callers filter and warn beforehand).
func articleTypeClause(articleTypes []string) Expr {
	var ors []Expr
	for _, at := range articleTypes {
		if IsRecognizedArticleType(at) {
			ors = append(ors, Phrase(at, fieldPublicationType))
		}
	}
	return Or(ors...)
}
