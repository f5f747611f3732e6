// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates a literature search task: name resolution,
// synonym expansion, query batching, rate-limited PubMed execution, and
// per-pair record selection. One Run call processes one task; the pipeline
// keeps no state between runs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/edelweissconnect/cheminsight/internal/pubmed"
	"github.com/edelweissconnect/cheminsight/internal/query"
	"github.com/edelweissconnect/cheminsight/internal/records"
	"github.com/edelweissconnect/cheminsight/internal/resolve"
	"github.com/edelweissconnect/cheminsight/internal/synonyms"
	"github.com/edelweissconnect/cheminsight/pkg/types"
)

const (
	defaultResultsPerPair = 10
	defaultMaxRecords     = 1000
	defaultThrottleEvery  = 3
	defaultThrottleDelay  = time.Second
)

// noTarget marks records from compound-only searches.
const noTarget = "N/A"

// Pipeline wires the stages together. W receives streamed warnings as the
// run progresses; the same warnings are accumulated in the Output.
type Pipeline struct {
	Resolver *resolve.Resolver
	Synonyms *synonyms.Aggregator
	PubMed   *pubmed.Client
	Config   types.Config
	W        io.Writer
}

// Output is the result of one task run.
type Output struct {
	// Records are the selected article records across all compound-target
	// pairs, deduplicated, each tagged with the pair that produced it.
	Records []types.ArticleRecord

	// Warnings lists every non-fatal problem encountered, in order.
	Warnings []string

	// QueriesRun counts PubMed search queries attempted.
	QueriesRun int

	// RecordsFetched counts article records fetched before selection.
	RecordsFetched int

	// DupsRemoved counts records dropped as duplicates.
	DupsRemoved int
}

// Run executes the task. Individual query or record failures are reported
// as warnings and skipped; the only fatal errors are an invalid task and
// context cancellation.
func (p *Pipeline) Run(ctx context.Context, task types.TaskDescriptor) (Output, error) {
	out := Output{}
	if err := validateTask(task); err != nil {
		return out, err
	}

	r := &run{p: p, out: &out}

	recognizedTypes, unrecognized := query.FilterArticleTypes(task.ArticleTypes)
	for _, at := range unrecognized {
		r.warnf("skipping unrecognized article type %q", at)
	}

	targetSets, err := r.expandTargets(ctx, task)
	if err != nil {
		return out, err
	}

	resultsPerPair := task.ResultsPerPair
	if resultsPerPair == 0 {
		resultsPerPair = defaultResultsPerPair
	}

	for _, compound := range sortedKeys(task.Compounds) {
		compoundSet, err := r.expandCompound(ctx, compound, task.Compounds[compound])
		if err != nil {
			return out, err
		}

		if len(targetSets) == 0 {
			recs, err := r.searchPair(ctx, task, compoundSet.Terms, nil, recognizedTypes)
			if err != nil {
				return out, err
			}
			r.selectPair(recs, resultsPerPair, compound, noTarget)
			continue
		}
		for _, target := range sortedKeys(task.Targets) {
			recs, err := r.searchPair(ctx, task, compoundSet.Terms, targetSets[target].Terms, recognizedTypes)
			if err != nil {
				return out, err
			}
			r.selectPair(recs, resultsPerPair, compound, target)
		}
	}

	out.Records, out.DupsRemoved = dedupeAcrossPairs(out.Records, out.DupsRemoved)
	return out, nil
}

func validateTask(task types.TaskDescriptor) error {
	if len(task.Compounds) == 0 {
		return errors.New("task has no compounds")
	}
	if task.EndYear > 0 && task.StartYear > task.EndYear {
		return fmt.Errorf("start year %d is after end year %d", task.StartYear, task.EndYear)
	}
	if task.ResultsPerPair < 0 {
		return fmt.Errorf("results per pair must not be negative, got %d", task.ResultsPerPair)
	}
	return nil
}

// run carries the mutable state of one Run call.
type run struct {
	p          *Pipeline
	out        *Output
	sinceSleep int
}

func (r *run) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.out.Warnings = append(r.out.Warnings, msg)
	if r.p.W != nil {
		fmt.Fprintf(r.p.W, "warning: %s\n", msg)
	}
}

// expandCompound produces the search terms for one compound. A pre-expanded
// synonym list is used as-is with the original name kept first; otherwise
// the name is resolved (CAS numbers become chemical names) and the synonym
// providers are queried.
func (r *run) expandCompound(ctx context.Context, name string, provided []string) (types.SynonymSet, error) {
	if terms := withCanonicalFirst(name, provided); len(terms) > 1 {
		return types.SynonymSet{Name: name, Terms: terms}, nil
	}

	resolved, err := r.p.Resolver.Resolve(ctx, name)
	if err != nil {
		if ctx.Err() != nil {
			return types.SynonymSet{}, ctx.Err()
		}
		r.warnf("resolving %q: %v", name, err)
	}

	entity := types.Entity{Name: resolved, Category: types.CategoryChemical}
	set := r.p.Synonyms.Collect(ctx, entity, r.p.Config.Synonyms.MaxPerCompound, r.warnWriter())
	if ctx.Err() != nil {
		return types.SynonymSet{}, ctx.Err()
	}
	set.Name = name
	return set, nil
}

// expandTargets expands every target up front so each compound pairs with
// the same target term lists.
func (r *run) expandTargets(ctx context.Context, task types.TaskDescriptor) (map[string]types.SynonymSet, error) {
	sets := make(map[string]types.SynonymSet, len(task.Targets))
	for _, target := range sortedKeys(task.Targets) {
		if terms := withCanonicalFirst(target, task.Targets[target]); len(terms) > 1 {
			sets[target] = types.SynonymSet{Name: target, Terms: terms}
			continue
		}
		entity := types.Entity{Name: target, Category: types.CategoryGene}
		set := r.p.Synonyms.Collect(ctx, entity, r.p.Config.Synonyms.MaxPerTarget, r.warnWriter())
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		set.Name = target
		sets[target] = set
	}
	return sets, nil
}

// warnWriter adapts warnf to the io.Writer the synonym aggregator expects.
func (r *run) warnWriter() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		msg := strings.TrimSuffix(strings.TrimPrefix(string(p), "warning: "), "\n")
		r.warnf("%s", msg)
		return len(p), nil
	})
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

// searchPair runs every batched query for one compound-target pair and
// fetches the records behind the returned PMIDs. Failed queries and failed
// record fetches are warned about and skipped.
func (r *run) searchPair(ctx context.Context, task types.TaskDescriptor, compoundTerms, targetTerms, articleTypes []string) ([]types.ArticleRecord, error) {
	queries := query.BuildBatches(compoundTerms, targetTerms, query.Options{
		BatchSize:    r.p.Config.PubMed.BatchSize,
		Keywords:     task.AdditionalKeywords,
		ArticleTypes: articleTypes,
	})

	maxRecords := task.MaxRecordsPerQuery
	if maxRecords == 0 {
		maxRecords = defaultMaxRecords
	}

	var recs []types.ArticleRecord
	seen := make(map[string]bool)
	for _, q := range queries {
		expr := q.Expression
		if task.EndYear > 0 {
			expr += fmt.Sprintf(` AND ("%d/01/01"[PDat] : "%d/12/31"[PDat])`, task.StartYear, task.EndYear)
		}

		r.out.QueriesRun++
		pmids, err := r.p.PubMed.PMIDs(ctx, expr, maxRecords)
		if throttleErr := r.throttle(ctx); throttleErr != nil {
			return recs, throttleErr
		}
		if err != nil {
			if ctx.Err() != nil {
				return recs, ctx.Err()
			}
			r.warnf("search %q: %v", expr, err)
			continue
		}

		for _, pmid := range pmids {
			if seen[pmid] {
				continue
			}
			seen[pmid] = true
			rec, err := r.p.PubMed.Article(ctx, pmid)
			if err != nil {
				if ctx.Err() != nil {
					return recs, ctx.Err()
				}
				r.warnf("fetching PMID %s: %v", pmid, err)
				continue
			}
			r.out.RecordsFetched++
			recs = append(recs, *rec)
		}
	}
	return recs, nil
}

// throttle pauses after every ThrottleEvery search queries. The sleep is
// context-cancellable.
func (r *run) throttle(ctx context.Context) error {
	every := r.p.Config.PubMed.ThrottleEvery
	if every <= 0 {
		every = defaultThrottleEvery
	}
	delay := r.p.Config.PubMed.ThrottleDelay
	if delay <= 0 {
		delay = defaultThrottleDelay
	}

	r.sinceSleep++
	if r.sinceSleep < every {
		return nil
	}
	r.sinceSleep = 0

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// selectPair keeps the newest resultsPerPair records of a pair and tags
// each with the original compound and target names.
func (r *run) selectPair(recs []types.ArticleRecord, resultsPerPair int, compound, target string) {
	selected, removed := records.Select(recs, resultsPerPair)
	r.out.DupsRemoved += removed
	for i := range selected {
		selected[i].Compound = compound
		selected[i].Target = target
	}
	r.out.Records = append(r.out.Records, selected...)
}

// withCanonicalFirst returns the provided synonym list with blanks removed
// and the original name first. A result of length 1 means nothing usable
// was provided.
func withCanonicalFirst(name string, provided []string) []string {
	terms := []string{name}
	seen := map[string]bool{name: true}
	for _, s := range provided {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		terms = append(terms, s)
	}
	return terms
}

// dedupeAcrossPairs drops records already emitted for the same pair. The
// same article surviving selection for two different pairs is kept twice;
// the pair columns make those distinct rows.
func dedupeAcrossPairs(recs []types.ArticleRecord, removed int) ([]types.ArticleRecord, int) {
	type key struct {
		title, pmid, compound, target string
	}
	seen := make(map[key]bool, len(recs))
	kept := recs[:0:0]
	for _, rec := range recs {
		k := key{rec.Title, rec.PMID, rec.Compound, rec.Target}
		if seen[k] {
			removed++
			continue
		}
		seen[k] = true
		kept = append(kept, rec)
	}
	return kept, removed
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
