// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synonyms aggregates alternate names for chemical and biological
// entities from external vocabulary services. Each service is a Provider;
// the Aggregator dispatches on entity category and unions the results.
package synonyms

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
	"github.com/edelweissconnect/cheminsight/pkg/types"
)

// Provider queries a single vocabulary service. Each provider owns the
// parsing of that service's response shape; a provider that finds nothing
// returns an empty slice, not an error.
type Provider interface {
	Name() string
	Synonyms(ctx context.Context, term string) ([]string, error)
}

// Aggregator collects synonyms for an entity from the providers matching
// its category.
type Aggregator struct {
	Client *httputil.Client

	// EnableChEMBL adds the ChEMBL molecule provider for chemicals on top
	// of PubChem.
	EnableChEMBL bool
}

// providersFor returns the vocabulary providers for a category: chemicals
// use PubChem (plus ChEMBL when enabled), genes and proteins union UniProt,
// NCBI Gene, and HGNC, receptors use ChEMBL targets, pathways use KEGG.
func (a *Aggregator) providersFor(cat types.Category) []Provider {
	switch cat {
	case types.CategoryChemical:
		ps := []Provider{&PubChemProvider{Client: a.Client}}
		if a.EnableChEMBL {
			ps = append(ps, &ChEMBLMoleculeProvider{Client: a.Client})
		}
		return ps
	case types.CategoryGene, types.CategoryProtein:
		return []Provider{
			&UniProtProvider{Client: a.Client},
			&NCBIGeneProvider{Client: a.Client},
			&HGNCProvider{Client: a.Client},
		}
	case types.CategoryReceptor:
		return []Provider{&ChEMBLTargetProvider{Client: a.Client}}
	case types.CategoryPathway:
		return []Provider{&KEGGProvider{Client: a.Client}}
	default:
		return nil
	}
}

// Collect queries the providers for the entity's category and returns the
// deduplicated synonym set. The entity name is always the first term, even
// when every provider comes back empty. A failing provider contributes
// nothing and is reported as a warning on w. limit caps the total set size
// including the canonical name; 0 keeps only the canonical name and a
// negative limit disables truncation.
func (a *Aggregator) Collect(ctx context.Context, entity types.Entity, limit int, w io.Writer) types.SynonymSet {
	return collectFrom(ctx, a.providersFor(entity.Category), entity, limit, w)
}

func collectFrom(ctx context.Context, providers []Provider, entity types.Entity, limit int, w io.Writer) types.SynonymSet {
	canonical := strings.TrimSpace(entity.Name)
	terms := []string{canonical}
	seen := map[string]bool{canonical: true}

	for _, p := range providers {
		syns, err := p.Synonyms(ctx, canonical)
		if err != nil {
			fmt.Fprintf(w, "warning: %s synonyms for %q: %v\n", p.Name(), canonical, err)
			continue
		}
		for _, s := range syns {
			s = strings.TrimSpace(s)
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			terms = append(terms, s)
		}
	}

	if limit >= 0 && len(terms) > limit {
		if limit == 0 {
			terms = terms[:1]
		} else {
			terms = terms[:limit]
		}
	}

	return types.SynonymSet{Name: entity.Name, Terms: terms}
}
