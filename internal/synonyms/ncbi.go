// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synonyms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
)

// ncbiEutilsBase is the NCBI E-utilities endpoint used for gene lookups.
// Declared as a var so tests can substitute an httptest server.
var ncbiEutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// NCBIGeneProvider retrieves gene aliases from the NCBI Gene database via
// an esearch/esummary pair.
type NCBIGeneProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *NCBIGeneProvider) Name() string { return "ncbi_gene" }

type geneSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// geneSummaryResponse keys the per-gene summaries by gene ID, so the result
// map is decoded lazily and only the requested ID is unmarshaled.
type geneSummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type geneSummary struct {
	OtherAliases string `json:"otheraliases"`
}

// Synonyms looks up the first gene ID matching the symbol and returns its
// alias list.
func (p *NCBIGeneProvider) Synonyms(ctx context.Context, term string) ([]string, error) {
	searchURL := fmt.Sprintf("%s/esearch.fcgi?db=gene&term=%s&retmode=json",
		ncbiEutilsBase, url.QueryEscape(term+"[Gene Name]"))

	var search geneSearchResponse
	if err := p.Client.GetJSON(ctx, searchURL, &search); err != nil {
		return nil, err
	}
	if len(search.ESearchResult.IDList) == 0 {
		return nil, nil
	}
	geneID := search.ESearchResult.IDList[0]

	summaryURL := fmt.Sprintf("%s/esummary.fcgi?db=gene&id=%s&retmode=json", ncbiEutilsBase, geneID)

	var summaries geneSummaryResponse
	if err := p.Client.GetJSON(ctx, summaryURL, &summaries); err != nil {
		return nil, err
	}
	raw, ok := summaries.Result[geneID]
	if !ok {
		return nil, nil
	}

	var summary geneSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("parsing gene summary for id %s: %w", geneID, err)
	}
	if summary.OtherAliases == "" {
		return nil, nil
	}
	return strings.Split(summary.OtherAliases, ", "), nil
}
