// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synonyms

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
)

// uniprotBase is the UniProtKB search endpoint. Declared as a var so tests
// can substitute an httptest server.
var uniprotBase = "https://rest.uniprot.org/uniprotkb/search"

// UniProtProvider retrieves protein and gene names from UniProtKB.
type UniProtProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *UniProtProvider) Name() string { return "uniprot" }

type uniprotResponse struct {
	Results []struct {
		ProteinName string `json:"protein_name"`
		// GeneNames is a space-separated list of gene symbols.
		GeneNames string `json:"gene_names"`
	} `json:"results"`
}

// Synonyms queries UniProtKB for protein and gene names matching the term.
func (p *UniProtProvider) Synonyms(ctx context.Context, term string) ([]string, error) {
	reqURL := fmt.Sprintf("%s?query=%s&fields=protein_name,gene_names", uniprotBase, url.QueryEscape(term))

	var resp uniprotResponse
	if err := p.Client.GetJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range resp.Results {
		if entry.ProteinName != "" {
			names = append(names, entry.ProteinName)
		}
		if entry.GeneNames != "" {
			names = append(names, strings.Fields(entry.GeneNames)...)
		}
	}
	return names, nil
}
