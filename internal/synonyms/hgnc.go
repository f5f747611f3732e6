// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synonyms

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
)

// hgncBase is the HGNC REST endpoint. Declared as a var so tests can
// substitute an httptest server.
var hgncBase = "https://rest.genenames.org"

// HGNCProvider retrieves gene alias symbols from HGNC. The API answers XML
// unless JSON is requested explicitly, so calls go through GetJSON for the
// Accept header.
type HGNCProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *HGNCProvider) Name() string { return "hgnc" }

type hgncResponse struct {
	Response struct {
		Docs []struct {
			AliasSymbol []string `json:"alias_symbol"`
		} `json:"docs"`
	} `json:"response"`
}

// Synonyms fetches the HGNC record for a gene symbol and returns its aliases.
func (p *HGNCProvider) Synonyms(ctx context.Context, term string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/fetch/symbol/%s", hgncBase, url.PathEscape(term))

	var resp hgncResponse
	if err := p.Client.GetJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}
	if len(resp.Response.Docs) == 0 {
		return nil, nil
	}
	return resp.Response.Docs[0].AliasSymbol, nil
}
