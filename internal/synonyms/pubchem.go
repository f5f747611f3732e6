// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synonyms

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
)

// pubchemBase is the PubChem PUG-REST endpoint. Declared as a var so tests
// can substitute an httptest server.
var pubchemBase = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"

// PubChemProvider retrieves chemical synonyms from PubChem.
type PubChemProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *PubChemProvider) Name() string { return "pubchem" }

// PubChem synonym JSON structures.
type pubchemSynonymResponse struct {
	InformationList struct {
		Information []struct {
			CID     int64    `json:"CID"`
			Synonym []string `json:"Synonym"`
		} `json:"Information"`
	} `json:"InformationList"`
}

// Synonyms queries the compound-by-name synonym listing.
func (p *PubChemProvider) Synonyms(ctx context.Context, term string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/compound/name/%s/synonyms/JSON", pubchemBase, url.PathEscape(term))

	var resp pubchemSynonymResponse
	if err := p.Client.GetJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}
	if len(resp.InformationList.Information) == 0 {
		return nil, nil
	}
	return resp.InformationList.Information[0].Synonym, nil
}
