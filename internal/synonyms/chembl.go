// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synonyms

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
)

// chemblBase is the ChEMBL data API endpoint. Declared as a var so tests
// can substitute an httptest server.
var chemblBase = "https://www.ebi.ac.uk/chembl/api/data"

// ChEMBLMoleculeProvider retrieves small-molecule preferred names from ChEMBL.
type ChEMBLMoleculeProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *ChEMBLMoleculeProvider) Name() string { return "chembl_molecule" }

type chemblMoleculeResponse struct {
	Molecules []struct {
		PrefName string `json:"pref_name"`
	} `json:"molecules"`
}

// Synonyms queries molecules whose preferred name contains the term.
func (p *ChEMBLMoleculeProvider) Synonyms(ctx context.Context, term string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/molecule.json?pref_name__icontains=%s", chemblBase, url.QueryEscape(term))

	var resp chemblMoleculeResponse
	if err := p.Client.GetJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	var names []string
	for _, m := range resp.Molecules {
		if m.PrefName != "" {
			names = append(names, m.PrefName)
		}
	}
	return names, nil
}

// ChEMBLTargetProvider retrieves receptor and transporter preferred names
// from the ChEMBL target listing.
type ChEMBLTargetProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *ChEMBLTargetProvider) Name() string { return "chembl_target" }

type chemblTargetResponse struct {
	Targets []struct {
		PrefName string `json:"pref_name"`
	} `json:"targets"`
}

// Synonyms queries targets whose preferred name contains the term.
func (p *ChEMBLTargetProvider) Synonyms(ctx context.Context, term string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/target.json?pref_name__icontains=%s", chemblBase, url.QueryEscape(term))

	var resp chemblTargetResponse
	if err := p.Client.GetJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	var names []string
	for _, t := range resp.Targets {
		if t.PrefName != "" {
			names = append(names, t.PrefName)
		}
	}
	return names, nil
}
