// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve converts CAS registry numbers to canonical chemical names.
// Non-CAS input passes through unchanged.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
)

// Base URLs for the resolution providers. Declared as vars so tests can
// substitute httptest servers.
var (
	pubchemBase = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	cactusBase  = "https://cactus.nci.nih.gov/chemical/structure"
)

// casPattern matches CAS registry numbers: 2-7 digits, 2 digits, check digit
// (e.g. "50-78-2" for aspirin).
var casPattern = regexp.MustCompile(`^\d{2,7}-\d{2}-\d$`)

// ErrNotResolved indicates that no provider recognized the identifier.
var ErrNotResolved = errors.New("no provider resolved the identifier")

// IsCASNumber reports whether s has the lexical shape of a CAS number.
func IsCASNumber(s string) bool {
	return casPattern.MatchString(s)
}

// Resolver maps CAS numbers to IUPAC names via PubChem, with CACTUS as the
// fallback provider.
type Resolver struct {
	Client *httputil.Client
}

// Resolve returns the canonical name for input. Non-CAS input is returned
// unchanged with a nil error. For CAS input it tries PubChem first and
// CACTUS second; success from either short-circuits the other. When both
// fail it returns the original input together with a non-nil error the
// caller should surface as a warning, never as a fatal condition.
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if !IsCASNumber(input) {
		return input, nil
	}

	if name, err := r.pubchemName(ctx, input); err == nil {
		return name, nil
	}
	if name, err := r.cactusName(ctx, input); err == nil {
		return name, nil
	}
	return input, fmt.Errorf("resolving CAS number %q: %w", input, ErrNotResolved)
}

// PubChem PUG-REST JSON structures.
type pubchemCIDResponse struct {
	IdentifierList struct {
		CID []int64 `json:"CID"`
	} `json:"IdentifierList"`
}

type pubchemPropertyResponse struct {
	PropertyTable struct {
		Properties []struct {
			CID       int64  `json:"CID"`
			IUPACName string `json:"IUPACName"`
		} `json:"Properties"`
	} `json:"PropertyTable"`
}

// pubchemName maps a CAS number to a CID and then to the IUPAC name.
func (r *Resolver) pubchemName(ctx context.Context, cas string) (string, error) {
	cidURL := fmt.Sprintf("%s/compound/name/%s/cids/JSON", pubchemBase, url.PathEscape(cas))

	var cids pubchemCIDResponse
	if err := r.Client.GetJSON(ctx, cidURL, &cids); err != nil {
		return "", err
	}
	if len(cids.IdentifierList.CID) == 0 {
		return "", fmt.Errorf("no CID found for %q", cas)
	}

	propURL := fmt.Sprintf("%s/compound/cid/%d/property/IUPACName/JSON", pubchemBase, cids.IdentifierList.CID[0])

	var props pubchemPropertyResponse
	if err := r.Client.GetJSON(ctx, propURL, &props); err != nil {
		return "", err
	}
	if len(props.PropertyTable.Properties) == 0 || props.PropertyTable.Properties[0].IUPACName == "" {
		return "", fmt.Errorf("no IUPAC name found for %q", cas)
	}
	return props.PropertyTable.Properties[0].IUPACName, nil
}

// cactusName queries the CACTUS structure resolver, which answers in plain
// text. An HTML body means the identifier page was not found.
func (r *Resolver) cactusName(ctx context.Context, cas string) (string, error) {
	reqURL := fmt.Sprintf("%s/%s/iupac_name", cactusBase, url.PathEscape(cas))

	text, err := r.Client.GetText(ctx, reqURL)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(text)
	if name == "" || strings.HasPrefix(name, "<") || strings.HasPrefix(name, "Page not found") {
		return "", fmt.Errorf("no IUPAC name found for %q", cas)
	}
	return name, nil
}
