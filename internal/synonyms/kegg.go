// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synonyms

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
)

// keggBase is the KEGG REST endpoint. Declared as a var so tests can
// substitute an httptest server.
var keggBase = "https://rest.kegg.jp"

// KEGGProvider retrieves pathway names from KEGG. The find endpoint answers
// tab-separated text, one "id\tname" pair per line.
type KEGGProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *KEGGProvider) Name() string { return "kegg" }

// Synonyms searches KEGG pathways matching the term.
func (p *KEGGProvider) Synonyms(ctx context.Context, term string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/find/pathway/%s", keggBase, url.PathEscape(term))

	text, err := p.Client.GetText(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(text, "\n") {
		_, name, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
