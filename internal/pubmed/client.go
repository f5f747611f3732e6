// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities API: esearch for PMID lists
// and efetch for full article records, projected onto the fixed
// ArticleRecord schema.
package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
	"github.com/edelweissconnect/cheminsight/internal/records"
	"github.com/edelweissconnect/cheminsight/pkg/types"
)

// eutilsBase is the E-utilities endpoint. Declared as a var so tests can
// substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	articleURLBase  = "https://pubmed.ncbi.nlm.nih.gov/"
	legacyURLPrefix = "https://ncbi.nlm.nih.gov/pubmed/"
)

// Client queries PubMed through the shared fetch client. APIKey and Email
// are optional; NCBI grants higher rate limits when they are set.
type Client struct {
	Fetch  *httputil.Client
	APIKey string
	Email  string

	// Base overrides the E-utilities endpoint when non-empty.
	Base string
}

func (c *Client) base() string {
	if c.Base != "" {
		return c.Base
	}
	return eutilsBase
}

type esearchResponse struct {
	ESearchResult struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// PMIDs runs an esearch for the query term and returns up to retmax PMIDs,
// sorted by relevance.
func (c *Client) PMIDs(ctx context.Context, term string, retmax int) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {term},
		"retmode": {"json"},
		"retmax":  {fmt.Sprintf("%d", retmax)},
		"sort":    {"relevance"},
	}
	c.addIdentity(params)

	reqURL := c.base() + "/esearch.fcgi?" + params.Encode()

	var resp esearchResponse
	if err := c.Fetch.GetJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}
	return resp.ESearchResult.IDList, nil
}

// Article fetches one article by PMID and projects it onto the
// ArticleRecord schema. The year comes from the journal issue's PubDate
// Year, or from the leading 4-digit run of a MedlineDate; otherwise it
// stays absent.
func (c *Client) Article(ctx context.Context, pmid string) (*types.ArticleRecord, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {pmid},
		"retmode": {"xml"},
	}
	c.addIdentity(params)

	reqURL := c.base() + "/efetch.fcgi?" + params.Encode()

	body, err := c.Fetch.Get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var set pubmedArticleSet
	if err := xml.Unmarshal(body.Data, &set); err != nil {
		return nil, fmt.Errorf("parsing efetch response for PMID %s: %w", pmid, err)
	}
	if len(set.Articles) == 0 {
		return nil, fmt.Errorf("no article found for PMID %s", pmid)
	}
	return projectArticle(&set.Articles[0]), nil
}

// addIdentity attaches the API key and contact email when configured.
func (c *Client) addIdentity(params url.Values) {
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}
	if c.Email != "" {
		params.Set("email", c.Email)
	}
}

// ArticleURL returns the canonical article page for a PMID.
func ArticleURL(pmid string) string {
	return articleURLBase + pmid + "/"
}

// NormalizeURL rewrites the legacy www-era PubMed URL form to the current
// host. Applied once per record at creation.
func NormalizeURL(u string) string {
	if rest, ok := strings.CutPrefix(u, legacyURLPrefix); ok {
		return articleURLBase + rest
	}
	return u
}

// PubMed efetch XML structures (the subset the record schema needs).
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
	Data     pubmedData      `xml:"PubmedData"`
}

type medlineCitation struct {
	PMID         string        `xml:"PMID"`
	Article      articleXML    `xml:"Article"`
	MeshHeadings []string      `xml:"MeshHeadingList>MeshHeading>DescriptorName"`
	Chemicals    []chemicalXML `xml:"ChemicalList>Chemical"`
}

type chemicalXML struct {
	NameOfSubstance string `xml:"NameOfSubstance"`
}

type articleXML struct {
	Title            string      `xml:"ArticleTitle"`
	Abstract         abstractXML `xml:"Abstract"`
	Authors          []authorXML `xml:"AuthorList>Author"`
	Journal          journalXML  `xml:"Journal"`
	PublicationTypes []string    `xml:"PublicationTypeList>PublicationType"`
}

type abstractXML struct {
	Sections []string `xml:"AbstractText"`
}

type authorXML struct {
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	CollectiveName string `xml:"CollectiveName"`
}

type journalXML struct {
	Title   string     `xml:"Title"`
	ISSN    string     `xml:"ISSN"`
	PubDate pubDateXML `xml:"JournalIssue>PubDate"`
}

type pubDateXML struct {
	Year        string `xml:"Year"`
	MedlineDate string `xml:"MedlineDate"`
}

type pubmedData struct {
	ArticleIDs []articleID `xml:"ArticleIdList>ArticleId"`
}

type articleID struct {
	IDType string `xml:"IdType,attr"`
	Value  string `xml:",chardata"`
}

// projectArticle maps the parsed XML onto the row schema. The mapping is
// total: every schema field is assigned, empty when the payload lacks it.
func projectArticle(a *pubmedArticle) *types.ArticleRecord {
	rec := &types.ArticleRecord{
		Title:            strings.TrimSpace(a.Citation.Article.Title),
		PMID:             a.Citation.PMID,
		URL:              NormalizeURL(ArticleURL(a.Citation.PMID)),
		Journal:          a.Citation.Article.Journal.Title,
		ISSN:             a.Citation.Article.Journal.ISSN,
		Abstract:         strings.TrimSpace(strings.Join(a.Citation.Article.Abstract.Sections, " ")),
		PublicationTypes: a.Citation.Article.PublicationTypes,
		MeshTerms:        a.Citation.MeshHeadings,
	}

	for _, author := range a.Citation.Article.Authors {
		name := strings.TrimSpace(author.LastName + " " + author.ForeName)
		if name == "" {
			name = strings.TrimSpace(author.CollectiveName)
		}
		if name != "" {
			rec.Authors = append(rec.Authors, name)
		}
	}

	for _, chem := range a.Citation.Chemicals {
		if chem.NameOfSubstance != "" {
			rec.Chemicals = append(rec.Chemicals, chem.NameOfSubstance)
		}
	}

	for _, id := range a.Data.ArticleIDs {
		switch id.IDType {
		case "doi":
			rec.DOI = strings.TrimSpace(id.Value)
		case "pmc":
			rec.PMC = strings.TrimSpace(id.Value)
		}
	}

	rawYear := a.Citation.Article.Journal.PubDate.Year
	if rawYear == "" {
		rawYear = a.Citation.Article.Journal.PubDate.MedlineDate
	}
	if year, ok := records.ParseYear(rawYear); ok {
		rec.Year = &year
	}

	return rec
}
