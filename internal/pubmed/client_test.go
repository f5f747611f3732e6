// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
)

const efetchPayload = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">31452104</PMID>
      <Article>
        <Journal>
          <ISSN IssnType="Electronic">1873-3468</ISSN>
          <JournalIssue>
            <PubDate>
              <Year>2019</Year>
              <Month>Oct</Month>
            </PubDate>
          </JournalIssue>
          <Title>FEBS letters</Title>
        </Journal>
        <ArticleTitle>Aspirin inhibits prostaglandin synthesis.</ArticleTitle>
        <Abstract>
          <AbstractText Label="BACKGROUND">Aspirin acetylates COX-1.</AbstractText>
          <AbstractText Label="RESULTS">Prostaglandin output falls.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author>
            <LastName>Vane</LastName>
            <ForeName>John R</ForeName>
          </Author>
          <Author>
            <CollectiveName>COX Study Group</CollectiveName>
          </Author>
        </AuthorList>
        <PublicationTypeList>
          <PublicationType UI="D016428">Journal Article</PublicationType>
          <PublicationType UI="D016454">Review</PublicationType>
        </PublicationTypeList>
      </Article>
      <ChemicalList>
        <Chemical>
          <RegistryNumber>R16CO5Y76E</RegistryNumber>
          <NameOfSubstance UI="D001241">Aspirin</NameOfSubstance>
        </Chemical>
      </ChemicalList>
      <MeshHeadingList>
        <MeshHeading>
          <DescriptorName UI="D001241" MajorTopicYN="Y">Aspirin</DescriptorName>
        </MeshHeading>
        <MeshHeading>
          <DescriptorName UI="D011453" MajorTopicYN="N">Prostaglandins</DescriptorName>
        </MeshHeading>
      </MeshHeadingList>
    </MedlineCitation>
    <PubmedData>
      <ArticleIdList>
        <ArticleId IdType="pubmed">31452104</ArticleId>
        <ArticleId IdType="doi">10.1002/1873-3468.13541</ArticleId>
        <ArticleId IdType="pmc">PMC6771545</ArticleId>
      </ArticleIdList>
    </PubmedData>
  </PubmedArticle>
</PubmedArticleSet>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	origBase := eutilsBase
	eutilsBase = server.URL
	t.Cleanup(func() { eutilsBase = origBase })
	return &Client{Fetch: &httputil.Client{HTTP: server.Client(), MaxRetries: 1}}
}

func TestPMIDs(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/esearch.fcgi", r.URL.Path)
		gotQuery = map[string]string{
			"db":      r.URL.Query().Get("db"),
			"term":    r.URL.Query().Get("term"),
			"retmax":  r.URL.Query().Get("retmax"),
			"sort":    r.URL.Query().Get("sort"),
			"retmode": r.URL.Query().Get("retmode"),
		}
		fmt.Fprint(w, `{"esearchresult": {"count": "3", "idlist": ["111", "222", "333"]}}`)
	})

	pmids, err := client.PMIDs(context.Background(), `(Aspirin[Title/Abstract])`, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222", "333"}, pmids)
	assert.Equal(t, "pubmed", gotQuery["db"])
	assert.Equal(t, `(Aspirin[Title/Abstract])`, gotQuery["term"])
	assert.Equal(t, "50", gotQuery["retmax"])
	assert.Equal(t, "relevance", gotQuery["sort"])
	assert.Equal(t, "json", gotQuery["retmode"])
}

func TestPMIDsSendsIdentity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "researcher@example.org", r.URL.Query().Get("email"))
		fmt.Fprint(w, `{"esearchresult": {"count": "0", "idlist": []}}`)
	})
	client.APIKey = "test-key"
	client.Email = "researcher@example.org"

	_, err := client.PMIDs(context.Background(), "query", 10)
	require.NoError(t, err)
}

func TestPMIDsEmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"esearchresult": {"count": "0", "idlist": []}}`)
	})
	pmids, err := client.PMIDs(context.Background(), "no hits", 10)
	require.NoError(t, err)
	assert.Empty(t, pmids)
}

func TestArticle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/efetch.fcgi", r.URL.Path)
		require.Equal(t, "31452104", r.URL.Query().Get("id"))
		require.Equal(t, "xml", r.URL.Query().Get("retmode"))
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, efetchPayload)
	})

	rec, err := client.Article(context.Background(), "31452104")
	require.NoError(t, err)

	assert.Equal(t, "Aspirin inhibits prostaglandin synthesis.", rec.Title)
	assert.Equal(t, "31452104", rec.PMID)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/31452104/", rec.URL)
	assert.Equal(t, []string{"Vane John R", "COX Study Group"}, rec.Authors)
	assert.Equal(t, "10.1002/1873-3468.13541", rec.DOI)
	assert.Equal(t, "PMC6771545", rec.PMC)
	assert.Equal(t, "1873-3468", rec.ISSN)
	assert.Equal(t, "FEBS letters", rec.Journal)
	assert.Equal(t, "Aspirin acetylates COX-1. Prostaglandin output falls.", rec.Abstract)
	assert.Equal(t, []string{"Aspirin", "Prostaglandins"}, rec.MeshTerms)
	assert.Equal(t, []string{"Aspirin"}, rec.Chemicals)
	assert.Equal(t, []string{"Journal Article", "Review"}, rec.PublicationTypes)
	require.NotNil(t, rec.Year)
	assert.Equal(t, 2019, *rec.Year)
}

func TestArticleMedlineDateYear(t *testing.T) {
	payload := `<PubmedArticleSet><PubmedArticle><MedlineCitation>
		<PMID>42</PMID>
		<Article>
			<Journal><JournalIssue><PubDate><MedlineDate>1998 Nov-Dec</MedlineDate></PubDate></JournalIssue></Journal>
			<ArticleTitle>Seasonal issue.</ArticleTitle>
		</Article>
	</MedlineCitation></PubmedArticle></PubmedArticleSet>`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	})

	rec, err := client.Article(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, rec.Year)
	assert.Equal(t, 1998, *rec.Year)
}

func TestArticleAbsentYearStaysNil(t *testing.T) {
	payload := `<PubmedArticleSet><PubmedArticle><MedlineCitation>
		<PMID>43</PMID>
		<Article><ArticleTitle>Undated.</ArticleTitle></Article>
	</MedlineCitation></PubmedArticle></PubmedArticleSet>`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	})

	rec, err := client.Article(context.Background(), "43")
	require.NoError(t, err)
	assert.Nil(t, rec.Year)
}

func TestArticleEmptySet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<PubmedArticleSet></PubmedArticleSet>`)
	})

	_, err := client.Article(context.Background(), "999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no article found")
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://ncbi.nlm.nih.gov/pubmed/12345", "https://pubmed.ncbi.nlm.nih.gov/12345"},
		{"https://pubmed.ncbi.nlm.nih.gov/12345/", "https://pubmed.ncbi.nlm.nih.gov/12345/"},
		{"https://doi.org/10.1000/x", "https://doi.org/10.1000/x"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArticleURL(t *testing.T) {
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/12345/", ArticleURL("12345"))
}
