// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
	"github.com/edelweissconnect/cheminsight/internal/pubmed"
	"github.com/edelweissconnect/cheminsight/pkg/types"
)

// eutilsStub serves canned esearch and efetch responses and records the
// search terms it received.
type eutilsStub struct {
	mu          sync.Mutex
	terms       []string
	pmids       []string
	failSearch  bool
	failPMID    string
	server      *httptest.Server
}

func newEutilsStub(t *testing.T, pmids []string) *eutilsStub {
	t.Helper()
	stub := &eutilsStub{pmids: pmids}
	stub.server = httptest.NewServer(http.HandlerFunc(stub.handle))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *eutilsStub) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.URL.Path {
	case "/esearch.fcgi":
		s.terms = append(s.terms, r.URL.Query().Get("term"))
		if s.failSearch {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		ids := make([]string, len(s.pmids))
		for i, id := range s.pmids {
			ids[i] = fmt.Sprintf("%q", id)
		}
		fmt.Fprintf(w, `{"esearchresult": {"idlist": [%s]}}`, strings.Join(ids, ", "))
	case "/efetch.fcgi":
		pmid := r.URL.Query().Get("id")
		if pmid == s.failPMID {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `<PubmedArticleSet><PubmedArticle><MedlineCitation>
			<PMID>%s</PMID>
			<Article>
				<Journal><JournalIssue><PubDate><Year>20%s</Year></PubDate></JournalIssue></Journal>
				<ArticleTitle>Article %s</ArticleTitle>
			</Article>
		</MedlineCitation></PubmedArticle></PubmedArticleSet>`, pmid, pmid, pmid)
	default:
		http.NotFound(w, r)
	}
}

func (s *eutilsStub) searchTerms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.terms...)
}

func newTestPipeline(t *testing.T, stub *eutilsStub, w *bytes.Buffer) *Pipeline {
	t.Helper()
	origDelay := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	t.Cleanup(func() { httputil.RetryBaseDelay = origDelay })

	fetch := &httputil.Client{HTTP: stub.server.Client(), MaxRetries: 1}
	cfg := types.Config{}
	cfg.PubMed.ThrottleDelay = time.Millisecond
	return &Pipeline{
		PubMed: &pubmed.Client{Fetch: fetch, Base: stub.server.URL},
		Config: cfg,
		W:      w,
	}
}

// Pre-expanded synonym lists keep the pipeline off the resolution and
// synonym services; those stages have their own coverage.
func aspirinTask() types.TaskDescriptor {
	return types.TaskDescriptor{
		Compounds: map[string][]string{
			"Aspirin": {"acetylsalicylic acid", "2-acetoxybenzoic acid"},
		},
		StartYear: 2015,
		EndYear:   2020,
	}
}

func TestRunCompoundOnly(t *testing.T) {
	stub := newEutilsStub(t, []string{"11", "12"})
	var warnings bytes.Buffer
	p := newTestPipeline(t, stub, &warnings)

	out, err := p.Run(context.Background(), aspirinTask())
	require.NoError(t, err)

	assert.Equal(t, 1, out.QueriesRun)
	assert.Equal(t, 2, out.RecordsFetched)
	require.Len(t, out.Records, 2)
	for _, rec := range out.Records {
		assert.Equal(t, "Aspirin", rec.Compound)
		assert.Equal(t, "N/A", rec.Target)
	}
	// Newest first: PMID 12 maps to year 2012, 11 to 2011.
	assert.Equal(t, "Article 12", out.Records[0].Title)
	assert.Empty(t, out.Warnings)

	terms := stub.searchTerms()
	require.Len(t, terms, 1)
	assert.Contains(t, terms[0], "Aspirin[Title/Abstract]")
	assert.Contains(t, terms[0], "acetylsalicylic acid[Title/Abstract]")
	assert.Contains(t, terms[0], `AND ("2015/01/01"[PDat] : "2020/12/31"[PDat])`)
}

func TestRunNoDateClauseWithoutEndYear(t *testing.T) {
	stub := newEutilsStub(t, []string{"11"})
	p := newTestPipeline(t, stub, &bytes.Buffer{})

	task := aspirinTask()
	task.StartYear, task.EndYear = 0, 0
	_, err := p.Run(context.Background(), task)
	require.NoError(t, err)

	terms := stub.searchTerms()
	require.Len(t, terms, 1)
	assert.NotContains(t, terms[0], "[PDat]")
}

func TestRunCompoundTargetPairs(t *testing.T) {
	stub := newEutilsStub(t, []string{"21"})
	p := newTestPipeline(t, stub, &bytes.Buffer{})

	task := types.TaskDescriptor{
		Compounds: map[string][]string{
			"Aspirin":   {"acetylsalicylic acid"},
			"Ibuprofen": {"isobutylphenyl propionic acid"},
		},
		Targets: map[string][]string{
			"COX-2": {"PTGS2", "prostaglandin-endoperoxide synthase 2"},
		},
	}
	out, err := p.Run(context.Background(), task)
	require.NoError(t, err)

	// 2 compounds x 1 target, one batch each.
	assert.Equal(t, 2, out.QueriesRun)
	for _, term := range stub.searchTerms() {
		assert.Contains(t, term, " AND ")
		assert.Contains(t, term, "PTGS2[Title/Abstract]")
	}

	// The same article is kept once per pair, tagged with its pair.
	require.Len(t, out.Records, 2)
	assert.Equal(t, "Aspirin", out.Records[0].Compound)
	assert.Equal(t, "COX-2", out.Records[0].Target)
	assert.Equal(t, "Ibuprofen", out.Records[1].Compound)
}

func TestRunResultsPerPair(t *testing.T) {
	stub := newEutilsStub(t, []string{"11", "12", "13", "14"})
	p := newTestPipeline(t, stub, &bytes.Buffer{})

	task := aspirinTask()
	task.ResultsPerPair = 2
	out, err := p.Run(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, 4, out.RecordsFetched)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "Article 14", out.Records[0].Title)
	assert.Equal(t, "Article 13", out.Records[1].Title)
}

func TestRunSearchFailureWarnsAndContinues(t *testing.T) {
	stub := newEutilsStub(t, []string{"11"})
	stub.failSearch = true
	var warnings bytes.Buffer
	p := newTestPipeline(t, stub, &warnings)

	out, err := p.Run(context.Background(), aspirinTask())
	require.NoError(t, err)

	assert.Empty(t, out.Records)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "search")
	assert.Contains(t, warnings.String(), "warning:")
}

func TestRunRecordFailureSkipsRecord(t *testing.T) {
	stub := newEutilsStub(t, []string{"11", "12"})
	stub.failPMID = "11"
	p := newTestPipeline(t, stub, &bytes.Buffer{})

	out, err := p.Run(context.Background(), aspirinTask())
	require.NoError(t, err)

	require.Len(t, out.Records, 1)
	assert.Equal(t, "Article 12", out.Records[0].Title)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "fetching PMID 11")
}

func TestRunUnrecognizedArticleTypeWarns(t *testing.T) {
	stub := newEutilsStub(t, nil)
	p := newTestPipeline(t, stub, &bytes.Buffer{})

	task := aspirinTask()
	task.ArticleTypes = []string{"Review", "Blog Post"}
	out, err := p.Run(context.Background(), task)
	require.NoError(t, err)

	require.NotEmpty(t, out.Warnings)
	assert.Contains(t, out.Warnings[0], `"Blog Post"`)
	terms := stub.searchTerms()
	require.Len(t, terms, 1)
	assert.Contains(t, terms[0], `"Review"[Publication Type]`)
	assert.NotContains(t, terms[0], "Blog Post")
}

func TestRunValidation(t *testing.T) {
	p := &Pipeline{}
	tests := []struct {
		name string
		task types.TaskDescriptor
	}{
		{"no compounds", types.TaskDescriptor{}},
		{"inverted year range", types.TaskDescriptor{
			Compounds: map[string][]string{"Aspirin": {"ASA"}},
			StartYear: 2021, EndYear: 2020,
		}},
		{"negative results per pair", types.TaskDescriptor{
			Compounds:      map[string][]string{"Aspirin": {"ASA"}},
			ResultsPerPair: -1,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := p.Run(context.Background(), tt.task)
			require.Error(t, err)
			assert.Empty(t, out.Records)
		})
	}
}

func TestRunContextCancelled(t *testing.T) {
	stub := newEutilsStub(t, []string{"11"})
	p := newTestPipeline(t, stub, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Run(ctx, aspirinTask())
	require.Error(t, err)
}

func TestReadTaskFileSingle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task.yaml")
	content := `compounds:
  Aspirin:
    - acetylsalicylic acid
targets:
  COX-2: []
start_year: 2015
end_year: 2020
additional_keywords:
  - toxicity
results_per_pair: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tasks, err := ReadTaskFile(path)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, []string{"acetylsalicylic acid"}, tasks[0].Compounds["Aspirin"])
	assert.Equal(t, 2015, tasks[0].StartYear)
	assert.Equal(t, 5, tasks[0].ResultsPerPair)
}

func TestReadTaskFileList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	content := `tasks:
  - compounds:
      Aspirin: []
  - compounds:
      Ibuprofen: []
    end_year: 2024
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tasks, err := ReadTaskFile(path)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Contains(t, tasks[1].Compounds, "Ibuprofen")
	assert.Equal(t, 2024, tasks[1].EndYear)
}

func TestReadTaskFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_year: 2020\n"), 0o644))

	_, err := ReadTaskFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no compounds")
}
