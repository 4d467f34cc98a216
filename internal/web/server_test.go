package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwgallagher/lewis-short-lookup/pkg/corpus"
	"github.com/pwgallagher/lewis-short-lookup/pkg/index"
	"github.com/pwgallagher/lewis-short-lookup/pkg/search"
)

var testLines = []string{
	"amor, amoris. love.",
	"tĕgo, texi, tectum: to cover. perf. texit; inde texit.",
	"consul, ulis, m. a consul. [considero] Liv.",
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := corpus.FromLines(testLines)
	engine, err := search.New(c, index.BuildHeadwordIndex(c), index.BuildWordIndex(c, 1), search.DefaultLimits())
	require.NoError(t, err)
	srv := httptest.NewServer(NewServer(engine).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHandleSearch(t *testing.T) {
	srv := testServer(t)

	var resp searchResponse
	getJSON(t, srv.URL+"/api/search?q=amor", &resp)

	require.NotEmpty(t, resp.Prefix)
	assert.Equal(t, "amor", resp.Prefix[0].Raw)
	assert.Equal(t, 0, resp.Prefix[0].Line)

	require.NotNil(t, resp.Entry)
	assert.Contains(t, *resp.Entry, `<span class="hw">amor</span>`)
	require.NotNil(t, resp.EntryLine)
	assert.Equal(t, 0, *resp.EntryLine)
}

func TestHandleSearchShortQuery(t *testing.T) {
	srv := testServer(t)

	var resp searchResponse
	getJSON(t, srv.URL+"/api/search?q=a", &resp)

	assert.Empty(t, resp.Prefix)
	assert.Empty(t, resp.Fulltext)
	assert.Empty(t, resp.Fuzzy)
	assert.Nil(t, resp.Entry)
	assert.Nil(t, resp.EntryLine)
}

func TestHandleSearchFulltext(t *testing.T) {
	srv := testServer(t)

	var resp searchResponse
	getJSON(t, srv.URL+"/api/search?q=texit", &resp)

	assert.Empty(t, resp.Prefix)
	require.NotEmpty(t, resp.Fulltext)
	assert.Equal(t, "tĕgo", resp.Fulltext[0].Raw)
	assert.Equal(t, 2, resp.Fulltext[0].Count)
}

func TestHandleEntry(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		line string
		want string
	}{
		{"valid line", "0", `<span class="hw">amor</span>`},
		{"negative line", "-1", "<em>Invalid line number.</em>"},
		{"past end", "3", "<em>Invalid line number.</em>"},
		{"not a number", "abc", "<em>Invalid line number.</em>"},
		{"missing param", "", "<em>Invalid line number.</em>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp entryResponse
			getJSON(t, srv.URL+"/api/entry?line="+tt.line, &resp)
			assert.Contains(t, resp.Entry, tt.want)
		})
	}
}

func TestHandleIndexPage(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
