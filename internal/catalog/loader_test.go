package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ytget/paper-downloader/internal/model"
)

const scienceCatalog = `{"10th":{"english":{"Science":{"2022":{"fileSize":"1.5 MB"}}}}}`

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoad_RemoteSuccess(t *testing.T) {
	srv := serve(t, http.StatusOK, scienceCatalog)

	l := NewLoader(srv.URL + "/papers.json")
	c, origin := l.Load(context.Background())

	assert.Equal(t, OriginSource, origin)
	want := model.Catalog{"10th": {"english": {"Science": {"2022": {FileSize: "1.5 MB"}}}}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FallbackCases(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, "missing"},
		{"server error", http.StatusInternalServerError, scienceCatalog},
		{"malformed json", http.StatusOK, `{"10th": {`},
		{"empty body", http.StatusOK, ""},
		{"null document", http.StatusOK, "null"},
		{"array root", http.StatusOK, `["10th", "12th"]`},
		{"trailing data", http.StatusOK, `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			logger, logs := newObservedLogger()

			l := NewLoader(srv.URL+"/papers.json", WithLogger(logger))
			c, origin := l.Load(context.Background())

			assert.Equal(t, OriginFallback, origin)
			if diff := cmp.Diff(Fallback(), c); diff != "" {
				t.Errorf("expected fallback catalog (-want +got):\n%s", diff)
			}
			assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
		})
	}
}

func TestLoad_KeepsWellFormedEntries(t *testing.T) {
	doc := `{
		"10th": {
			"english": {
				"Science": {"2023": {"url": "papers/10th/english/Science/2023.pdf", "pages": 12}},
				"Math": "coming soon",
				"Hindi": {"2022": {"url": "h.pdf", "pages": {"n": 8}}, "2021": ["bad"]}
			},
			"hindi": null
		},
		"12th": ["a", "b"]
	}`
	srv := serve(t, http.StatusOK, doc)
	logger, logs := newObservedLogger()

	c, origin := NewLoader(srv.URL+"/papers.json", WithLogger(logger)).Load(context.Background())

	require.Equal(t, OriginSource, origin)
	want := model.Catalog{"10th": {"english": {
		"Science": {"2023": {URL: "papers/10th/english/Science/2023.pdf", Pages: "12"}},
		"Hindi":   {"2022": {URL: "h.pdf"}},
	}}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}

	skipped := logs.FilterMessage("skipping malformed catalog entry").AllUntimed()
	require.Len(t, skipped, 5)
	var paths []string
	for _, e := range skipped {
		paths = append(paths, fmt.Sprint(e.ContextMap()["path"]))
	}
	assert.Equal(t, []string{
		"[10th english Hindi 2021]",
		"[10th english Hindi 2022 pages]",
		"[10th english Math]",
		"[10th hindi]",
		"[12th]",
	}, paths)
}

func TestDecode_FalsyFieldsAreAbsent(t *testing.T) {
	c, skipped, err := Decode([]byte(`{"10th":{"english":{"Math":{"2023":{"pages":0,"quality":false,"fileSize":null}}}}}`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, model.PaperRecord{}, c.Papers("10th", "english", "Math")["2023"])
}

func TestDecode_YAMLPartialShape(t *testing.T) {
	doc := `
10th:
  english:
    Math:
      2023:
        url: m.pdf
        pages: [1, 2]
    Science: 42
`
	c, skipped, err := Decode([]byte(doc), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, model.PaperRecord{URL: "m.pdf"}, c.Papers("10th", "english", "Math")["2023"])
	require.Len(t, skipped, 2)
	assert.Equal(t, []string{"10th", "english", "Math", "2023", "pages"}, skipped[0].Path)
	assert.Equal(t, "expected a scalar, got array", skipped[0].Reason)
	assert.Equal(t, []string{"10th", "english", "Science"}, skipped[1].Path)
	assert.Equal(t, "10th/english/Science: expected an object, got number", skipped[1].Error())
}

func TestDecode_RootErrors(t *testing.T) {
	_, _, err := Decode([]byte(`"papers"`), FormatJSON)
	assert.ErrorIs(t, err, ErrNotAnObject)

	_, _, err = Decode([]byte("null"), FormatJSON)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, _, err = Decode([]byte("  \n"), FormatYAML)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestLoad_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, origin := NewLoader(addr + "/papers.json").Load(context.Background())
	assert.Equal(t, OriginFallback, origin)
	assert.Equal(t, Fallback(), c)
}

func TestLoad_MissingLocalFile(t *testing.T) {
	c, origin := NewLoader(filepath.Join(t.TempDir(), "papers.json")).Load(context.Background())
	assert.Equal(t, OriginFallback, origin)
	assert.Equal(t, Fallback(), c)
}

func TestLoad_LocalJSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "papers.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"12th":{"hindi":{"Math":{"2020":{"url":"m.pdf","pages":9}}}}}`), 0o644))

	c, origin := NewLoader(jsonPath).Load(context.Background())
	require.Equal(t, OriginSource, origin)
	assert.Equal(t, model.Scalar("9"), c.Papers("12th", "hindi", "Math")["2020"].Pages)

	yamlPath := filepath.Join(dir, "papers.yaml")
	doc := `
10th:
  english:
    Math:
      2023:
        url: papers/10th/english/Math/2023.pdf
        pages: 14
        quality: Excellent
`
	require.NoError(t, os.WriteFile(yamlPath, []byte(doc), 0o644))

	c, origin = NewLoader(yamlPath).Load(context.Background())
	require.Equal(t, OriginSource, origin)
	rec := c.Papers("10th", "english", "Math")["2023"]
	assert.Equal(t, model.Scalar("papers/10th/english/Math/2023.pdf"), rec.URL)
	assert.Equal(t, model.Scalar("14"), rec.Pages)
	assert.Equal(t, model.Scalar("Excellent"), rec.Quality)
}

func TestLoad_EmptyObjectIsValid(t *testing.T) {
	srv := serve(t, http.StatusOK, "{}")
	c, origin := NewLoader(srv.URL + "/papers.json").Load(context.Background())
	assert.Equal(t, OriginSource, origin)
	assert.Empty(t, c)
}

func TestFallback_Contents(t *testing.T) {
	c := Fallback()
	assert.Equal(t, 4, c.Count())

	hindi := c.Papers("10th", "english", "Hindi")
	require.Len(t, hindi, 2)
	assert.Equal(t, model.Scalar("papers/10th/english/Hindi/2022_preview.jpg"), hindi["2022"].Preview)
	assert.Empty(t, hindi["2021"].Preview)

	physics := c.Papers("12th", "english", "Physics")
	assert.Equal(t, model.Scalar("2.1 MB"), physics["2022"].FileSize)

	// fresh copy per call
	c["10th"]["english"]["Hindi"]["1999"] = model.PaperRecord{}
	assert.Equal(t, 4, Fallback().Count())
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("papers.json"))
	assert.Equal(t, FormatYAML, DetectFormat("data/papers.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("https://example.com/papers.YML?v=2"))
	assert.Equal(t, FormatJSON, DetectFormat("https://example.com/catalog"))
}

func TestResolve(t *testing.T) {
	remote := NewLoader("https://example.com/site/papers.json")
	local := NewLoader(filepath.Join("site", "papers.json"))

	tests := []struct {
		name   string
		loader *Loader
		ref    string
		want   string
	}{
		{"remote relative", remote, "papers/10th/a.pdf", "https://example.com/site/papers/10th/a.pdf"},
		{"remote rooted", remote, "/files/a.pdf", "https://example.com/files/a.pdf"},
		{"absolute url", local, "https://cdn.example.com/a.pdf", "https://cdn.example.com/a.pdf"},
		{"local relative", local, "papers/10th/a.pdf", filepath.Join("site", "papers", "10th", "a.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.loader.Resolve(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := remote.Resolve("  ")
	assert.ErrorIs(t, err, ErrEmptyReference)
}

func TestOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/papers/a.pdf" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, "%PDF-1.4")
	}))
	t.Cleanup(srv.Close)

	l := NewLoader(srv.URL + "/papers.json")

	rc, size, err := l.Open(context.Background(), "papers/a.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, int64(8), size)

	_, _, err = l.Open(context.Background(), "papers/missing.pdf")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("local"), 0o644))
	ll := NewLoader(filepath.Join(dir, "papers.json"))
	rc, size, err = ll.Open(context.Background(), "b.pdf")
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, int64(5), size)

	_, _, err = ll.Open(context.Background(), ".")
	assert.Error(t, err)
}
