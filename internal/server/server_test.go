package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":             "<html>home</html>",
		"leaderboard/index.html": "<html>board</html>",
		"assets/site.css":        "body{}",
		"data/leaderboard.json":  `{"text":[]}`,
	}
	for rel, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("<html>home</html>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html.gz"), buf.Bytes(), 0o644))
	return dir
}

func newTestServer(t *testing.T, base string) http.Handler {
	t.Helper()
	srv, err := New(Config{Dir: exportDir(t), BasePath: base})
	require.NoError(t, err)
	return srv.Handler()
}

func get(h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := get(newTestServer(t, "/LRM-Eval"), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServesUnderBasePath(t *testing.T) {
	h := newTestServer(t, "LRM-Eval/")

	rec := get(h, "/LRM-Eval/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>home</html>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = get(h, "/LRM-Eval/leaderboard/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>board</html>", rec.Body.String())

	rec = get(h, "/LRM-Eval/assets/site.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")

	rec = get(h, "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/LRM-Eval/", rec.Header().Get("Location"))
}

func TestTrailingSlashRedirect(t *testing.T) {
	h := newTestServer(t, "/LRM-Eval")
	rec := get(h, "/LRM-Eval/leaderboard")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/LRM-Eval/leaderboard/", rec.Header().Get("Location"))
}

func TestServesAtRoot(t *testing.T) {
	h := newTestServer(t, "")
	rec := get(h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>home</html>", rec.Body.String())

	rec = get(h, "/data/leaderboard.json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":[]}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	h := newTestServer(t, "/LRM-Eval")
	assert.Equal(t, http.StatusNotFound, get(h, "/LRM-Eval/nope.html").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/LRM-Eval/../../etc/passwd").Code)
}

func TestServesPrecompressedSibling(t *testing.T) {
	h := newTestServer(t, "")

	rec := get(h, "/", "Accept-Encoding", "gzip, deflate")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "<html>home</html>", string(plain))

	rec = get(h, "/", "Accept-Encoding", "gzip;q=0")
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "<html>home</html>", rec.Body.String())

	rec = get(h, "/assets/site.css", "Accept-Encoding", "gzip")
	assert.Empty(t, rec.Header().Get("Content-Encoding"), "no sibling, serve plain")
}

func TestSkipsStaleSibling(t *testing.T) {
	dir := exportDir(t)
	srv, err := New(Config{Dir: dir})
	require.NoError(t, err)
	h := srv.Handler()

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "index.html.gz"), old, old))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>fresh</html>"), 0o644))

	rec := get(h, "/", "Accept-Encoding", "gzip")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "<html>fresh</html>", rec.Body.String())
}

func TestRangeRequestServesIdentity(t *testing.T) {
	h := newTestServer(t, "")

	rec := get(h, "/", "Accept-Encoding", "gzip", "Range", "bytes=0-5")
	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "<html>", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, "/LRM-Eval")
	get(h, "/LRM-Eval/")
	get(h, "/healthz")

	rec := get(h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "lrmeval_http_requests_total")
	assert.Contains(t, body, `route="/healthz"`)
	assert.Contains(t, body, "lrmeval_http_request_duration_seconds")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodOptions, "/data/leaderboard.json", nil)
	req.Header.Set("Origin", "http://example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRejectsWrites(t *testing.T) {
	h := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodPost, "/index.html", strings.NewReader("x"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewValidatesDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
	_, err = New(Config{Dir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)

	srv, err := New(Config{Dir: t.TempDir(), BasePath: "/x", Port: 4321})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4321", srv.Addr())
	assert.Equal(t, "http://127.0.0.1:4321/x/", srv.URL())
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv, err := New(Config{Dir: t.TempDir(), Port: 0})
	require.NoError(t, err)
	srv.srv.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
