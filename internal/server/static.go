package server

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// staticHandler serves an exported site directory. Directory requests
// resolve to index.html, and a .gz sibling is preferred when the client
// accepts gzip.
type staticHandler struct {
	dir     string
	base    string
	metrics *Metrics
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	upath := r.URL.Path
	if !strings.HasPrefix(upath, "/") {
		upath = "/" + upath
	}
	name := filepath.Join(h.dir, filepath.FromSlash(path.Clean(upath)))

	info, err := os.Stat(name)
	if err == nil && info.IsDir() {
		if !strings.HasSuffix(upath, "/") {
			target := h.base + upath + "/"
			if q := r.URL.RawQuery; q != "" {
				target += "?" + q
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
		name = filepath.Join(name, "index.html")
		info, err = os.Stat(name)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			h.notFound(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.serveFile(w, r, name, info)
}

func (h *staticHandler) serveFile(w http.ResponseWriter, r *http.Request, name string, src os.FileInfo) {
	if ctype := mime.TypeByExtension(filepath.Ext(name)); ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}
	w.Header().Add("Vary", "Accept-Encoding")

	// Range requests address the identity bytes, so they skip the sibling.
	// A sibling older than its source is stale.
	served := name
	if acceptsGzip(r) && r.Header.Get("Range") == "" {
		if gz, err := os.Stat(name + ".gz"); err == nil && !gz.IsDir() && !gz.ModTime().Before(src.ModTime()) {
			served = name + ".gz"
			w.Header().Set("Content-Encoding", "gzip")
			if h.metrics != nil {
				h.metrics.gzipServed.Inc()
			}
		}
	}

	f, err := os.Open(served)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, filepath.Base(name), info.ModTime(), f)
}

func (h *staticHandler) notFound(w http.ResponseWriter, r *http.Request) {
	page := filepath.Join(h.dir, "404.html")
	data, err := os.ReadFile(page)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(data)
}

func acceptsGzip(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		enc, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(enc), "gzip") {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}
