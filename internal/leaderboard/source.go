package leaderboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// defaultFetchTimeout bounds a single remote fetch when the caller does not
// supply its own client.
const defaultFetchTimeout = 10 * time.Second

// maxSourceBytes caps how much of a remote source is read.
const maxSourceBytes = 16 << 20

// IsRemote reports whether src is an http(s) URL rather than a file path.
func IsRemote(src string) bool {
	s := strings.ToLower(strings.TrimSpace(src))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch reads a result source. URLs are fetched with client (or a default
// client with a timeout when nil); anything else is read from disk.
func Fetch(ctx context.Context, client *http.Client, src string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("no source configured")
	}
	if !IsRemote(src) {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return data, nil
	}

	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", src, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", src, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", src, err)
	}
	return data, nil
}
