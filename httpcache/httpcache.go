// Package httpcache provides HTTP clients whose GET responses are cached on
// disk for a bounded period.
//
// The cache key folds in a time bucket, so entries expire by construction:
// an hourly client re-fetches any given URL at most once per hour, a daily
// client at most once per day. Entries live in the system temp directory and
// need no eviction. Concurrent misses for the same URL may both fetch; the
// last write wins, which is harmless since fetched bodies are immutable.
package httpcache

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Hourly returns a client suited to intraday series: cached responses expire
// on the next clock hour.
func Hourly(timeout time.Duration, log zerolog.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &transport{base: http.DefaultTransport, layout: "2006-01-02T15", log: log},
	}
}

// Daily returns a client suited to series that update at most once a day,
// like a monthly price index: cached responses expire at midnight UTC.
func Daily(timeout time.Duration, log zerolog.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &transport{base: http.DefaultTransport, layout: "2006-01-02", log: log},
	}
}

// transport caches successful responses on disk, keyed by time bucket,
// method and URL.
type transport struct {
	base   http.RoundTripper
	layout string
	log    zerolog.Logger
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	key := cacheKey(t.layout, time.Now(), req)

	if resp, err := t.get(key, req); err == nil {
		t.log.Debug().Str("url", req.URL.String()).Msg("served from cache")
		return resp, nil
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.log.Debug().Str("method", resp.Request.Method).Str("url", req.URL.String()).Str("status", resp.Status).Msg("fetched")
	if resp.StatusCode >= 300 {
		// Errors are never cached, the next call gets a fresh try.
		return resp, nil
	}

	if err := t.put(key, resp); err != nil {
		t.log.Warn().Err(err).Msg("cache write failed, response served uncached")
	}
	return resp, nil
}

func cacheKey(layout string, now time.Time, req *http.Request) string {
	key := fmt.Sprintf("%s %s %s", now.UTC().Format(layout), req.Method, req.URL.String())
	return fmt.Sprintf("%x", sha1.Sum([]byte(key)))
}

// get retrieves a cached response from disk.
func (t *transport) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk and rewinds its body so the caller can still
// read it.
func (t *transport) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
