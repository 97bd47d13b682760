package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/matzehuels/slidegen/pkg/buildinfo"
	apperrors "github.com/matzehuels/slidegen/pkg/errors"
	"github.com/matzehuels/slidegen/pkg/observability"
)

// Document is a downloaded outline.
type Document struct {
	URL         string
	Body        []byte
	ContentType string
}

// Fetcher downloads documents with retry.
type Fetcher struct {
	Client   *http.Client
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration // cap on any single wait, Retry-After included
	MaxBytes int64
}

// DefaultFetcher retries three times starting at one second, waits at most
// ten seconds between attempts, and accepts bodies up to 8 MiB.
var DefaultFetcher = Fetcher{
	Client:   &http.Client{Timeout: 30 * time.Second},
	Attempts: 3,
	Delay:    time.Second,
	MaxDelay: 10 * time.Second,
	MaxBytes: 8 << 20,
}

// Fetch downloads url with DefaultFetcher, using client when non-nil.
func Fetch(ctx context.Context, client *http.Client, url string) (*Document, error) {
	f := DefaultFetcher
	if client != nil {
		f.Client = client
	}
	return f.Fetch(ctx, url)
}

// Fetch downloads url.
func (f Fetcher) Fetch(ctx context.Context, url string) (*Document, error) {
	if err := apperrors.ValidateURL(url); err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	var doc *Document
	b := Backoff{Attempts: f.Attempts, Delay: f.Delay, MaxDelay: f.MaxDelay}
	err := b.Retry(ctx, func() error {
		d, err := f.get(ctx, client, url)
		if err != nil {
			return err
		}
		doc = d
		return nil
	})
	if err != nil {
		var re *RetryableError
		if errors.As(err, &re) {
			err = re.Err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Wrap(apperrors.ErrCodeTimeout, err, "fetch %s", url)
		}
		return nil, err
	}
	return doc, nil
}

func (f Fetcher) get(ctx context.Context, client *http.Client, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", buildinfo.Application())
	req.Header.Set("Accept", "application/json, application/toml, application/yaml, text/plain;q=0.5")

	hooks := observability.HTTP()
	host, path := hostPath(url)
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RetryableError{
			Err:   apperrors.New(apperrors.ErrCodeRateLimited, "fetch %s: %s", url, resp.Status),
			After: retryAfter(resp.Header),
		}
	case resp.StatusCode >= 500:
		return nil, &RetryableError{Err: apperrors.New(apperrors.ErrCodeNetwork, "fetch %s: %s", url, resp.Status)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "fetch %s: %s", url, resp.Status)
	case resp.StatusCode >= 400:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "fetch %s: %s", url, resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultFetcher.MaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &RetryableError{Err: apperrors.Wrap(apperrors.ErrCodeNetwork, err, "read %s", url)}
	}
	if int64(len(body)) > limit {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "fetch %s: body exceeds %d bytes", url, limit)
	}
	return &Document{URL: url, Body: body, ContentType: resp.Header.Get("Content-Type")}, nil
}

func (d *Document) String() string {
	return fmt.Sprintf("%s (%d bytes, %s)", d.URL, len(d.Body), d.ContentType)
}

func hostPath(raw string) (string, string) {
	u, err := neturl.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}
