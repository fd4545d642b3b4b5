package httputil

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/bloom/pkg/buildinfo"
	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/observability"
)

// MaxDocumentSize caps the body [Fetch] will read.
const MaxDocumentSize = 10 << 20

// DefaultClient is used by [Fetch].
var DefaultClient = &http.Client{Timeout: 30 * time.Second}

// Fetcher downloads documents with a configurable client and retry policy.
type Fetcher struct {
	Client   *http.Client
	Attempts int
	Delay    time.Duration
}

// Fetch downloads rawURL with [DefaultClient] and the default retry policy
// ([DefaultAttempts], [DefaultDelay]).
func Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	f := Fetcher{Client: DefaultClient, Attempts: DefaultAttempts, Delay: DefaultDelay}
	return f.Fetch(ctx, rawURL)
}

// Fetch downloads rawURL. Network failures, 5xx and 429 responses are
// retried; other non-2xx statuses fail immediately. Bodies larger than
// [MaxDocumentSize] are rejected.
func (f Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = DefaultClient
	}

	var body []byte
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		b, err := f.get(ctx, client, rawURL)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		var re *RetryableError
		if stderrors.As(err, &re) {
			err = re.Err
		}
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "fetch %s", rawURL)
		}
		return nil, err
	}
	return body, nil
}

func (f Fetcher) get(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid URL")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "bloom/"+buildinfo.Version)

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "fetch %s: %s", rawURL, resp.Status)}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "fetch %s: %s", rawURL, resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", rawURL)}
	}
	if len(data) > MaxDocumentSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document exceeds %s", humanSize(MaxDocumentSize))
	}
	return data, nil
}

func humanSize(n int) string {
	return fmt.Sprintf("%d MiB", n>>20)
}
