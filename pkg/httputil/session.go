// Package httputil provides the shared HTTP session used by the resolver and
// the artifact store.
//
// A [Session] wraps a single reusable http.Client. It is created once per
// installer lifetime and must be released with [Session.Close] when the
// driver's work is complete, including on error paths. All requests block the
// calling goroutine until the response is fully read; there is no concurrency
// inside a session.
//
// Retries are off by default. A non-2xx response or a transport failure is
// surfaced immediately as a FETCH_ERROR. Callers that explicitly opt in via
// [Options.Attempts] get exponential backoff for transient failures only
// (transport errors and 5xx responses).
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pvrtool/pvr/pkg/errors"
)

// Options configures a Session.
type Options struct {
	// Attempts is the number of tries per request. Values below 2 disable
	// retries entirely.
	Attempts int

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
}

// Session is a reusable HTTP client shared across index and artifact fetches.
// It is not safe for concurrent use; the installer runs strictly sequentially.
type Session struct {
	http     *http.Client
	attempts int
}

// NewSession creates a Session with the given options.
func NewSession(opts Options) *Session {
	return &Session{
		http:     &http.Client{Timeout: opts.Timeout},
		attempts: max(opts.Attempts, 1),
	}
}

// Get performs a blocking HTTP GET and returns the full response body.
//
// Returns an error with code FETCH_ERROR for transport failures and for any
// non-2xx status. The body is always fully read and closed before returning.
func (s *Session) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := Retry(ctx, s.attempts, time.Second, func() error {
		var err error
		body, err = s.get(ctx, url)
		return err
	})
	return body, err
}

func (s *Session) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "invalid request for %s", url)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeFetch, err, "GET %s", url)}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeFetch, err, "reading body of %s", url)}
	}
	return body, nil
}

// Close releases the session's idle connections. The session must not be used
// after Close.
func (s *Session) Close() {
	s.http.CloseIdleConnections()
}

func checkStatus(url string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code >= 500:
		return &RetryableError{Err: errors.New(errors.ErrCodeFetch, "GET %s: status %d", url, code)}
	default:
		return errors.New(errors.ErrCodeFetch, "GET %s: status %d", url, code)
	}
}
