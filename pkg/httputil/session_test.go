package httputil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pvrtool/pvr/pkg/errors"
)

func TestSession_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "hello")
	}))
	t.Cleanup(server.Close)

	s := NewSession(Options{})
	t.Cleanup(s.Close)

	body, err := s.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("body = %q, want hello", body)
	}
}

func TestSession_Get_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"forbidden", http.StatusForbidden},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(server.Close)

			s := NewSession(Options{})
			t.Cleanup(s.Close)

			_, err := s.Get(context.Background(), server.URL)
			if !errors.Is(err, errors.ErrCodeFetch) {
				t.Errorf("Get() error = %v, want FETCH_ERROR", err)
			}
		})
	}
}

func TestSession_Get_NoRetryByDefault(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	s := NewSession(Options{})
	t.Cleanup(s.Close)

	if _, err := s.Get(context.Background(), server.URL); err == nil {
		t.Fatal("Get() succeeded, want error")
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (no retries unless configured)", hits)
	}
}

func TestSession_Get_RetriesWhenConfigured(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "eventually")
	}))
	t.Cleanup(server.Close)

	s := NewSession(Options{Attempts: 3})
	t.Cleanup(s.Close)

	body, err := s.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed after retries: %v", err)
	}
	if string(body) != "eventually" {
		t.Errorf("body = %q, want eventually", body)
	}
	if hits != 3 {
		t.Errorf("server hits = %d, want 3", hits)
	}
}

func TestSession_Get_ClientErrorsAreNotRetried(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	s := NewSession(Options{Attempts: 3})
	t.Cleanup(s.Close)

	if _, err := s.Get(context.Background(), server.URL); err == nil {
		t.Fatal("Get() succeeded, want error")
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (4xx is not transient)", hits)
	}
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return fmt.Errorf("permanent")
	})
	if err == nil {
		t.Fatal("Retry() = nil, want error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_RetriesRetryable(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return &RetryableError{Err: fmt.Errorf("transient")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetry_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Minute, func() error {
		return &RetryableError{Err: fmt.Errorf("transient")}
	})
	if err != context.Canceled {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}
