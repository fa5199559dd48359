// Package store provides a content-addressed on-disk cache for downloaded
// artifacts.
//
// Each artifact is stored at {root}/{sha256hex(url)}/{filename}. Hashing the
// source URL gives safe, deterministic directory names and prevents
// collisions between files that share a filename but not an origin.
//
// The cache is trust-on-presence: once a file exists at its deterministic
// path it is returned as-is, with no revalidation of content, size, or
// freshness. Entries are never expired and never mutated; the cache is
// append-only and persists across runs. A given URL costs at most one
// network GET, one directory creation, and one file write for the lifetime
// of the cache root.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/pvrtool/pvr/pkg/errors"
	"github.com/pvrtool/pvr/pkg/httputil"
	"github.com/pvrtool/pvr/pkg/index"
)

// Store caches downloaded artifacts under a root directory, keyed by the
// SHA-256 of their source URL.
type Store struct {
	root    string
	session *httputil.Session
}

// New creates a Store rooted at root. Downloads go through session.
// The root directory is created lazily on first write.
func New(root string, session *httputil.Session) *Store {
	return &Store{root: root, session: session}
}

// Dir returns the cache root directory.
func (s *Store) Dir() string { return s.root }

// Path returns the deterministic cache location for c, whether or not an
// entry exists there yet.
func (s *Store) Path(c index.Candidate) string {
	key := sha256.Sum256([]byte(c.URL))
	return filepath.Join(s.root, hex.EncodeToString(key[:]), c.Filename)
}

// Fetch returns a local path holding the bytes of c.URL.
//
// On a cache hit the existing file is returned immediately with no
// revalidation. On a miss the artifact is downloaded, written under the
// cache root, and its path returned.
//
// Returns FETCH_ERROR for a failed download and CACHE_WRITE_ERROR when the
// cache directory or file cannot be written.
func (s *Store) Fetch(ctx context.Context, c index.Candidate) (string, error) {
	target := s.Path(c)

	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	body, err := s.session.Get(ctx, c.URL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeCacheWrite, err, "creating cache directory for %s", c.Filename)
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeCacheWrite, err, "writing %s to cache", c.Filename)
	}
	return target, nil
}

// Clear removes every cached entry under the root and returns the number of
// files removed. The root itself is left in place. A missing root is not an
// error; it counts as an empty cache.
func (s *Store) Clear() (int, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		path := filepath.Join(s.root, entry.Name())
		n := countFiles(path)
		if err := os.RemoveAll(path); err != nil {
			return count, err
		}
		count += n
	}
	return count, nil
}

func countFiles(dir string) int {
	n := 0
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return nil
	})
	return n
}
