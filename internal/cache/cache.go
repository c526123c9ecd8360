// Package cache keeps JSON-encoded responses on disk for a limited time.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nimbus-cli/nimbus/filesystem"
	"github.com/nimbus-cli/nimbus/log"
	"github.com/spf13/afero"
)

// Store is a directory of cache entries sharing one TTL.
type Store struct {
	Dir string
	TTL time.Duration
}

// New returns a store rooted at dir. A non-positive ttl disables caching.
func New(dir string, ttl time.Duration) *Store {
	return &Store{Dir: dir, TTL: ttl}
}

// GenerateKey hashes the parts into a file-safe identifier.
func GenerateKey(parts ...string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(strings.Join(parts, "|"), " ", ""))
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

func (s *Store) path(key string) string {
	return filepath.Join(s.Dir, key)
}

// Read decodes the entry for key into target, reporting false when it is
// missing, expired or unreadable.
func (s *Store) Read(key string, target any) bool {
	if s.TTL <= 0 {
		return false
	}

	fs := filesystem.API()
	path := s.path(key)

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > s.TTL {
		return false
	}

	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(target); err != nil {
		log.Warnf("corrupted cache entry %s: %v", key, err)
		return false
	}
	return true
}

// Write stores data under key, swapping a temporary file into place.
func (s *Store) Write(key string, data any) error {
	if s.TTL <= 0 {
		return nil
	}

	fs := filesystem.API()
	if err := fs.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return err
	}

	path := s.path(key)
	tmpPath := path + ".tmp"

	f, err := fs.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return fs.Rename(tmpPath, path)
}

// CollectGarbage removes expired entries and reports how many were removed.
func (s *Store) CollectGarbage() (int, error) {
	fs := filesystem.API()
	removed := 0

	err := afero.Walk(fs, s.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > s.TTL {
			if err := fs.Remove(path); err == nil {
				removed++
			}
		}
		return nil
	})

	return removed, err
}

// Clear removes the whole store.
func (s *Store) Clear() error {
	return filesystem.API().RemoveAll(s.Dir)
}
