package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// URLPrefix prefixes every object URL handed out by a Store
	URLPrefix = "blob:deckify/"

	// DefaultFilename is used when no suggested name is available
	DefaultFilename = "download.bin"

	// DefaultFilePermissions for saved artifacts
	DefaultFilePermissions = 0644

	// maxNameAttempts bounds the " (n)" suffix search in SaveToDir
	maxNameAttempts = 1000
)

// ErrNotFound is returned for unknown or revoked object URLs
var ErrNotFound = errors.New("artifact not found")

// Artifact describes a blob held by a Store
type Artifact struct {
	URL         string
	Filename    string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

// Store holds artifact blobs keyed by object URL. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	blobs map[string]entry
}

type entry struct {
	meta Artifact
	data []byte
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{blobs: make(map[string]entry)}
}

// Create registers data under a fresh object URL. The store keeps its own copy.
func (s *Store) Create(data []byte, contentType, filename string) Artifact {
	buf := make([]byte, len(data))
	copy(buf, data)

	name := sanitizeFilename(filename)
	if name == "" {
		name = DefaultFilename
	}

	a := Artifact{
		URL:         URLPrefix + uuid.NewString(),
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(buf)),
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.blobs[a.URL] = entry{meta: a, data: buf}
	s.mu.Unlock()
	return a
}

// Get returns the metadata for url
func (s *Store) Get(url string) (Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.blobs[url]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	return e.meta, nil
}

// Open returns a reader over the blob behind url
func (s *Store) Open(url string) (io.ReadCloser, error) {
	s.mu.RLock()
	e, ok := s.blobs[url]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	return io.NopCloser(bytes.NewReader(e.data)), nil
}

// Save copies the blob behind url into w
func (s *Store) Save(url string, w io.Writer) (int64, error) {
	rc, err := s.Open(url)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	return io.Copy(w, rc)
}

// SaveToDir writes the blob into dir using its suggested filename. An existing
// file is never overwritten: "name (1).ext", "name (2).ext"... are tried instead.
// It returns the path written.
func (s *Store) SaveToDir(url, dir string) (string, error) {
	meta, err := s.Get(url)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(meta.Filename)
	base := strings.TrimSuffix(meta.Filename, ext)

	for i := 0; i < maxNameAttempts; i++ {
		name := meta.Filename
		if i > 0 {
			name = fmt.Sprintf("%s (%d)%s", base, i, ext)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFilePermissions)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("opening %s for writing: %w", path, err)
		}

		_, copyErr := s.Save(url, f)
		closeErr := f.Close()
		if copyErr != nil {
			_ = os.Remove(path)
			return "", fmt.Errorf("writing %s: %w", path, copyErr)
		}
		if closeErr != nil {
			return "", fmt.Errorf("closing %s: %w", path, closeErr)
		}
		return path, nil
	}

	return "", fmt.Errorf("no free file name for %s in %s", meta.Filename, dir)
}

// Revoke releases the blob behind url. Revoking an unknown url returns ErrNotFound.
func (s *Store) Revoke(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[url]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	delete(s.blobs, url)
	return nil
}

// Len returns the number of live artifacts
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// sanitizeFilename keeps only the base name, so a server-provided name
// cannot escape the target directory.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
