// Package schema implements the UCP schema catalog: document resolution
// across candidate storage layouts, directory enumeration, and JSON-Schema
// validation of arbitrary payloads.
package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/commercekit/ucp-mcp/pkg/observability"
)

// ErrNotFound is returned when no candidate location yields a parseable
// document for a schema name.
var ErrNotFound = errors.New("schema not found")

// Document is an immutable schema document resolved from storage.
// The same *Document is returned for a given name for the lifetime of
// the process.
type Document struct {
	Name  string
	Raw   []byte
	Value any
}

// Store resolves logical schema names to JSON documents across several
// candidate storage layouts, memoizing successful lookups.
type Store struct {
	schemaRoot    string
	specRoot      string
	alternateRoot string
	metrics       observability.Metrics

	mu    sync.RWMutex
	cache map[string]*Document
}

// NewStore creates a document store over the given roots.
func NewStore(schemaRoot, specRoot, alternateRoot string) *Store {
	return &Store{
		schemaRoot:    schemaRoot,
		specRoot:      specRoot,
		alternateRoot: alternateRoot,
		metrics:       observability.NoopMetrics{},
		cache:         make(map[string]*Document),
	}
}

// WithMetrics sets the metrics collector used for resolution counters.
func (s *Store) WithMetrics(metrics observability.Metrics) *Store {
	if metrics != nil {
		s.metrics = metrics
	}
	return s
}

// candidates returns the ordered physical locations tried for a name.
func (s *Store) candidates(name string) []string {
	return []string{
		filepath.Join(s.schemaRoot, filepath.FromSlash(name)+".json"),
		filepath.Join(s.schemaRoot, filepath.FromSlash(name), "index.json"),
		filepath.Join(s.specRoot, filepath.FromSlash(name)),
		filepath.Join(s.alternateRoot, "schemas", filepath.FromSlash(name)+".json"),
	}
}

// Resolve returns the document for a logical schema name, trying each
// candidate location in order. A candidate that exists but does not parse
// is skipped so a malformed file cannot shadow a valid one later in the
// chain. Hits are cached by name; misses are not, so documents created
// after startup become visible without a restart.
func (s *Store) Resolve(name string) (*Document, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	s.mu.RLock()
	doc, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		s.metrics.Counter(observability.MetricSchemaCacheHits, 1)
		return doc, nil
	}

	for _, path := range s.candidates(name) {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}

		doc := &Document{Name: name, Raw: raw, Value: value}
		s.mu.Lock()
		if existing, exists := s.cache[name]; exists {
			// Another caller resolved the same name first; keep its
			// document so cached pointers stay stable.
			doc = existing
		} else {
			s.cache[name] = doc
		}
		s.mu.Unlock()

		s.metrics.Counter(observability.MetricSchemaResolutions, 1)
		return doc, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// validName rejects empty names and names with a ".." path segment so a
// lookup cannot escape the configured roots. A literal ".." inside a
// segment (e.g. "a..b") is a legitimate name.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == ".." {
			return false
		}
	}
	return true
}
