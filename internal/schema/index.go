package schema

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// Entry describes one schema document found under the schema root.
type Entry struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Index enumerates schema documents under a root directory. Listings are
// recomputed on every call; nothing is cached.
type Index struct {
	root string
}

// NewIndex creates an index over the given schema root.
func NewIndex(root string) *Index {
	return &Index{root: root}
}

// List walks the schema root and returns an entry for every .json file,
// named by its extension-stripped relative path. Title and description are
// harvested best-effort: a file that fails to parse is still listed, just
// without metadata. Entries follow directory traversal order. A non-empty
// filter keeps only names containing it as a case-sensitive substring.
func (ix *Index) List(filter string) []Entry {
	entries := []Entry{}

	_ = filepath.WalkDir(ix.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree; enumeration is best-effort.
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		rel, err := filepath.Rel(ix.root, path)
		if err != nil {
			return nil
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), ".json")
		if filter != "" && !strings.Contains(name, filter) {
			return nil
		}

		entry := Entry{Name: name}
		if raw, readErr := os.ReadFile(path); readErr == nil {
			var meta struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			}
			if json.Unmarshal(raw, &meta) == nil {
				entry.Title = meta.Title
				entry.Description = meta.Description
			}
		}

		entries = append(entries, entry)
		return nil
	})

	return entries
}
