// Package uistate persists per-user view state (tree expansion, table sort)
// between sitedesk sessions. Values are small JSON documents kept on disk
// with diskv, one file per key.
package uistate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/alexanderramin/sitedesk/internal/grid"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	"github.com/peterbourgon/diskv/v3"
)

const (
	expandCollection = "expand"
	sortCollection   = "sort"
)

// Store reads and writes view state under a base directory.
type Store struct {
	d *diskv.Diskv
}

// Open returns a Store rooted at dir. The directory is created on first write.
func Open(dir string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          dir,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      256 * 1024,
	})}
}

type expandDoc struct {
	Expanded []string `json:"expanded"`
}

type sortDoc struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// ExpandState returns the saved expansion for a project's schedule tree.
// ok is false when nothing was saved yet, so the caller can fall back to
// wbs.DefaultExpanded.
func (s *Store) ExpandState(projectID string) (state wbs.ExpandState, ok bool, err error) {
	var doc expandDoc
	ok, err = s.read(key(expandCollection, projectID), &doc)
	if err != nil || !ok {
		return nil, ok, err
	}
	return wbs.NewExpandState(doc.Expanded), true, nil
}

func (s *Store) SaveExpandState(projectID string, state wbs.ExpandState) error {
	return s.write(key(expandCollection, projectID), expandDoc{Expanded: state.IDs()})
}

// Sort returns the saved sort for a table. ok is false when none was saved.
func (s *Store) Sort(table string) (cfg grid.SortConfig, ok bool, err error) {
	var doc sortDoc
	ok, err = s.read(key(sortCollection, table), &doc)
	if err != nil || !ok {
		return grid.SortConfig{}, ok, err
	}
	return grid.SortConfig{Key: doc.Key, Direction: grid.ParseSortDirection(doc.Direction)}, true, nil
}

func (s *Store) SaveSort(table string, cfg grid.SortConfig) error {
	return s.write(key(sortCollection, table), sortDoc{Key: cfg.Key, Direction: cfg.Direction.String()})
}

// Forget drops all saved state for a project. Missing entries are ignored.
func (s *Store) Forget(projectID string) error {
	err := s.d.Erase(key(expandCollection, projectID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("erasing expand state: %w", err)
	}
	return nil
}

func (s *Store) read(k string, v any) (bool, error) {
	if !s.d.Has(k) {
		return false, nil
	}
	b, err := s.d.Read(k)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", k, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", k, err)
	}
	return true, nil
}

func (s *Store) write(k string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", k, err)
	}
	if err := s.d.Write(k, b); err != nil {
		return fmt.Errorf("writing %s: %w", k, err)
	}
	return nil
}

// key joins a collection and a name. Path separators in name are replaced
// so every key maps to exactly one file inside the collection directory.
func key(collection, name string) string {
	name = strings.NewReplacer("/", "_", "\\", "_", "-", "_").Replace(name)
	if name == "" {
		name = "_"
	}
	return collection + "-" + name
}

func keyToPath(k string) *diskv.PathKey {
	collection, name, _ := strings.Cut(k, "-")
	return &diskv.PathKey{Path: []string{collection}, FileName: name + ".json"}
}

func pathToKey(pk *diskv.PathKey) string {
	return strings.Join(pk.Path, "-") + "-" + strings.TrimSuffix(pk.FileName, ".json")
}
