// Package catalog defines the data lake's table catalog and its JSON-backed
// store.
//
// The catalog maps logical table names to metadata entries. It is persisted
// as a single JSON document under metadata/catalog.json and is always loaded
// and saved whole. There is no locking: read-modify-write cycles are not
// atomic across processes.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// TablesDirName holds copied data and description files, named by index.
	TablesDirName = "tables"
	// MetadataDirName holds the catalog document.
	MetadataDirName = "metadata"

	catalogFileName = "catalog.json"
)

var (
	// ErrTableExists is returned when registering a logical name that is
	// already in the catalog.
	ErrTableExists = errors.New("table already exists")

	// ErrTableNotFound is returned when looking up an unknown logical name.
	ErrTableNotFound = errors.New("table not found")

	// ErrUnsupportedFormat is returned for any file format other than csv
	// and parquet.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Format identifies a supported table file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// FormatForPath determines the format from a file path's extension.
// Extensions are matched case-insensitively.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: only .csv and .parquet are supported, got %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Entry is the catalog metadata for a single table. Entries are created once
// by the registrar and never updated or deleted.
type Entry struct {
	Index           int               `json:"index"`
	File            string            `json:"file"`
	DescriptionFile *string           `json:"description_file"`
	Format          Format            `json:"format"`
	Schema          map[string]string `json:"schema"`
}

// Catalog maps logical table names to entries. Each entry's index equals the
// catalog size at the time it was inserted; indices are never reused.
type Catalog map[string]Entry

// Get returns the entry for a logical name.
func (c Catalog) Get(name string) (Entry, error) {
	entry, ok := c[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return entry, nil
}

// Store persists the catalog document under a managed storage root.
//
// The store exclusively owns the document lifecycle: Load reads it fully
// into memory, Save writes it fully back. A crash mid-save can corrupt the
// document; this is an accepted limitation of the current scope.
type Store struct {
	fs   afero.Fs
	root string
}

// NewStore creates a store for the given managed storage root.
func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

// Root returns the managed storage root directory.
func (s *Store) Root() string {
	return s.root
}

// TablesDir returns the directory holding copied table files.
func (s *Store) TablesDir() string {
	return filepath.Join(s.root, TablesDirName)
}

// DocumentPath returns the path of the catalog document.
func (s *Store) DocumentPath() string {
	return filepath.Join(s.root, MetadataDirName, catalogFileName)
}

// Ensure creates the managed directory structure if it does not exist.
func (s *Store) Ensure() error {
	if err := s.fs.MkdirAll(s.TablesDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create tables directory: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Join(s.root, MetadataDirName), 0o755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}
	return nil
}

// Load reads the full catalog from the document. If the document does not
// exist yet, an empty catalog is materialized and persisted first.
func (s *Store) Load() (Catalog, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, s.DocumentPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read catalog document: %w", err)
		}
		empty := Catalog{}
		if err := s.Save(empty); err != nil {
			return nil, err
		}
		return empty, nil
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("malformed catalog document %s: %w", s.DocumentPath(), err)
	}
	if catalog == nil {
		catalog = Catalog{}
	}
	return catalog, nil
}

// Save serializes the full catalog back to the document, overwriting it.
// Serialization is deterministic: encoding/json emits map keys sorted, so
// saving the same catalog twice produces byte-identical documents.
func (s *Store) Save(catalog Catalog) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize catalog: %w", err)
	}
	data = append(data, '\n')

	if err := afero.WriteFile(s.fs, s.DocumentPath(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog document: %w", err)
	}
	return nil
}
