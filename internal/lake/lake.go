// Package lake orchestrates the data lake: registering tables into managed
// storage, listing and fetching their metadata, and running rewritten
// queries against the embedded engine.
package lake

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/catalog"
	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/engine"
	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/reader"
	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/rewrite"
	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/vcs"
)

const descriptionSuffix = ".description.md"

// Lake is a handle on one managed storage root. All operations go through
// an explicit Lake value; there is no ambient state, and the catalog is
// re-loaded from its document on every operation.
//
// The lake is single-user: concurrent use against the same root must be
// serialized by the caller.
type Lake struct {
	fs     afero.Fs
	root   string
	store  *catalog.Store
	engine *engine.Engine
	snap   vcs.Snapshotter
	log    *zap.SugaredLogger
}

// Option configures a Lake.
type Option func(*Lake)

// WithFs replaces the OS filesystem, mainly for tests.
func WithFs(fs afero.Fs) Option {
	return func(l *Lake) { l.fs = fs }
}

// WithSnapshotter injects a version-control snapshotter. Without one,
// registration skips the snapshot step entirely.
func WithSnapshotter(s vcs.Snapshotter) Option {
	return func(l *Lake) { l.snap = s }
}

// WithLogger replaces the no-op logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(l *Lake) { l.log = log }
}

// New creates a lake over the given managed storage root.
func New(root string, opts ...Option) *Lake {
	l := &Lake{
		fs:   afero.NewOsFs(),
		root: root,
		log:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.store = catalog.NewStore(l.fs, root)
	l.engine = engine.New(l.fs)
	return l
}

// Root returns the managed storage root.
func (l *Lake) Root() string {
	return l.root
}

// AddTable registers a table under a logical name: the source file is copied
// into managed storage as <index><ext>, its schema is inferred from the
// copy, and the catalog is persisted. An optional description file is copied
// as <index>.description.md.
//
// The version-control snapshot at the end is best-effort: its failure is
// logged and the registration still succeeds. There is no rollback on
// partial failure, so a copy orphaned by a later inference error stays in
// managed storage.
func (l *Lake) AddTable(name, sourcePath, descriptionPath string) (catalog.Entry, error) {
	cat, err := l.store.Load()
	if err != nil {
		return catalog.Entry{}, err
	}

	if _, exists := cat[name]; exists {
		return catalog.Entry{}, fmt.Errorf("%w: %q", catalog.ErrTableExists, name)
	}

	format, err := catalog.FormatForPath(sourcePath)
	if err != nil {
		return catalog.Entry{}, err
	}

	index := len(cat)
	relFile := path.Join(catalog.TablesDirName, fmt.Sprintf("%d%s", index, format.Ext()))
	if err := l.copyFile(sourcePath, filepath.Join(l.root, relFile)); err != nil {
		return catalog.Entry{}, fmt.Errorf("failed to copy table file: %w", err)
	}

	var descFile *string
	if descriptionPath != "" {
		rel := path.Join(catalog.TablesDirName, fmt.Sprintf("%d%s", index, descriptionSuffix))
		if err := l.copyFile(descriptionPath, filepath.Join(l.root, rel)); err != nil {
			return catalog.Entry{}, fmt.Errorf("failed to copy description file: %w", err)
		}
		descFile = &rel
	}

	// Infer from the copy, not the original, so the catalog reflects
	// exactly what is stored.
	schema, err := reader.InferSchema(l.fs, filepath.Join(l.root, relFile), format)
	if err != nil {
		return catalog.Entry{}, fmt.Errorf("failed to infer schema: %w", err)
	}

	entry := catalog.Entry{
		Index:           index,
		File:            relFile,
		DescriptionFile: descFile,
		Format:          format,
		Schema:          schema,
	}
	cat[name] = entry

	if err := l.store.Save(cat); err != nil {
		return catalog.Entry{}, err
	}

	l.log.Infow("added table", "name", name, "index", index, "file", relFile)

	if l.snap != nil {
		if err := l.snap.Snapshot(fmt.Sprintf("Add table: %s", name)); err != nil {
			l.log.Warnw("version control snapshot failed", "name", name, "error", err)
		}
	}

	return entry, nil
}

// TableInfo pairs a logical name with its catalog entry.
type TableInfo struct {
	Name string
	catalog.Entry
}

// Tables returns all registered tables sorted by index. The listing is
// always complete; there is no truncation.
func (l *Lake) Tables() ([]TableInfo, error) {
	cat, err := l.store.Load()
	if err != nil {
		return nil, err
	}

	infos := make([]TableInfo, 0, len(cat))
	for name, entry := range cat {
		infos = append(infos, TableInfo{Name: name, Entry: entry})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Index < infos[j].Index })
	return infos, nil
}

// Meta returns the catalog entry for a logical name.
func (l *Lake) Meta(name string) (catalog.Entry, error) {
	cat, err := l.store.Load()
	if err != nil {
		return catalog.Entry{}, err
	}
	return cat.Get(name)
}

// Query rewrites logical table names in sql to managed file paths and hands
// the result to the engine. It returns the lazy relation and the rewritten
// SQL. Engine errors propagate verbatim.
func (l *Lake) Query(sql string) (*engine.Relation, string, error) {
	cat, err := l.store.Load()
	if err != nil {
		return nil, "", err
	}

	rewritten, matched := rewrite.Rewrite(sql, cat, l.root)
	l.log.Debugw("rewrote query", "matched", matched, "sql", rewritten)

	rel, err := l.engine.Query(rewritten)
	if err != nil {
		return nil, rewritten, err
	}
	return rel, rewritten, nil
}

// copyFile copies src to dst synchronously. A failure mid-transfer can
// leave a truncated file behind; there is no cleanup.
func (l *Lake) copyFile(src, dst string) error {
	in, err := l.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := l.fs.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
