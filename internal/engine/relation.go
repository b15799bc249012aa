package engine

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/reader"
)

// Engine executes SQL queries over CSV and Parquet files.
type Engine struct {
	fs afero.Fs
}

// New creates an engine reading sources from the given filesystem.
func New(fs afero.Fs) *Engine {
	return &Engine{fs: fs}
}

// Query parses sql and returns a lazy relation over its result.
//
// Parsing happens eagerly so syntax errors surface immediately, but no file
// is opened until the relation's rows are consumed.
func (e *Engine) Query(sql string) (*Relation, error) {
	q, err := Parse(sql)
	if err != nil {
		return nil, err
	}
	return &Relation{engine: e, query: q, sql: sql}, nil
}

// Relation is a lazy handle over a query result.
//
// Rows re-executes the query on every call, so the handle is reusable for
// repeated consumption.
type Relation struct {
	engine *Engine
	query  *Query
	sql    string
}

// SQL returns the query string the relation was built from.
func (r *Relation) SQL() string {
	return r.sql
}

// Rows executes the query and returns the result rows.
func (r *Relation) Rows() ([]map[string]interface{}, error) {
	rows, err := r.engine.readSource(r.query.Source)
	if err != nil {
		return nil, err
	}

	rows, err = ApplyFilter(rows, r.query.Filter)
	if err != nil {
		return nil, err
	}

	if len(r.query.OrderBy) > 0 {
		sortRows(rows, r.query.OrderBy)
	}

	rows = applyLimit(rows, r.query.Limit, r.query.Offset)

	if len(r.query.Select) > 0 {
		rows, err = project(rows, r.query.Select)
		if err != nil {
			return nil, err
		}
	}

	return rows, nil
}

// Columns executes the query and returns the result column names, sorted.
func (r *Relation) Columns() ([]string, error) {
	if len(r.query.Select) > 0 {
		columns := make([]string, 0, len(r.query.Select))
		for _, item := range r.query.Select {
			name := item.Column
			if item.Alias != "" {
				name = item.Alias
			}
			columns = append(columns, name)
		}
		return columns, nil
	}

	rows, err := r.Rows()
	if err != nil {
		return nil, err
	}
	columns := ColumnNames(rows)
	sort.Strings(columns)
	return columns, nil
}

// readSource reads all rows from a source file, dispatching on extension.
func (e *Engine) readSource(source string) ([]map[string]interface{}, error) {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".csv":
		return reader.ReadCSV(e.fs, source)
	case ".parquet":
		r, err := reader.NewParquetReader(e.fs, source)
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return r.ReadAll()
	default:
		return nil, fmt.Errorf("unsupported source %q: only .csv and .parquet files can be queried", source)
	}
}

// sortRows sorts rows in place by the given sort keys. Missing values sort
// before present ones.
func sortRows(rows []map[string]interface{}, keys []OrderByItem) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range keys {
			cmp := compareForSort(rows[i][key.Column], rows[j][key.Column])
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// compareForSort orders two values of possibly different types: nils first,
// then numbers, then bools, then strings, then everything else by its
// formatted form.
func compareForSort(left, right interface{}) int {
	if left == nil || right == nil {
		switch {
		case left == nil && right == nil:
			return 0
		case left == nil:
			return -1
		default:
			return 1
		}
	}

	leftNum, leftIsNum := toFloat64(left)
	rightNum, rightIsNum := toFloat64(right)
	if leftIsNum && rightIsNum {
		switch {
		case leftNum < rightNum:
			return -1
		case leftNum > rightNum:
			return 1
		default:
			return 0
		}
	}

	leftStr := fmt.Sprintf("%v", left)
	rightStr := fmt.Sprintf("%v", right)
	return strings.Compare(leftStr, rightStr)
}

// applyLimit applies OFFSET then LIMIT to rows.
func applyLimit(rows []map[string]interface{}, limit, offset *int64) []map[string]interface{} {
	if offset != nil {
		if *offset >= int64(len(rows)) {
			return rows[:0]
		}
		rows = rows[*offset:]
	}
	if limit != nil && *limit < int64(len(rows)) {
		rows = rows[:*limit]
	}
	return rows
}

// project applies the select list to rows, renaming aliased columns.
// Referencing a column absent from every row is an error.
func project(rows []map[string]interface{}, items []SelectItem) ([]map[string]interface{}, error) {
	for _, item := range items {
		found := false
		for _, row := range rows {
			if _, ok := row[item.Column]; ok {
				found = true
				break
			}
		}
		if !found && len(rows) > 0 {
			return nil, fmt.Errorf("unknown column %q", item.Column)
		}
	}

	projected := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		out := make(map[string]interface{}, len(items))
		for _, item := range items {
			name := item.Column
			if item.Alias != "" {
				name = item.Alias
			}
			out[name] = row[item.Column]
		}
		projected = append(projected, out)
	}
	return projected, nil
}
