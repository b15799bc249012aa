// Package rewrite substitutes logical table names in SQL text with quoted
// file-path literals before the query reaches the engine.
//
// The rewriter is a lexical approximation, not a SQL parser: it scans for
// whole-word tokens and does not distinguish identifiers from string
// literals or keywords. Substitution is anchored to word boundaries, so a
// catalog name that is a substring of a longer identifier (e.g. "sales"
// inside "sales_region") is never replaced.
package rewrite

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/catalog"
)

// wordPattern matches whole-word tokens: alphanumeric/underscore runs
// bounded by non-word characters.
var wordPattern = regexp.MustCompile(`\b\w+\b`)

// Rewrite replaces every whole-word occurrence of a catalog table name in
// sql with the entry's file path joined to root, in forward-slash form and
// wrapped in single quotes. It returns the rewritten SQL and the sorted list
// of matched names.
//
// The output is assembled in a single pass over the original string using
// token position spans, so substituted text is never re-scanned and one
// replacement can never trigger another.
func Rewrite(sql string, cat catalog.Catalog, root string) (string, []string) {
	spans := wordPattern.FindAllStringIndex(sql, -1)
	if len(spans) == 0 {
		return sql, nil
	}

	matched := make(map[string]struct{})
	var out strings.Builder
	last := 0

	for _, span := range spans {
		start, end := span[0], span[1]
		token := sql[start:end]

		entry, ok := cat[token]
		if !ok {
			continue
		}
		matched[token] = struct{}{}

		out.WriteString(sql[last:start])
		out.WriteByte('\'')
		out.WriteString(filepath.ToSlash(filepath.Join(root, entry.File)))
		out.WriteByte('\'')
		last = end
	}

	if len(matched) == 0 {
		return sql, nil
	}
	out.WriteString(sql[last:])

	names := make([]string, 0, len(matched))
	for name := range matched {
		names = append(names, name)
	}
	sort.Strings(names)

	return out.String(), names
}
