// Package reader provides row access and schema inference for the table
// file formats the lake manages: CSV and Apache Parquet.
//
// Parquet support uses the segmentio/parquet-go library and returns rows as
// maps for flexible data access. All file access goes through an afero
// filesystem so tests can run against an in-memory fs.
package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/parquet-go"
	"github.com/spf13/afero"
)

// ParquetReader reads parquet files and returns rows as maps.
//
// It keeps both the underlying file handle and the parquet file handle so
// resources can be released properly.
type ParquetReader struct {
	file   afero.File
	pqFile *parquet.File
}

// NewParquetReader opens and validates a parquet file.
func NewParquetReader(fs afero.Fs, path string) (*ParquetReader, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &ParquetReader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads all rows from the parquet file into memory.
//
// Each row is a map from column name to value. The whole file is
// materialized, so this is not suitable for very large files.
func (r *ParquetReader) ReadAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0)

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Schema returns the parquet file schema from the footer metadata.
func (r *ParquetReader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close releases the reader's resources. Safe to call multiple times.
func (r *ParquetReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// parquetTypeName converts a parquet field's physical and logical types into
// a simpler, recognizable type name for the catalog schema.
func parquetTypeName(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	if logicalType := field.Type().LogicalType(); logicalType != nil {
		switch logicalType.String() {
		case "STRING", "UTF8":
			return "STRING"
		case "DATE":
			return "DATE"
		case "TIME":
			return "TIME"
		case "TIMESTAMP":
			return "TIMESTAMP"
		case "DECIMAL":
			return "DECIMAL"
		case "UUID":
			return "UUID"
		case "JSON":
			return "JSON"
		}
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// parquetSchema extracts a column name to type name mapping from the file's
// footer metadata without reading any row data. Nested fields use dot
// notation (e.g. "address.street").
func parquetSchema(fs afero.Fs, path string) (map[string]string, error) {
	r, err := NewParquetReader(fs, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	schema := make(map[string]string)
	for _, field := range r.Schema().Fields() {
		collectFieldTypes(field, "", schema)
	}
	return schema, nil
}

// collectFieldTypes walks a field tree, recording leaf field types.
func collectFieldTypes(field parquet.Field, prefix string, out map[string]string) {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}

	children := field.Fields()
	if len(children) > 0 {
		for _, child := range children {
			collectFieldTypes(child, name, out)
		}
		return
	}

	out[name] = parquetTypeName(field)
}
