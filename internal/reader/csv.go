package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/afero"
)

// schemaSampleRows bounds how many data rows the CSV schema sniffer reads.
const schemaSampleRows = 100

// ReadCSV reads all rows from a CSV file, using the first record as the
// header. Cell values are converted to the narrowest matching Go type
// (int64, float64, bool) and left as strings otherwise. Empty cells become
// nil.
func ReadCSV(fs afero.Fs, path string) ([]map[string]interface{}, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	r := csv.NewReader(file)

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return []map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	rows := make([]map[string]interface{}, 0)
	for {
		record, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		row := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i >= len(record) {
				row[col] = nil
				continue
			}
			row[col] = parseCSVValue(record[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// parseCSVValue converts a raw CSV cell into a typed value.
func parseCSVValue(raw string) interface{} {
	if raw == "" {
		return nil
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return raw
}

// csvSchema infers a column name to type name mapping from the header and a
// bounded sample of data rows. The full file is never materialized.
//
// A column's type is the narrowest name that fits every sampled value:
// INT64 narrows to FLOAT64, and any non-numeric value widens the column to
// STRING. Columns with no sampled values default to STRING.
func csvSchema(fs afero.Fs, path string) (map[string]string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	r := csv.NewReader(file)

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	types := make([]string, len(header))
	for sampled := 0; sampled < schemaSampleRows; sampled++ {
		record, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		for i := range header {
			if i >= len(record) || record[i] == "" {
				continue
			}
			types[i] = widenCSVType(types[i], record[i])
		}
	}

	schema := make(map[string]string, len(header))
	for i, col := range header {
		if types[i] == "" {
			types[i] = "STRING"
		}
		schema[col] = types[i]
	}
	return schema, nil
}

// widenCSVType folds one sampled value into the column's current type name.
func widenCSVType(current, raw string) string {
	observed := "STRING"
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		observed = "INT64"
	} else if _, err := strconv.ParseFloat(raw, 64); err == nil {
		observed = "FLOAT64"
	} else if _, err := strconv.ParseBool(raw); err == nil {
		observed = "BOOLEAN"
	}

	switch {
	case current == "" || current == observed:
		return observed
	case current == "INT64" && observed == "FLOAT64":
		return "FLOAT64"
	case current == "FLOAT64" && observed == "INT64":
		return "FLOAT64"
	default:
		return "STRING"
	}
}
