package reader

import (
	"testing"

	"github.com/segmentio/parquet-go"
	"github.com/spf13/afero"

	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/catalog"
)

// testRow matches the CSV fixture used in the cross-format test
type testRow struct {
	ID   int64   `parquet:"id"`
	Name string  `parquet:"name"`
	Age  int64   `parquet:"age"`
	Rate float64 `parquet:"rate"`
	Done bool    `parquet:"done"`
}

func writeParquetFile(t *testing.T, fs afero.Fs, path string, rows []testRow) {
	t.Helper()

	f, err := fs.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	writer := parquet.NewGenericWriter[testRow](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write parquet rows: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close parquet writer: %v", err)
	}
}

func TestInferSchema_Parquet(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeParquetFile(t, fs, "data.parquet", []testRow{
		{ID: 1, Name: "alice", Age: 30, Rate: 1.5, Done: true},
	})

	schema, err := InferSchema(fs, "data.parquet", catalog.FormatParquet)
	if err != nil {
		t.Fatalf("InferSchema() error = %v", err)
	}

	want := map[string]string{
		"id":   "INT64",
		"name": "STRING",
		"age":  "INT64",
		"rate": "FLOAT64",
		"done": "BOOLEAN",
	}
	if len(schema) != len(want) {
		t.Fatalf("schema = %v, want %v", schema, want)
	}
	for col, typ := range want {
		if schema[col] != typ {
			t.Errorf("schema[%q] = %q, want %q", col, schema[col], typ)
		}
	}
}

func TestInferSchema_UnsupportedFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := InferSchema(fs, "data.json", catalog.Format("json"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

// The same logical table in CSV and parquet form must infer the same column
// name set; type names may legitimately differ by format.
func TestInferSchema_CrossFormatColumnSets(t *testing.T) {
	fs := afero.NewMemMapFs()

	writeFile(t, fs, "data.csv", "id,name,age,rate,done\n1,alice,30,1.5,true\n")
	writeParquetFile(t, fs, "data.parquet", []testRow{
		{ID: 1, Name: "alice", Age: 30, Rate: 1.5, Done: true},
	})

	csvSchema, err := InferSchema(fs, "data.csv", catalog.FormatCSV)
	if err != nil {
		t.Fatalf("csv InferSchema() error = %v", err)
	}
	pqSchema, err := InferSchema(fs, "data.parquet", catalog.FormatParquet)
	if err != nil {
		t.Fatalf("parquet InferSchema() error = %v", err)
	}

	if len(csvSchema) != len(pqSchema) {
		t.Fatalf("column counts differ: csv %v vs parquet %v", csvSchema, pqSchema)
	}
	for col := range csvSchema {
		if _, ok := pqSchema[col]; !ok {
			t.Errorf("column %q inferred from csv but not parquet", col)
		}
	}
}

func TestParquetReader_ReadAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeParquetFile(t, fs, "data.parquet", []testRow{
		{ID: 1, Name: "alice", Age: 30, Rate: 1.5, Done: true},
		{ID: 2, Name: "bob", Age: 25, Rate: 2.5, Done: false},
	})

	r, err := NewParquetReader(fs, "data.parquet")
	if err != nil {
		t.Fatalf("NewParquetReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["name"] != "alice" {
		t.Errorf("name = %v, want alice", rows[0]["name"])
	}
}

func TestNewParquetReader_InvalidFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "bad.parquet", "this is not parquet")

	if _, err := NewParquetReader(fs, "bad.parquet"); err == nil {
		t.Error("expected error for invalid parquet file")
	}
}
