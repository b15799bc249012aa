package catalog

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    Format
		wantErr bool
	}{
		{name: "csv", path: "data/orders.csv", want: FormatCSV},
		{name: "parquet", path: "returns.parquet", want: FormatParquet},
		{name: "uppercase extension", path: "ORDERS.CSV", want: FormatCSV},
		{name: "json rejected", path: "orders.json", wantErr: true},
		{name: "no extension", path: "orders", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestStore_Load_MaterializesEmptyCatalog(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "my-datalake")

	cat, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, cat)

	// The empty document and directory structure must now exist.
	exists, err := afero.Exists(fs, store.DocumentPath())
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = afero.DirExists(fs, store.TablesDir())
	require.NoError(t, err)
	require.True(t, exists)
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "lake")
	require.NoError(t, store.Ensure())

	desc := "tables/0.description.md"
	cat := Catalog{
		"orders": {
			Index:           0,
			File:            "tables/0.csv",
			DescriptionFile: &desc,
			Format:          FormatCSV,
			Schema:          map[string]string{"id": "INT64", "name": "STRING"},
		},
		"returns": {
			Index:  1,
			File:   "tables/1.parquet",
			Format: FormatParquet,
			Schema: map[string]string{"id": "INT64"},
		},
	}

	require.NoError(t, store.Save(cat))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, cat, loaded)
}

func TestStore_Save_Deterministic(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "lake")

	cat := Catalog{
		"b_table": {Index: 1, File: "tables/1.csv", Format: FormatCSV, Schema: map[string]string{"x": "INT64", "y": "STRING"}},
		"a_table": {Index: 0, File: "tables/0.csv", Format: FormatCSV, Schema: map[string]string{"z": "FLOAT64"}},
	}

	require.NoError(t, store.Ensure())
	require.NoError(t, store.Save(cat))
	first, err := afero.ReadFile(fs, store.DocumentPath())
	require.NoError(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Save(loaded))
	second, err := afero.ReadFile(fs, store.DocumentPath())
	require.NoError(t, err)

	require.Equal(t, first, second, "save(load()) must be byte-identical")
}

func TestStore_Load_MalformedDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "lake")
	require.NoError(t, store.Ensure())
	require.NoError(t, afero.WriteFile(fs, store.DocumentPath(), []byte("{not json"), 0o644))

	_, err := store.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed catalog document")
}

func TestCatalog_Get(t *testing.T) {
	cat := Catalog{"orders": {Index: 0, File: "tables/0.csv", Format: FormatCSV}}

	entry, err := cat.Get("orders")
	require.NoError(t, err)
	require.Equal(t, 0, entry.Index)

	_, err = cat.Get("missing")
	require.ErrorIs(t, err, ErrTableNotFound)
}
