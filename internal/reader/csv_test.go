package reader

import (
	"testing"

	"github.com/spf13/afero"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestReadCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "data.csv", "id,name,score,active\n1,alice,9.5,true\n2,bob,,false\n")

	rows, err := ReadCSV(fs, "data.csv")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if got, want := first["id"], int64(1); got != want {
		t.Errorf("id = %v (%T), want %v", got, got, want)
	}
	if got, want := first["name"], "alice"; got != want {
		t.Errorf("name = %v, want %v", got, want)
	}
	if got, want := first["score"], 9.5; got != want {
		t.Errorf("score = %v (%T), want %v", got, got, want)
	}
	if got, want := first["active"], true; got != want {
		t.Errorf("active = %v, want %v", got, want)
	}

	if rows[1]["score"] != nil {
		t.Errorf("empty cell = %v, want nil", rows[1]["score"])
	}
}

func TestReadCSV_EmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "empty.csv", "")

	rows, err := ReadCSV(fs, "empty.csv")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestReadCSV_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := ReadCSV(fs, "nope.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCSVSchema(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]string
	}{
		{
			name:    "mixed types",
			content: "id,name,score,active\n1,alice,9.5,true\n2,bob,3,false\n",
			want:    map[string]string{"id": "INT64", "name": "STRING", "score": "FLOAT64", "active": "BOOLEAN"},
		},
		{
			name:    "int widens to float",
			content: "v\n1\n2.5\n",
			want:    map[string]string{"v": "FLOAT64"},
		},
		{
			name:    "mixed values widen to string",
			content: "v\n1\nhello\n",
			want:    map[string]string{"v": "STRING"},
		},
		{
			name:    "header only defaults to string",
			content: "a,b\n",
			want:    map[string]string{"a": "STRING", "b": "STRING"},
		},
		{
			name:    "empty cells ignored for sniffing",
			content: "v\n\n42\n",
			want:    map[string]string{"v": "INT64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "data.csv", tt.content)

			got, err := csvSchema(fs, "data.csv")
			if err != nil {
				t.Fatalf("csvSchema() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("schema = %v, want %v", got, tt.want)
			}
			for col, typ := range tt.want {
				if got[col] != typ {
					t.Errorf("schema[%q] = %q, want %q", col, got[col], typ)
				}
			}
		})
	}
}
