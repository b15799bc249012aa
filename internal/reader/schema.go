package reader

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/catalog"
)

// InferSchema extracts a column name to type name mapping for the file at
// path, interpreted according to format.
//
// Neither format materializes the full dataset: parquet reads only the file
// footer, CSV reads the header plus a bounded sample of rows.
func InferSchema(fs afero.Fs, path string, format catalog.Format) (map[string]string, error) {
	switch format {
	case catalog.FormatCSV:
		return csvSchema(fs, path)
	case catalog.FormatParquet:
		return parquetSchema(fs, path)
	default:
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnsupportedFormat, format)
	}
}
