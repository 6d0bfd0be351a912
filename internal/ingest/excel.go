package ingest

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var xlsxMagic = []byte{0x50, 0x4b, 0x03, 0x04} // ZIP local file header

// IsXLSX reports whether a payload is an XLSX workbook rather than plain
// delimited text.
func IsXLSX(payload []byte) bool {
	return bytes.HasPrefix(payload, xlsxMagic)
}

// RowsFromXLSX reads the first sheet of an XLSX payload into the same
// row-of-strings shape SplitRows produces, so everything downstream of the
// reader is shared between the two formats.
func RowsFromXLSX(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var out [][]string
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if cell != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out, nil
}
