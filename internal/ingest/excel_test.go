package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows onto the first sheet of an in-memory workbook.
// A nil row leaves that sheet row empty.
func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		start, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, start, &cells))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestIsXLSX(t *testing.T) {
	wb := buildWorkbook(t, [][]string{{"S/N", "COW ID"}})
	require.True(t, IsXLSX(wb))
	require.False(t, IsXLSX([]byte("S/N,COW ID\n")))
	require.False(t, IsXLSX(nil))
}

func TestRowsFromXLSX_DropsEmptyRows(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		{"S/N", "COW ID", "From Location", "To Location"},
		{"1", "COW-1", "A WH", "B Site"},
		nil, // gap left by a deleted sheet row
		{"2", "COW-2", "B Site", "A WH"},
	})

	rows, err := RowsFromXLSX(wb)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "COW-2", rows[2][1])
}

func TestRowsFromXLSX_RejectsCorruptWorkbook(t *testing.T) {
	_, err := RowsFromXLSX([]byte("PK\x03\x04 not actually a workbook"))
	require.Error(t, err)
}

func TestRowsFromXLSX_SnapshotMatchesCSVEquivalent(t *testing.T) {
	table := [][]string{
		{"S/N", "COW ID", "Vendor Name", "From Location", "To Location", "Moved Date", "Reached Date", "Distance (KM)"},
		{"1", "COW-1", "NodeTel", "Riyadh Main WH", "Jeddah Corniche", "2023-03-01 08:00:00", "2023-03-01 18:30:00", "870.5"},
		{"2", "COW-2", "Wavecom", "Jeddah Corniche", "Riyadh Main WH", "2023-04-02 09:00:00", "2023-04-02 14:00:00", "870.5"},
	}

	lines := make([]string, len(table))
	for i, row := range table {
		lines[i] = strings.Join(row, ",")
	}
	csvRows := SplitRows(strings.Join(lines, "\n") + "\n")

	xlsxRows, err := RowsFromXLSX(buildWorkbook(t, table))
	require.NoError(t, err)
	require.Equal(t, csvRows, xlsxRows)

	n := testNormalizer(t)
	require.Equal(t, n.Normalize(csvRows), n.Normalize(xlsxRows))
}
