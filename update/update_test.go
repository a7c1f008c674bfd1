package update

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/R3natoky/photoutm/config"
)

func writeWorkbook(t *testing.T, path, sheet string, rows [][]interface{}) {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	idx, err := wb.NewSheet(sheet)
	require.NoError(t, err)
	wb.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		require.NoError(t, wb.DeleteSheet("Sheet1"))
	}

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, wb.SetCellValue(sheet, cell, v))
		}
	}

	require.NoError(t, wb.SaveAs(path))
}

func standardRows() [][]interface{} {
	return [][]interface{}{
		{"Foto", config.ColumnFileStem, config.ColumnCustomName, config.ColumnDescription, config.ColumnFilename},
		{"", "a", "Mirador", "Vista general", "a.jpg"},
		{"", "b", "", "", "b.jpg"},
		{"", "c", "Faro", "", "c.jpg"},
	}
}

func TestReadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wb.xlsx")
	writeWorkbook(t, path, config.ExcelSheetName, standardRows())

	rows, err := ReadWorkbook(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{Filename: "a.jpg", CustomName: "Mirador", Description: "Vista general"}, rows[0])
	assert.Equal(t, Row{Filename: "b.jpg"}, rows[1])
	assert.Equal(t, Row{Filename: "c.jpg", CustomName: "Faro"}, rows[2])
}

func TestReadWorkbookFallsBackToFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wb.xlsx")
	writeWorkbook(t, path, "Renamed", standardRows())

	rows, err := ReadWorkbook(path)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestReadWorkbookRequiresFilenameColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wb.xlsx")
	writeWorkbook(t, path, config.ExcelSheetName, [][]interface{}{
		{"Foto", config.ColumnCustomName},
		{"", "Mirador"},
	})

	_, err := ReadWorkbook(path)
	assert.Error(t, err)
}

func TestReadWorkbookSkipsEmptyFilename(t *testing.T) {
	rows := standardRows()
	rows = append(rows, []interface{}{"", "d", "Nombre", "Texto", ""})

	path := filepath.Join(t.TempDir(), "wb.xlsx")
	writeWorkbook(t, path, config.ExcelSheetName, rows)

	got, err := ReadWorkbook(path)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

// recordingWriter captures write calls instead of touching files.
type recordingWriter struct {
	calls  []Row
	failOn string
}

func (w *recordingWriter) Write(path, customName, description string) error {
	if w.failOn != "" && filepath.Base(path) == w.failOn {
		return assert.AnError
	}
	w.calls = append(w.calls, Row{Filename: filepath.Base(path), CustomName: customName, Description: description})
	return nil
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	wbPath := filepath.Join(dir, "wb.xlsx")
	writeWorkbook(t, wbPath, config.ExcelSheetName, standardRows())

	// a.jpg exists, c.jpg does not.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("x"), 0o644))

	w := &recordingWriter{}
	summary, err := Run(wbPath, dir, w)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.SkippedNoData)
	assert.Equal(t, 1, summary.SkippedNoFile)
	assert.Equal(t, 0, summary.Errors)

	require.Len(t, w.calls, 1)
	assert.Equal(t, "a.jpg", w.calls[0].Filename)
	assert.Equal(t, "Mirador", w.calls[0].CustomName)
}

func TestRunReportsWriterErrors(t *testing.T) {
	dir := t.TempDir()
	wbPath := filepath.Join(dir, "wb.xlsx")
	writeWorkbook(t, wbPath, config.ExcelSheetName, standardRows())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0o644))

	w := &recordingWriter{failOn: "a.jpg"}
	summary, err := Run(wbPath, dir, w)
	require.Error(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 0, summary.Updated)
}
