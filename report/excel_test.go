package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/R3natoky/photoutm/config"
)

func TestExcelGenerate(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "coordenadas_utm_test_ordenado")

	// Records point at files that do not exist, so the photo column
	// stays empty but the data must still be written.
	temps, err := (&ExcelGenerator{}).Generate(sampleRecords(), base)
	require.NoError(t, err)
	assert.Empty(t, temps)

	wb, err := excelize.OpenFile(base + "_con_fotos.xlsx")
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{config.ExcelSheetName}, wb.GetSheetList())

	rows, err := wb.GetRows(config.ExcelSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Foto", rows[0][0])
	assert.Equal(t, config.ColumnFileStem, rows[0][1])
	assert.Equal(t, config.ColumnHemisphere, rows[0][9])

	assert.Equal(t, "a", rows[1][1])
	assert.Equal(t, "Mirador", rows[1][2])
	assert.Equal(t, "a.jpg", rows[1][4])
	assert.Equal(t, "N", rows[1][9])
	assert.Equal(t, "S", rows[2][9])
}
