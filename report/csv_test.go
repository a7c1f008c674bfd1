package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3natoky/photoutm/scan"
)

func sampleRecords() []scan.PhotoRecord {
	return []scan.PhotoRecord{
		{
			Filename:    "a.jpg",
			FileStem:    "a",
			CustomName:  "Mirador",
			Description: "Vista general",
			Timestamp:   "2023:05:17 14:03:21",
			Latitude:    40.7128,
			Longitude:   -74.006,
			Easting:     583960.12,
			Northing:    4507523.34,
			Zone:        18,
			Hemisphere:  "N",
		},
		{
			Filename:   "b.jpg",
			FileStem:   "b",
			Latitude:   -33.8688,
			Longitude:  151.2093,
			Easting:    334417.5,
			Northing:   6250946.8,
			Zone:       56,
			Hemisphere: "S",
		},
	}
}

func TestCSVGenerate(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "coordenadas_utm_test_ordenado")

	temps, err := (&CSVGenerator{}).Generate(sampleRecords(), base)
	require.NoError(t, err)
	assert.Empty(t, temps)

	raw, err := os.ReadFile(base + ".csv")
	require.NoError(t, err)

	// Starts with the UTF-8 BOM.
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))

	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"a", "Mirador", "Vista general", "a.jpg", "2023:05:17 14:03:21",
		"40.7128000", "-74.0060000", "583960.12", "4507523.34", "18", "N",
	}, rows[1])
	assert.Equal(t, "b.jpg", rows[2][3])
	assert.Equal(t, "", rows[2][4])
}

func TestForFormat(t *testing.T) {
	for _, format := range Formats {
		g, err := ForFormat(format)
		require.NoError(t, err)
		assert.NotNil(t, g)
	}

	_, err := ForFormat("docx")
	assert.Error(t, err)
}

func TestCaptureTime(t *testing.T) {
	ts, ok := captureTime(scan.PhotoRecord{Timestamp: "2023:05:17 14:03:21"})
	require.True(t, ok)
	assert.Equal(t, 2023, ts.Year())
	assert.Equal(t, 17, ts.Day())

	_, ok = captureTime(scan.PhotoRecord{})
	assert.False(t, ok)

	_, ok = captureTime(scan.PhotoRecord{Timestamp: "2023-05-17 14:03:21"})
	assert.False(t, ok)
}
