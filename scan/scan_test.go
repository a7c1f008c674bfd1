package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3natoky/photoutm/metadata"
)

// fakeProvider serves canned tables by filename, so scans run against
// plain empty files on disk.
type fakeProvider struct {
	tables map[string]*metadata.MapTable
	errs   map[string]error
}

func (p fakeProvider) Open(path string) (metadata.Table, error) {
	name := filepath.Base(path)
	if err, ok := p.errs[name]; ok {
		return nil, err
	}
	tbl, ok := p.tables[name]
	if !ok {
		return nil, nil
	}
	return tbl, nil
}

func touchFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
}

func geotaggedTable(timestamp string) *metadata.MapTable {
	gps := metadata.NewMapTable()
	gps.Values[0x0001] = metadata.TextValue("N")
	gps.Values[0x0002] = metadata.RatValue(
		metadata.Rational{Num: 40, Den: 1},
		metadata.Rational{Num: 42, Den: 1},
		metadata.Rational{Num: 4608, Den: 100},
	)
	gps.Values[0x0003] = metadata.TextValue("W")
	gps.Values[0x0004] = metadata.RatValue(
		metadata.Rational{Num: 74, Den: 1},
		metadata.Rational{Num: 0, Den: 1},
		metadata.Rational{Num: 2160, Den: 100},
	)

	tbl := metadata.NewMapTable()
	if timestamp != "" {
		tbl.Values[metadata.TagDateTimeOriginal] = metadata.TextValue(timestamp)
	}
	tbl.Tables[metadata.TagGPSInfo] = gps
	return tbl
}

func describedTable(timestamp, description string) *metadata.MapTable {
	tbl := metadata.NewMapTable()
	if timestamp != "" {
		tbl.Values[metadata.TagDateTimeOriginal] = metadata.TextValue(timestamp)
	}
	if description != "" {
		tbl.Values[metadata.TagImageDescription] = metadata.TextValue(description)
	}
	return tbl
}

func newTestScanner(p metadata.Provider) *Scanner {
	s := New()
	s.Provider = p
	return s
}

func TestScanFolderThreeImageScenario(t *testing.T) {
	dir := t.TempDir()
	touchFiles(t, dir, "a.jpg", "b.jpg", "c.jpg")

	// b.jpg carries incomplete GPS tags and an unparsable date; c.jpg has
	// no metadata at all.
	partial := metadata.NewMapTable()
	partialGPS := metadata.NewMapTable()
	partialGPS.Values[0x0002] = metadata.RatValue(
		metadata.Rational{Num: 40, Den: 1},
		metadata.Rational{Num: 42, Den: 1},
		metadata.Rational{Num: 0, Den: 1},
	)
	partial.Tables[metadata.TagGPSInfo] = partialGPS
	partial.Values[metadata.TagDateTimeOriginal] = metadata.TextValue("yesterday at noon")

	provider := fakeProvider{
		tables: map[string]*metadata.MapTable{
			"a.jpg": geotaggedTable("2023:05:17 14:03:21"),
			"b.jpg": partial,
		},
	}

	records, sum, err := newTestScanner(provider).ScanFolder(dir)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "a.jpg", records[0].Filename)
	assert.Equal(t, 18, records[0].Zone)
	assert.Equal(t, "N", records[0].Hemisphere)

	assert.Equal(t, 3, sum.FilesFound)
	assert.Equal(t, 3, sum.Processed)
	assert.Equal(t, 0, sum.ReadErrors)
	assert.Equal(t, 1, sum.EmptyMetadata)
	assert.Equal(t, 1, sum.CoordsOK)
	assert.Equal(t, 1, sum.CoordsNOK)
	assert.Equal(t, 1, sum.DateOK)
	assert.Equal(t, 2, sum.DateNOK)
}

func TestScanFolderCounterPartition(t *testing.T) {
	dir := t.TempDir()
	touchFiles(t, dir, "a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg")

	provider := fakeProvider{
		tables: map[string]*metadata.MapTable{
			"a.jpg": geotaggedTable("2023:05:17 14:03:21"),
			"b.jpg": describedTable("2023:05:18 09:00:00", "dated, no GPS"),
			// c.jpg has no table at all: empty metadata
		},
		errs: map[string]error{
			"d.jpg": fmt.Errorf("%w: no access", metadata.ErrUnreadable),
			"e.jpg": fmt.Errorf("%w: not an image", metadata.ErrUnreadable),
		},
	}

	records, sum, err := newTestScanner(provider).ScanFolder(dir)
	require.NoError(t, err)

	assert.Equal(t, sum.FilesFound,
		sum.ReadErrors+sum.EmptyMetadata+sum.CoordsNOK+sum.CoordsOK)
	assert.Equal(t, sum.FilesFound, sum.DateOK+sum.DateNOK)
	assert.Equal(t, len(records), sum.CoordsOK)
	assert.Equal(t, 1, sum.EmptyMetadata)
	assert.Equal(t, 2, sum.ReadErrors)
}

func TestScanFolderExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	touchFiles(t, dir, "a.jpg", "b.JPEG", "c.tiff", "d.png", "notes.txt", "track.gpx")

	provider := fakeProvider{}
	_, sum, err := newTestScanner(provider).ScanFolder(dir)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.FilesFound)
}

func TestScanFolderMissingDirectory(t *testing.T) {
	_, _, err := New().ScanFolder(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestSortRecords(t *testing.T) {
	records := []PhotoRecord{
		{Filename: "z.jpg", Timestamp: ""},
		{Filename: "b.jpg", Timestamp: "2023:05:17 14:03:21"},
		{Filename: "a.jpg", Timestamp: ""},
		{Filename: "c.jpg", Timestamp: "2023:05:17 14:03:21"},
		{Filename: "d.jpg", Timestamp: "2021:01:01 00:00:00"},
	}

	SortRecords(records)

	var order []string
	for _, r := range records {
		order = append(order, r.Filename)
	}
	// Dated first in time order, names break ties, undated last.
	assert.Equal(t, []string{"d.jpg", "b.jpg", "c.jpg", "a.jpg", "z.jpg"}, order)
}

func TestTitlePrecedence(t *testing.T) {
	r := PhotoRecord{Filename: "a.jpg", CustomName: "Mirador", Description: "Vista general"}
	assert.Equal(t, "Mirador", r.Title())

	r.CustomName = "  "
	assert.Equal(t, "Vista general", r.Title())

	r.Description = "\n\n  segunda línea útil\nresto"
	assert.Equal(t, "segunda línea útil", r.Title())

	r.Description = ""
	assert.Equal(t, "a.jpg", r.Title())
}

func TestScanFolderProgressCallback(t *testing.T) {
	dir := t.TempDir()
	touchFiles(t, dir, "a.jpg", "b.jpg")

	var seen []string
	s := newTestScanner(fakeProvider{})
	s.OnFile = func(index, total int, name string) {
		assert.Equal(t, 2, total)
		seen = append(seen, name)
	}

	_, _, err := s.ScanFolder(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, seen)
}
