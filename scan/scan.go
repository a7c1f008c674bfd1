// Package scan walks a folder of photographs and assembles the per-file
// records consumed by the report generators.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/R3natoky/photoutm/config"
	"github.com/R3natoky/photoutm/geo"
	"github.com/R3natoky/photoutm/logger"
	"github.com/R3natoky/photoutm/metadata"
	"github.com/R3natoky/photoutm/option"
)

// PhotoRecord is the per-file aggregate handed to report generators.
// Only files with decodable metadata and a successful UTM projection
// produce one.
type PhotoRecord struct {
	Filename    string
	FileStem    string
	CustomName  string
	Description string
	Timestamp   string // "" when absent
	Latitude    float64
	Longitude   float64
	Easting     float64
	Northing    float64
	Zone        int
	Hemisphere  string
	Path        string
	Orientation option.Option[int]
}

// Summary aggregates the per-file outcomes of one folder scan. Every
// file lands in exactly one of ReadErrors, EmptyMetadata, CoordsNOK or
// CoordsOK.
type Summary struct {
	FilesFound    int
	Processed     int
	ReadErrors    int
	EmptyMetadata int
	CoordsOK      int
	CoordsNOK     int
	UTMErrors     int
	DateOK        int
	DateNOK       int
	Descriptions  int
	CustomNames   int
}

// Scanner drives the per-file pipeline. Files are processed one at a
// time; a failure is terminal for its file only.
type Scanner struct {
	Provider  metadata.Provider
	Projector *geo.Projector

	// OnFile, when set, is called before each file is processed.
	OnFile func(index, total int, name string)
}

func New() *Scanner {
	return &Scanner{
		Provider:  metadata.GoexifProvider{},
		Projector: geo.DefaultProjector(),
	}
}

// sortSentinel sorts records without a timestamp after all dated ones.
const sortSentinel = "9999"

func hasImageExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range config.ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ScanFolder processes every recognized image in dir, in name order.
// Per-file failures are counted and skipped; only a failure to list the
// directory itself is returned as an error.
func (s *Scanner) ScanFolder(dir string) ([]PhotoRecord, Summary, error) {
	var sum Summary

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, sum, fmt.Errorf("listing folder %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && hasImageExtension(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	sum.FilesFound = len(names)

	var records []PhotoRecord

	for i, name := range names {
		if s.OnFile != nil {
			s.OnFile(i, len(names), name)
		}

		path := filepath.Join(dir, name)
		tbl, err := s.Provider.Open(path)
		sum.Processed++
		if err != nil {
			logger.Error("reading %s: %v", name, err)
			sum.ReadErrors++
			sum.DateNOK++
			continue
		}

		meta, orientation := metadata.Extract(tbl)
		if meta.IsEmpty() {
			sum.EmptyMetadata++
			sum.DateNOK++
			continue
		}

		if meta.Timestamp.IsSome() {
			sum.DateOK++
		} else {
			sum.DateNOK++
		}
		if meta.Description.IsSome() {
			sum.Descriptions++
		}
		if meta.CustomName.IsSome() {
			sum.CustomNames++
		}

		coord := geo.Resolve(meta)
		if coord.IsNone() {
			sum.CoordsNOK++
			continue
		}

		c := coord.Get()
		utm, err := s.Projector.ToUTM(c.Lat, c.Lon)
		if err != nil {
			logger.Warn("UTM conversion failed for %s (lat/lon: %.5f, %.5f): %v", name, c.Lat, c.Lon, err)
			sum.UTMErrors++
			sum.CoordsNOK++
			continue
		}

		records = append(records, PhotoRecord{
			Filename:    name,
			FileStem:    strings.TrimSuffix(name, filepath.Ext(name)),
			CustomName:  meta.CustomName.GetOr(""),
			Description: meta.Description.GetOr(""),
			Timestamp:   meta.Timestamp.GetOr(""),
			Latitude:    c.Lat,
			Longitude:   c.Lon,
			Easting:     utm.Easting,
			Northing:    utm.Northing,
			Zone:        utm.Zone,
			Hemisphere:  utm.Hemisphere,
			Path:        path,
			Orientation: orientation,
		})
		sum.CoordsOK++
	}

	SortRecords(records)

	return records, sum, nil
}

// SortRecords orders records by (timestamp, filename) ascending, with
// undated files last.
func SortRecords(records []PhotoRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := records[i].Timestamp, records[j].Timestamp
		if ti == "" {
			ti = sortSentinel
		}
		if tj == "" {
			tj = sortSentinel
		}
		if ti != tj {
			return ti < tj
		}
		return records[i].Filename < records[j].Filename
	})
}

// Title is the placemark/display title: custom name first, then the
// first non-empty description line, then the filename.
func (r PhotoRecord) Title() string {
	if name := strings.TrimSpace(r.CustomName); name != "" {
		return name
	}
	for _, line := range strings.Split(r.Description, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return r.Filename
}
