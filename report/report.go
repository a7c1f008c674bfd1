// Package report renders a scanned photo sequence into the supported
// output formats.
package report

import (
	"fmt"
	"time"

	"github.com/R3natoky/photoutm/config"
	"github.com/R3natoky/photoutm/scan"
)

// Generator writes one output format. Generate returns the temporary
// artifact paths it produced (embedded thumbnails); the caller deletes
// them once the output file is closed.
type Generator interface {
	Name() string
	Generate(records []scan.PhotoRecord, baseName string) (tempFiles []string, err error)
}

// Formats lists the selectable output formats in menu order.
var Formats = []string{"kmz", "csv", "excel", "kml", "gpx"}

// ForFormat returns the generator for a format name.
func ForFormat(format string) (Generator, error) {
	switch format {
	case "kmz":
		return &KMZGenerator{}, nil
	case "kml":
		return &KMLGenerator{}, nil
	case "csv":
		return &CSVGenerator{}, nil
	case "excel":
		return &ExcelGenerator{}, nil
	case "gpx":
		return &GPXGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// captureTime parses a record's timestamp, when present and valid.
func captureTime(r scan.PhotoRecord) (time.Time, bool) {
	if r.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(config.TimestampLayout, r.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
