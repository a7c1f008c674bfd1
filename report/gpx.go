package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/R3natoky/photoutm/logger"
	"github.com/R3natoky/photoutm/scan"
)

// GPXGenerator writes one waypoint per photo, for GPS devices and track
// editors that do not read KML.
type GPXGenerator struct{}

func (g *GPXGenerator) Name() string { return "GPX" }

func (g *GPXGenerator) Generate(records []scan.PhotoRecord, baseName string) ([]string, error) {
	doc := &gpx.GPX{
		Creator: "photoutm",
		Name:    docName(baseName),
	}

	for _, r := range records {
		wpt := gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  r.Latitude,
				Longitude: r.Longitude,
			},
			Name:        r.Title(),
			Description: r.Description,
		}
		if t, ok := captureTime(r); ok {
			wpt.Timestamp = t.UTC()
		}
		doc.Waypoints = append(doc.Waypoints, wpt)
	}

	data, err := doc.ToXml(gpx.ToXmlParams{Indent: true})
	if err != nil {
		return nil, fmt.Errorf("serialize GPX: %w", err)
	}

	outPath := baseName + ".gpx"
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write GPX file: %w", err)
	}

	abs, _ := filepath.Abs(outPath)
	logger.Info("GPX file written: %s", abs)

	return nil, nil
}
