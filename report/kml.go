package report

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goodsign/monday"
	colorful "github.com/lucasb-eyer/go-colorful"
	kml "github.com/twpayne/go-kml/v2"

	"github.com/R3natoky/photoutm/config"
	"github.com/R3natoky/photoutm/images"
	"github.com/R3natoky/photoutm/logger"
	"github.com/R3natoky/photoutm/scan"
)

// dayColors assigns one stable color per capture day so that photos of
// the same outing share a placemark color.
type dayColors struct {
	colors map[string]colorful.Color
}

func newDayColors() *dayColors {
	return &dayColors{colors: make(map[string]colorful.Color)}
}

func (dc *dayColors) color(r scan.PhotoRecord) colorful.Color {
	day := "undated"
	if len(r.Timestamp) >= 10 {
		day = r.Timestamp[:10]
	}

	c, ok := dc.colors[day]
	if !ok {
		c = colorful.HappyColor()
		dc.colors[day] = c
	}
	return c
}

// balloonHTML builds the description shown in the placemark balloon.
// The labels are kept stable across releases.
func balloonHTML(r scan.PhotoRecord, imgHref string) string {
	var parts []string

	if r.CustomName != "" {
		parts = append(parts, "<b>Nome Personalizado (Artist):</b> "+r.CustomName)
	}
	if r.FileStem != "" {
		parts = append(parts, "<b>Nome (Archivo):</b> "+r.FileStem)
	}
	if r.Description != "" {
		parts = append(parts, "<b>Descripción (EXIF):</b> "+r.Description)
	}
	parts = append(parts, "<b>Archivo:</b> "+r.Filename)

	if t, ok := captureTime(r); ok {
		parts = append(parts, "<b>Data:</b> "+monday.Format(t, "Monday 2 January 2006 15:04", monday.LocaleEsES))
	} else {
		parts = append(parts, "<b>Data:</b> N/A")
	}

	parts = append(parts, fmt.Sprintf("<b>UTM:</b> Zona %d%s, E: %.2f, N: %.2f",
		r.Zone, r.Hemisphere, r.Easting, r.Northing))

	html := strings.Join(parts, "<br/>")
	if imgHref != "" {
		html += fmt.Sprintf(`<hr/><img src="%s" alt="Foto" width="%d" />`, imgHref, config.KMZImageWidth)
	}
	return html
}

func placemark(r scan.PhotoRecord, dc *dayColors, imgHref string) kml.Element {
	children := []kml.Element{
		kml.Name(r.Title()),
		kml.Description(balloonHTML(r, imgHref)),
		kml.Style(
			kml.IconStyle(
				kml.Color(dc.color(r)),
			),
		),
	}

	if t, ok := captureTime(r); ok {
		children = append(children, kml.TimeStamp(kml.When(t.UTC())))
	}

	children = append(children, kml.Point(
		kml.Coordinates(kml.Coordinate{Lon: r.Longitude, Lat: r.Latitude}),
	))

	return kml.Placemark(children...)
}

func kmlDocument(docName string, records []scan.PhotoRecord, hrefs map[string]string) *kml.CompoundElement {
	dc := newDayColors()

	children := []kml.Element{kml.Name(docName)}
	for _, r := range records {
		children = append(children, placemark(r, dc, hrefs[r.Filename]))
	}

	return kml.KML(kml.Document(children...))
}

// KMLGenerator writes the simple KML variant: placemarks and data, no
// embedded photos.
type KMLGenerator struct{}

func (g *KMLGenerator) Name() string { return "KML" }

func (g *KMLGenerator) Generate(records []scan.PhotoRecord, baseName string) ([]string, error) {
	outPath := baseName + "_simple.kml"

	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create KML file: %w", err)
	}
	defer f.Close()

	doc := kmlDocument(docName(baseName), records, nil)
	if err := doc.WriteIndent(f, "", "  "); err != nil {
		return nil, fmt.Errorf("write KML: %w", err)
	}

	abs, _ := filepath.Abs(outPath)
	logger.Info("KML file written: %s", abs)

	return nil, nil
}

// KMZGenerator writes the Google Earth package with oriented thumbnails
// embedded next to the document.
type KMZGenerator struct{}

func (g *KMZGenerator) Name() string { return "KMZ" }

func (g *KMZGenerator) Generate(records []scan.PhotoRecord, baseName string) ([]string, error) {
	var temps []string

	// Render every thumbnail first; failures only cost the photo its
	// embedded image, never the whole package.
	hrefs := make(map[string]string)
	for _, r := range records {
		img, err := images.LoadOriented(r.Path, r.Orientation)
		if err != nil {
			logger.Warn("thumbnail for %s skipped: %v", r.Filename, err)
			continue
		}
		thumb := images.Thumbnail(img, config.KMZImageWidth)
		tmp, err := images.SaveJPEGTemp(thumb, "kmz", config.KMZImageQuality)
		if err != nil {
			logger.Warn("thumbnail for %s skipped: %v", r.Filename, err)
			continue
		}
		temps = append(temps, tmp)
		hrefs[r.Filename] = "files/" + filepath.Base(tmp)
	}

	outPath := baseName + ".kmz"
	f, err := os.Create(outPath)
	if err != nil {
		return temps, fmt.Errorf("create KMZ file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	docWriter, err := zw.Create("doc.kml")
	if err != nil {
		return temps, fmt.Errorf("create KMZ document entry: %w", err)
	}
	doc := kmlDocument(docName(baseName), records, hrefs)
	if err := doc.WriteIndent(docWriter, "", "  "); err != nil {
		return temps, fmt.Errorf("write KMZ document: %w", err)
	}

	for _, tmp := range temps {
		entry, err := zw.Create("files/" + filepath.Base(tmp))
		if err != nil {
			return temps, fmt.Errorf("create KMZ image entry: %w", err)
		}
		src, err := os.Open(tmp)
		if err != nil {
			return temps, fmt.Errorf("reopen thumbnail: %w", err)
		}
		_, err = io.Copy(entry, src)
		src.Close()
		if err != nil {
			return temps, fmt.Errorf("embed thumbnail: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return temps, fmt.Errorf("finish KMZ archive: %w", err)
	}

	abs, _ := filepath.Abs(outPath)
	logger.Info("KMZ file written: %s", abs)

	return temps, nil
}

func docName(baseName string) string {
	return "Coords " + filepath.Base(baseName)
}
