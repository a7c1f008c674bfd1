package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/R3natoky/photoutm/logger"
	"github.com/R3natoky/photoutm/scan"
)

// CSVGenerator writes the tabular report. The file starts with a UTF-8
// byte-order mark so that spreadsheet tools pick the right encoding.
type CSVGenerator struct{}

func (g *CSVGenerator) Name() string { return "CSV" }

var csvHeader = []string{
	"Nome (Archivo)",
	"Nome Personalizado (Artist)",
	"Descripcion (EXIF)",
	"filename",
	"photo_date",
	"latitude",
	"longitude",
	"utm_easting",
	"utm_northing",
	"utm_zone",
	"utm_hemisphere",
}

func (g *CSVGenerator) Generate(records []scan.PhotoRecord, baseName string) ([]string, error) {
	outPath := baseName + ".csv"

	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create CSV file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return nil, fmt.Errorf("write CSV BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.FileStem,
			r.CustomName,
			r.Description,
			r.Filename,
			r.Timestamp,
			fmt.Sprintf("%.7f", r.Latitude),
			fmt.Sprintf("%.7f", r.Longitude),
			fmt.Sprintf("%.2f", r.Easting),
			fmt.Sprintf("%.2f", r.Northing),
			fmt.Sprintf("%d", r.Zone),
			r.Hemisphere,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write CSV row for %s: %w", r.Filename, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush CSV: %w", err)
	}

	abs, _ := filepath.Abs(outPath)
	logger.Info("CSV file written: %s", abs)

	return nil, nil
}
