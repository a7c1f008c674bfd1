package report

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/R3natoky/photoutm/config"
	"github.com/R3natoky/photoutm/images"
	"github.com/R3natoky/photoutm/logger"
	"github.com/R3natoky/photoutm/scan"
)

// ExcelGenerator writes the editable workbook: one row per photo with an
// embedded thumbnail in column A. The sheet and column names are the
// contract the update command reads back, so they must not drift.
type ExcelGenerator struct{}

func (g *ExcelGenerator) Name() string { return "Excel" }

var excelHeader = []string{
	config.ColumnFileStem,
	config.ColumnCustomName,
	config.ColumnDescription,
	config.ColumnFilename,
	config.ColumnDate,
	config.ColumnEasting,
	config.ColumnNorthing,
	config.ColumnZone,
	config.ColumnHemisphere,
}

func (g *ExcelGenerator) Generate(records []scan.PhotoRecord, baseName string) ([]string, error) {
	var temps []string

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := config.ExcelSheetName
	idx, err := wb.NewSheet(sheet)
	if err != nil {
		return temps, fmt.Errorf("create sheet: %w", err)
	}
	wb.SetActiveSheet(idx)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return temps, fmt.Errorf("remove default sheet: %w", err)
	}

	// Header row; photos go in A, data starts at B.
	if err := wb.SetCellValue(sheet, "A1", "Foto"); err != nil {
		return temps, fmt.Errorf("write header: %w", err)
	}
	for i, title := range excelHeader {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return temps, fmt.Errorf("header cell name: %w", err)
		}
		if err := wb.SetCellValue(sheet, cell, title); err != nil {
			return temps, fmt.Errorf("write header: %w", err)
		}
	}

	photoColWidth := float64(config.ExcelTargetImageWidthPx) * config.ExcelColWidthFactor
	if err := wb.SetColWidth(sheet, "A", "A", photoColWidth); err != nil {
		return temps, fmt.Errorf("set column width: %w", err)
	}
	colWidths := map[string]float64{"B": 25, "C": 30, "D": 40, "E": 30}
	for col := 'B'; col <= 'J'; col++ {
		w, ok := colWidths[string(col)]
		if !ok {
			w = 15
		}
		if err := wb.SetColWidth(sheet, string(col), string(col), w); err != nil {
			return temps, fmt.Errorf("set column width: %w", err)
		}
	}

	for i, r := range records {
		row := i + 2

		values := []interface{}{
			r.FileStem,
			r.CustomName,
			r.Description,
			r.Filename,
			r.Timestamp,
			r.Easting,
			r.Northing,
			r.Zone,
			r.Hemisphere,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+2, row)
			if err != nil {
				return temps, fmt.Errorf("cell name: %w", err)
			}
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return temps, fmt.Errorf("write row %d: %w", row, err)
			}
		}

		if err := g.embedPhoto(wb, sheet, row, r, &temps); err != nil {
			logger.Warn("photo for %s skipped: %v", r.Filename, err)
			if err := wb.SetRowHeight(sheet, row, 15); err != nil {
				return temps, fmt.Errorf("set row height: %w", err)
			}
		}
	}

	outPath := baseName + "_con_fotos.xlsx"
	if err := wb.SaveAs(outPath); err != nil {
		return temps, fmt.Errorf("save workbook: %w", err)
	}

	abs, _ := filepath.Abs(outPath)
	logger.Info("Excel file written: %s", abs)

	return temps, nil
}

// embedPhoto renders an oversized thumbnail and scales it down into the
// cell, which keeps it sharp on high-DPI displays.
func (g *ExcelGenerator) embedPhoto(wb *excelize.File, sheet string, row int, r scan.PhotoRecord, temps *[]string) error {
	img, err := images.LoadOriented(r.Path, r.Orientation)
	if err != nil {
		return err
	}

	renderWidth := int(float64(config.ExcelTargetImageWidthPx) * config.ExcelImageScaleFactor)
	thumb := images.Thumbnail(img, renderWidth)

	tmp, err := images.SaveJPEGTemp(thumb, "excel", config.ExcelImageQuality)
	if err != nil {
		return err
	}
	*temps = append(*temps, tmp)

	bounds := thumb.Bounds()
	scale := float64(config.ExcelTargetImageWidthPx) / float64(bounds.Dx())

	height := float64(bounds.Dy()) * scale * config.ExcelRowHeightFactor
	if err := wb.SetRowHeight(sheet, row, height+5); err != nil {
		return err
	}

	anchor := fmt.Sprintf("A%d", row)
	return wb.AddPicture(sheet, anchor, tmp, &excelize.GraphicOptions{
		ScaleX:      scale,
		ScaleY:      scale,
		Positioning: "oneCell",
	})
}
