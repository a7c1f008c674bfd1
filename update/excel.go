// Package update reads an edited workbook back and writes the edited
// fields into the photos' metadata.
package update

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/R3natoky/photoutm/config"
)

// Row is one edited workbook entry: the photo it refers to and the
// values to write back.
type Row struct {
	Filename    string
	CustomName  string
	Description string
}

// ReadWorkbook loads the editable columns from the workbook. It reads
// the sheet the generator writes, falling back to the first sheet for
// workbooks that were re-saved under a different name.
func ReadWorkbook(path string) ([]Row, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheet := config.ExcelSheetName
	if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	cols := headerColumns(rows[0])
	fileCol, ok := cols[config.ColumnFilename]
	if !ok {
		return nil, fmt.Errorf("sheet %s has no %q column", sheet, config.ColumnFilename)
	}
	nameCol, hasName := cols[config.ColumnCustomName]
	descCol, hasDesc := cols[config.ColumnDescription]

	var out []Row
	for _, cells := range rows[1:] {
		r := Row{Filename: cellAt(cells, fileCol)}
		if r.Filename == "" {
			continue
		}
		if hasName {
			r.CustomName = cellAt(cells, nameCol)
		}
		if hasDesc {
			r.Description = cellAt(cells, descCol)
		}
		out = append(out, r)
	}
	return out, nil
}

func headerColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, title := range header {
		cols[strings.TrimSpace(title)] = i
	}
	return cols
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}
