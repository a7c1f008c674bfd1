package update

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/R3natoky/photoutm/logger"
)

// Summary counts what happened during a write-back run.
type Summary struct {
	Rows          int
	Updated       int
	SkippedNoData int
	SkippedNoFile int
	Errors        int
}

// Run applies the workbook rows to the photos in folder. Rows whose
// editable cells are both empty are skipped, as are rows whose photo is
// no longer in the folder.
func Run(workbookPath, folder string, w Writer) (*Summary, error) {
	rows, err := ReadWorkbook(workbookPath)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Rows: len(rows)}
	for i, r := range rows {
		if r.CustomName == "" && r.Description == "" {
			summary.SkippedNoData++
			continue
		}

		path := filepath.Join(folder, r.Filename)
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			logger.Warn("row %d: %s not found in %s, skipping", i+2, r.Filename, folder)
			summary.SkippedNoFile++
			continue
		}

		logger.Info("updating %s (%d/%d)", r.Filename, i+1, len(rows))
		if err := w.Write(path, r.CustomName, r.Description); err != nil {
			logger.Error("update of %s failed: %v", r.Filename, err)
			summary.Errors++
			continue
		}
		summary.Updated++
	}

	if summary.Errors > 0 {
		return summary, fmt.Errorf("%d of %d updates failed", summary.Errors, summary.Rows)
	}
	return summary, nil
}
