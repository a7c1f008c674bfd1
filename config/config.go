// Package config holds the viper keys and the fixed constants of the
// tool: tag identifiers, recognized file extensions, output sizing and
// the workbook layout shared by the Excel writer and the updater.
package config

import "github.com/spf13/viper"

var (
	KeyLogLevel     = "log.level"
	KeyOutputFormat = "output.format"
)

func LogLevel() string {
	if viper.IsSet(KeyLogLevel) {
		return viper.GetString(KeyLogLevel)
	}
	return "info"
}

// CustomNameTagID is the IFD0 "Artist" tag (decimal 315), repurposed by
// this tool to carry a user-facing display name. The XPTitle tag (40091)
// was tried first and did not survive round-trips through common
// editors, so Artist stays.
const CustomNameTagID = 315

// Timestamp layout required of DateTimeOriginal / DateTime values.
const TimestampLayout = "2006:01:02 15:04:05"

// ImageExtensions lists the recognized photo extensions, compared
// case-insensitively.
var ImageExtensions = []string{".jpg", ".jpeg", ".tif", ".tiff", ".png"}

// KMZ embedding.
const (
	KMZImageWidth   = 400
	KMZImageQuality = 85
)

// Excel embedding.
const (
	ExcelTargetImageWidthPx = 250
	ExcelImageScaleFactor   = 1.5
	ExcelImageQuality       = 90
	ExcelColWidthFactor     = 0.15
	ExcelRowHeightFactor    = 0.75
)

// Workbook layout. The sheet and column titles are kept byte-identical
// across releases so that previously edited workbooks keep working with
// `photoutm update`.
const (
	ExcelSheetName = "Coordenadas_UTM_Data"

	ColumnFileStem    = "Nome (Archivo)"
	ColumnCustomName  = "NomePersonalizado (Editable)"
	ColumnDescription = "Descripcion (EXIF)"
	ColumnFilename    = "filename"
	ColumnDate        = "photo_date"
	ColumnEasting     = "utm_easting"
	ColumnNorthing    = "utm_northing"
	ColumnZone        = "utm_zone"
	ColumnHemisphere  = "utm_hemisphere"
)
