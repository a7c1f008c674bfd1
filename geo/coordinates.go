package geo

import (
	"math"

	"github.com/R3natoky/photoutm/logger"
	"github.com/R3natoky/photoutm/metadata"
	"github.com/R3natoky/photoutm/option"
)

// Coordinate is a validated WGS84 position in decimal degrees.
type Coordinate struct {
	Lat, Lon float64
}

// Resolve combines the latitude/longitude DMS triples and reference
// letters of a GPS block into a validated coordinate. Every unmet
// precondition yields none; conversion failures are logged, never
// propagated.
func Resolve(meta *metadata.Meta) option.Option[Coordinate] {
	none := option.None[Coordinate]()

	if meta == nil || meta.GPS == nil {
		return none
	}

	latDMS, latOK := meta.GPS.Tuple("GPSLatitude")
	lonDMS, lonOK := meta.GPS.Tuple("GPSLongitude")
	latRef, latRefOK := meta.GPS.Text("GPSLatitudeRef")
	lonRef, lonRefOK := meta.GPS.Text("GPSLongitudeRef")

	if !latOK || !lonOK || !latRefOK || !lonRefOK || latRef == "" || lonRef == "" {
		logger.Debug("essential GPS tags missing")
		return none
	}

	if len(latDMS) != 3 || len(lonDMS) != 3 {
		logger.Debug("DMS tuple with wrong arity: lat=%v lon=%v", latDMS, lonDMS)
		return none
	}

	for _, v := range append(append([]float64{}, latDMS...), lonDMS...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			logger.Debug("non-finite DMS content: lat=%v lon=%v", latDMS, lonDMS)
			return none
		}
	}

	lat, err := DMSToDecimal(latDMS[0], latDMS[1], latDMS[2], latRef)
	if err != nil {
		logger.Error("converting latitude DMS: %v", err)
		return none
	}
	lon, err := DMSToDecimal(lonDMS[0], lonDMS[1], lonDMS[2], lonRef)
	if err != nil {
		logger.Error("converting longitude DMS: %v", err)
		return none
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		logger.Warn("computed coordinates out of range: lat=%.7f lon=%.7f", lat, lon)
		return none
	}

	return option.Some(Coordinate{Lat: lat, Lon: lon})
}
