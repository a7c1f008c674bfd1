package geo

import (
	"fmt"
	"math"

	"github.com/wroge/wgs84"
)

// UTM is a projected coordinate: easting/northing in meters, zone in
// [1,60] and hemisphere "N" or "S". All fields are set on success; a
// failed projection returns the zero value plus an error.
type UTM struct {
	Easting    float64
	Northing   float64
	Zone       int
	Hemisphere string
}

// ProjectionError reports a failed geographic→UTM transformation.
type ProjectionError struct {
	Lat, Lon float64
	Reason   string
	cause    error
}

func (e *ProjectionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("UTM projection of (%v, %v): %s: %v", e.Lat, e.Lon, e.Reason, e.cause)
	}
	return fmt.Sprintf("UTM projection of (%v, %v): %s", e.Lat, e.Lon, e.Reason)
}

func (e *ProjectionError) Unwrap() error {
	return e.cause
}

// CRSError reports an EPSG identifier the transformer cannot serve.
type CRSError struct {
	Code int
}

func (e *CRSError) Error() string {
	return fmt.Sprintf("unsupported coordinate reference system EPSG:%d", e.Code)
}

// Transformer converts an (x, y) pair between two EPSG-identified
// reference systems. x is longitude and y latitude for geographic CRS.
type Transformer interface {
	Transform(fromEPSG, toEPSG int, x, y float64) (float64, float64, error)
}

// WGS84Transformer backs Transformer with the pure-Go wgs84 package.
// It serves EPSG:4326 and the WGS84 UTM bands 32601-32660 / 32701-32760.
type WGS84Transformer struct{}

func wgs84CRS(code int) (wgs84.CoordinateReferenceSystem, error) {
	switch {
	case code == 4326:
		return wgs84.LonLat(), nil
	case code >= 32601 && code <= 32660:
		return wgs84.UTM(float64(code-32600), true), nil
	case code >= 32701 && code <= 32760:
		return wgs84.UTM(float64(code-32700), false), nil
	default:
		return nil, &CRSError{Code: code}
	}
}

func (WGS84Transformer) Transform(fromEPSG, toEPSG int, x, y float64) (float64, float64, error) {
	from, err := wgs84CRS(fromEPSG)
	if err != nil {
		return 0, 0, err
	}
	to, err := wgs84CRS(toEPSG)
	if err != nil {
		return 0, 0, err
	}

	xx, yy, _ := wgs84.Transform(from, to)(x, y, 0)
	return xx, yy, nil
}

const (
	epsgWGS84    = 4326
	epsgUTMNorth = 32600
	epsgUTMSouth = 32700
)

// ZoneNumber computes the standard 6°-wide UTM zone for a longitude.
func ZoneNumber(lon float64) int {
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone > 60 {
		zone = 60 // longitude 180 belongs to the last zone
	}
	return zone
}

// HemisphereOf returns "N" for latitudes >= 0, else "S".
func HemisphereOf(lat float64) string {
	if lat >= 0 {
		return "N"
	}
	return "S"
}

// EPSGFor selects the WGS84/UTM code for a zone and hemisphere letter.
func EPSGFor(zone int, hemisphere string) int {
	if hemisphere == "S" {
		return epsgUTMSouth + zone
	}
	return epsgUTMNorth + zone
}

// Projector turns validated geographic coordinates into UTM.
type Projector struct {
	tr Transformer
}

func NewProjector(tr Transformer) *Projector {
	return &Projector{tr: tr}
}

func DefaultProjector() *Projector {
	return NewProjector(WGS84Transformer{})
}

// ToUTM projects a decimal-degree pair into its UTM zone. It validates
// inputs and outputs and returns a typed error instead of panicking on
// any failure.
func (p *Projector) ToUTM(lat, lon float64) (UTM, error) {
	fail := func(reason string, cause error) (UTM, error) {
		return UTM{}, &ProjectionError{Lat: lat, Lon: lon, Reason: reason, cause: cause}
	}

	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return fail("non-finite input", nil)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fail("latitude/longitude out of range", nil)
	}

	zone := ZoneNumber(lon)
	hemisphere := HemisphereOf(lat)

	easting, northing, err := p.tr.Transform(epsgWGS84, EPSGFor(zone, hemisphere), lon, lat)
	if err != nil {
		return fail("coordinate system failure", err)
	}
	if math.IsNaN(easting) || math.IsInf(easting, 0) || math.IsNaN(northing) || math.IsInf(northing, 0) {
		return fail(fmt.Sprintf("non-finite projection output (E=%v, N=%v)", easting, northing), nil)
	}

	return UTM{
		Easting:    easting,
		Northing:   northing,
		Zone:       zone,
		Hemisphere: hemisphere,
	}, nil
}
