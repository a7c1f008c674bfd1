package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3natoky/photoutm/metadata"
)

func gpsBlock(fields map[string]metadata.GPSValue) *metadata.GPSBlock {
	return &metadata.GPSBlock{Fields: fields}
}

func fullGPS() map[string]metadata.GPSValue {
	return map[string]metadata.GPSValue{
		"GPSLatitude":     {Kind: metadata.GPSTuple, Tuple: []float64{40, 42, 46.08}},
		"GPSLatitudeRef":  {Kind: metadata.GPSText, Text: "N"},
		"GPSLongitude":    {Kind: metadata.GPSTuple, Tuple: []float64{74, 0, 21.6}},
		"GPSLongitudeRef": {Kind: metadata.GPSText, Text: "W"},
	}
}

func TestResolve(t *testing.T) {
	meta := &metadata.Meta{GPS: gpsBlock(fullGPS())}

	coord := Resolve(meta)
	require.True(t, coord.IsSome())

	c := coord.Get()
	assert.InDelta(t, 40.7128, c.Lat, 1e-4)
	assert.InDelta(t, -74.0060, c.Lon, 1e-4)
}

func TestResolveIdempotent(t *testing.T) {
	meta := &metadata.Meta{GPS: gpsBlock(fullGPS())}

	first := Resolve(meta)
	second := Resolve(meta)

	require.True(t, first.IsSome())
	require.True(t, second.IsSome())
	assert.Equal(t, first.Get(), second.Get())
}

func TestResolveMissingPreconditions(t *testing.T) {
	drop := func(name string) map[string]metadata.GPSValue {
		fields := fullGPS()
		delete(fields, name)
		return fields
	}

	cases := []struct {
		name   string
		fields map[string]metadata.GPSValue
	}{
		{"no latitude", drop("GPSLatitude")},
		{"no longitude", drop("GPSLongitude")},
		{"no latitude ref", drop("GPSLatitudeRef")},
		{"no longitude ref", drop("GPSLongitudeRef")},
		{"empty ref", func() map[string]metadata.GPSValue {
			fields := fullGPS()
			fields["GPSLatitudeRef"] = metadata.GPSValue{Kind: metadata.GPSText, Text: ""}
			return fields
		}()},
		{"wrong arity", func() map[string]metadata.GPSValue {
			fields := fullGPS()
			fields["GPSLatitude"] = metadata.GPSValue{Kind: metadata.GPSTuple, Tuple: []float64{40, 42}}
			return fields
		}()},
		{"non-finite component", func() map[string]metadata.GPSValue {
			fields := fullGPS()
			fields["GPSLongitude"] = metadata.GPSValue{Kind: metadata.GPSTuple, Tuple: []float64{74, math.NaN(), 21.6}}
			return fields
		}()},
		{"unknown direction letter", func() map[string]metadata.GPSValue {
			fields := fullGPS()
			fields["GPSLatitudeRef"] = metadata.GPSValue{Kind: metadata.GPSText, Text: "Q"}
			return fields
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := &metadata.Meta{GPS: gpsBlock(tc.fields)}
			assert.True(t, Resolve(meta).IsNone())
		})
	}
}

func TestResolveNoGPSBlock(t *testing.T) {
	assert.True(t, Resolve(nil).IsNone())
	assert.True(t, Resolve(&metadata.Meta{}).IsNone())
}

func TestResolveOutOfRangeResult(t *testing.T) {
	fields := fullGPS()
	// 90 degrees plus 30 minutes lands past the +90 limit.
	fields["GPSLatitude"] = metadata.GPSValue{Kind: metadata.GPSTuple, Tuple: []float64{90, 30, 0}}

	meta := &metadata.Meta{GPS: gpsBlock(fields)}
	assert.True(t, Resolve(meta).IsNone())
}
