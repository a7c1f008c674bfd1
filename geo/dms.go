// Package geo converts the sexagesimal angles found in photo metadata
// into decimal degrees and projects them into the matching UTM zone.
package geo

import (
	"fmt"
	"math"
	"strings"

	"github.com/R3natoky/photoutm/logger"
)

// AngleError reports a DMS triple or hemisphere letter that cannot be
// converted. The offending inputs are embedded in the message.
type AngleError struct {
	msg   string
	cause error
}

func (e *AngleError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *AngleError) Unwrap() error {
	return e.cause
}

func angleErrorf(cause error, format string, args ...interface{}) *AngleError {
	return &AngleError{msg: fmt.Sprintf(format, args...), cause: cause}
}

// DMSToDecimal converts a degrees/minutes/seconds triple plus a
// hemisphere letter into signed decimal degrees. S and W negate the
// result. Minutes or seconds outside [0,60) warn and continue.
func DMSToDecimal(degrees, minutes, seconds float64, direction string) (float64, error) {
	for _, v := range []float64{degrees, minutes, seconds} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, angleErrorf(nil,
				"non-finite DMS component (D=%v, M=%v, S=%v, dir=%q)",
				degrees, minutes, seconds, direction)
		}
	}

	if minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
		logger.Warn("DMS minutes/seconds out of range (M=%v, S=%v), continuing", minutes, seconds)
	}

	dd := degrees + minutes/60.0 + seconds/3600.0

	switch strings.ToUpper(direction) {
	case "S", "W":
		return -dd, nil
	case "N", "E":
		return dd, nil
	default:
		return 0, angleErrorf(nil,
			"unknown GPS direction %q (D=%v, M=%v, S=%v)",
			direction, degrees, minutes, seconds)
	}
}
