package keyswitch

import (
	"fmt"
	"strconv"
	"strings"
)

type unit struct {
	suffix string
	mm     float64
}

// Checked in order; the first matching suffix wins.
var baseUnits = []unit{
	{"mm", 1},
	{"cm", 10},
	{"in", 25.4},
	{"mils", 0.0254},
}

// ParseWidthUnits parses a width such as "1.5u" into switch units.
func ParseWidthUnits(s string) (float64, error) {
	num, ok := strings.CutSuffix(s, "u")
	if !ok {
		return 0, fmt.Errorf("%w: keyswitch sizes must end with 'u', got %q", ErrUnsupportedUnit, s)
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid size %q", ErrUnsupportedUnit, s)
	}
	return f, nil
}

// ToMillimetres converts a measurement such as "19.05mm" or "0.75in" to
// millimetres. extra adds units after the built-in ones, e.g. "u".
func ToMillimetres(s string, extra ...unit) (float64, error) {
	units := baseUnits
	if len(extra) > 0 {
		units = append(append([]unit{}, baseUnits...), extra...)
	}
	for _, u := range units {
		num, ok := strings.CutSuffix(s, u.suffix)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid measurement %q", ErrUnsupportedUnit, s)
		}
		return f * u.mm, nil
	}
	return 0, fmt.Errorf("%w: measurement unit not supported: %q", ErrUnsupportedUnit, s)
}

// switchUnit makes "u" mean one switch spacing.
func switchUnit(spacingMM float64) unit {
	return unit{suffix: "u", mm: spacingMM}
}
