// Package units handles the mm / mil display unit used when reporting
// geometry to the user. All geometry is computed in mils.
package units

import (
	"fmt"
	"strings"
)

// MilPerMM is the number of mils in one millimeter.
const MilPerMM = 39.3701

// Unit is a display unit.
type Unit string

const (
	MM  Unit = "mm"
	Mil Unit = "mil"
)

// Parse returns the unit named by s (case-insensitive).
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm":
		return MM, nil
	case "mil", "mils":
		return Mil, nil
	default:
		return "", fmt.Errorf("unknown unit %q (want mm or mil)", s)
	}
}

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == MM {
		return Mil
	}
	return MM
}

func (u Unit) String() string {
	return string(u)
}

// ToMil converts a value expressed in u to mils.
func ToMil(value float64, u Unit) float64 {
	if u == MM {
		return value * MilPerMM
	}
	return value
}

// FromMil converts a value in mils to u.
func FromMil(mil float64, u Unit) float64 {
	if u == MM {
		return mil / MilPerMM
	}
	return mil
}

// MilToMM converts mils to millimeters.
func MilToMM(mil float64) float64 {
	return mil / MilPerMM
}

// Format renders a mil value in u with the unit suffix: three decimals for
// mm, one for mil.
func Format(mil float64, u Unit) string {
	if u == MM {
		return fmt.Sprintf("%.3fmm", FromMil(mil, u))
	}
	return fmt.Sprintf("%.1fmil", FromMil(mil, u))
}

// FormatPoint renders a coordinate pair in u with two decimals and no suffix.
func FormatPoint(x, y float64, u Unit) string {
	return fmt.Sprintf("%.2f,%.2f", FromMil(x, u), FromMil(y, u))
}
