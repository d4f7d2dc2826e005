package controller

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-weatherform/pkg/prediction"
)

// FormatNumber renders v in its shortest form, the way the page displays
// numbers: 21.5, 15, 0. Magnitudes from 1e21 up and below 1e-6 switch to
// exponent notation ("1e+21", "1.5e-7"), non-finite values read "NaN",
// "Infinity" and "-Infinity".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0" // covers negative zero
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatTemperature renders a temperature in degrees Celsius.
func FormatTemperature(v float64) string {
	return FormatNumber(v) + "°C"
}

// FormatPrecipitation renders precipitation in millimetres.
func FormatPrecipitation(v float64) string {
	return FormatNumber(v) + " mm"
}

// FormatVisibility renders visibility in kilometres.
func FormatVisibility(v float64) string {
	return FormatNumber(v) + " km"
}

// FormatCloudCover renders cloud cover as a percentage.
func FormatCloudCover(v float64) string {
	return FormatNumber(v) + "%"
}

// FormatWind renders wind speed rounded to one decimal, followed by the
// direction in degrees when known.
func FormatWind(speed float64, direction *float64) string {
	out := fmt.Sprintf("%.1f km/h", speed)
	if direction != nil {
		out += " (" + FormatNumber(*direction) + "°)"
	}
	return out
}

// Tomorrow returns the calendar date after now in loc, ISO formatted.
func Tomorrow(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return next.Format(prediction.DateLayout)
}

// Midnight returns the start of now's calendar day in loc.
func Midnight(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
