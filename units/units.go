// Package units converts between the length units used by Office Open XML
// and the units used in rendered output.
//
// WordprocessingML stores lengths in several integer units:
//
//   - twips (1/20 point, 1/1440 inch) for indents, spacing and widths
//   - half-points for font sizes
//   - eighths of a point for border widths
//   - English Metric Units (914400 per inch) for drawing extents
//
// HTML output uses points and CSS pixels (96 per inch).
package units

import (
	"strconv"
	"strings"
)

// Conversion constants.
const (
	TwipsPerPoint  = 20
	TwipsPerInch   = 1440
	EMUPerInch     = 914400
	EMUPerPoint    = 12700
	EMUPerPixel    = 9525 // at 96 DPI
	PixelsPerInch  = 96
	PointsPerInch  = 72
	EighthsPerPt   = 8
	HalfPointsInPt = 2
)

// TwipsToPoints converts twips to points.
func TwipsToPoints(twips int) float64 {
	return float64(twips) / TwipsPerPoint
}

// PointsToTwips converts points to twips, rounding to the nearest twip.
func PointsToTwips(pt float64) int {
	return round(pt * TwipsPerPoint)
}

// HalfPointsToPoints converts a font size in half-points to points.
func HalfPointsToPoints(hp int) float64 {
	return float64(hp) / HalfPointsInPt
}

// PointsToHalfPoints converts points to half-points.
func PointsToHalfPoints(pt float64) int {
	return round(pt * HalfPointsInPt)
}

// EighthsToPoints converts a border width in eighths of a point to points.
func EighthsToPoints(eighths int) float64 {
	return float64(eighths) / EighthsPerPt
}

// EMUToPixels converts English Metric Units to CSS pixels at 96 DPI,
// rounding to the nearest pixel.
func EMUToPixels(emu int64) int {
	return int((emu + EMUPerPixel/2) / EMUPerPixel)
}

// PixelsToEMU converts CSS pixels to English Metric Units.
func PixelsToEMU(px int) int64 {
	return int64(px) * EMUPerPixel
}

// EMUToPoints converts English Metric Units to points.
func EMUToPoints(emu int64) float64 {
	return float64(emu) / EMUPerPoint
}

// TwipsToPixels converts twips to CSS pixels.
func TwipsToPixels(twips int) float64 {
	return float64(twips) * PixelsPerInch / TwipsPerInch
}

// Pt formats a point value for CSS, e.g. 12 -> "12pt", 1.5 -> "1.5pt".
func Pt(v float64) string {
	return FormatNumber(v) + "pt"
}

// Px formats a pixel value for CSS.
func Px(v int) string {
	return strconv.Itoa(v) + "px"
}

// FormatNumber formats v with at most two decimals and no trailing zeros.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
