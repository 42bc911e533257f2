package textutil

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count in binary units with at most two
// decimals and no trailing zeros, e.g. "1.5 KB". Sizes past the last unit stay
// in GB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[unit]
}

// FormatKilobytes renders a byte count as kilobytes with exactly two decimals.
func FormatKilobytes(bytes int64) string {
	return strconv.FormatFloat(float64(bytes)/1024, 'f', 2, 64) + " KB"
}
