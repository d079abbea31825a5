package utils

import (
	"fmt"
)

var fileSizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatFileSize converts a byte length into the largest unit whose scaled value
// stays below 1024, rendered with exactly one decimal digit. Values past the last
// unit remain expressed in petabytes.
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(fileSizeUnits)-1 {
		value /= 1024
		unitIndex++
	}
	return fmt.Sprintf("%.1f%s", value, fileSizeUnits[unitIndex])
}
