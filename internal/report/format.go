package report

import (
	"fmt"
	"math"
)

// FormatBytes renders a byte count with binary (1024-based) units at two
// decimal places, picking the largest unit with a scaled value below 1024.
func FormatBytes(n float64) string {
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if math.Abs(n) < 1024.0 {
			return fmt.Sprintf("%.2f %s", n, unit)
		}
		n /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", n)
}

// FormatUptime decomposes a duration in seconds into days, hours,
// minutes, and seconds. All four components are always present:
// FormatUptime(0) is "0d 0h 0m 0s".
func FormatUptime(seconds int64) string {
	days := seconds / 86400
	rem := seconds % 86400
	hours := rem / 3600
	rem %= 3600
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, rem/60, rem%60)
}

// FormatRate renders an average throughput over the elapsed interval. A
// zero or negative interval yields a zero rate instead of a division
// fault.
func FormatRate(byteCount int64, elapsedSeconds float64) string {
	if elapsedSeconds <= 0 {
		return FormatBytes(0) + "/s"
	}
	return FormatBytes(float64(byteCount)/elapsedSeconds) + "/s"
}
