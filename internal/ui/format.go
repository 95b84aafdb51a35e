package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bamsammich/homeward/internal/stats"
)

// FormatRate renders a throughput in the same binary units as FormatBytes.
func FormatRate(bytesPerSec float64) string {
	if bytesPerSec < 1 {
		return "0 B/s"
	}
	return stats.FormatBytes(int64(bytesPerSec)) + "/s"
}

// FormatETA renders a remaining time, or "--" when unknown.
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	return clock(d)
}

// FormatDuration renders an elapsed time.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return clock(d)
}

func clock(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	h, m, s := total/3600, total/60%60, total%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatCount groups the digits of n in thousands: 14302 -> "14,302".
func FormatCount(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}
	for i := len(digits) - 3; i > 0; i -= 3 {
		digits = digits[:i] + "," + digits[i:]
	}
	return sign + digits
}

// ProgressBar draws pct (clamped to 0..1) as width cells of ▪ and □.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(min(max(pct, 0), 1) * float64(width))
	return strings.Repeat("▪", filled) + strings.Repeat("□", width-filled)
}

// FormatBytes is stats.FormatBytes.
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}

// TruncatePath shortens path to at most maxLen runes by replacing leading
// directories with an ellipsis. The file name is never cut.
func TruncatePath(path string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(path) <= maxLen {
		return path
	}
	const ellipsis = "…/"
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		short := ellipsis + strings.Join(parts[i:], "/")
		if utf8.RuneCountInString(short) <= maxLen {
			return short
		}
	}
	return parts[len(parts)-1]
}
