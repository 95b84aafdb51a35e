package filter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseSize reads a byte count such as "512", "64K", "1.5 GiB" or "50MB/s".
// Units are binary and case-insensitive; a trailing "/s" is accepted so rates
// read naturally on the command line.
func ParseSize(s string) (int64, error) {
	in := strings.TrimSpace(s)
	in = strings.TrimSuffix(strings.TrimSuffix(in, "/s"), "/S")
	if in == "" {
		return 0, fmt.Errorf("empty size %q", s)
	}

	split := strings.IndexFunc(in, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	num, unit := in, ""
	if split >= 0 {
		num, unit = in[:split], strings.TrimSpace(in[split:])
	}
	if num == "" {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	shift, err := unitShift(unit)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	mult := int64(1) << shift

	if n, err := strconv.ParseInt(num, 10, 64); err == nil {
		return n * mult, nil
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return int64(f * float64(mult)), nil
}

func unitShift(unit string) (uint, error) {
	u := strings.ToUpper(unit)
	u = strings.TrimSuffix(u, "IB")
	if len(u) > 1 {
		u = strings.TrimSuffix(u, "B")
	}
	switch u {
	case "", "B":
		return 0, nil
	case "K":
		return 10, nil
	case "M":
		return 20, nil
	case "G":
		return 30, nil
	case "T":
		return 40, nil
	}
	return 0, fmt.Errorf("unknown unit %q", unit)
}
