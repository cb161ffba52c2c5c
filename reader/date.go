package reader

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses a PDF date string of the form D:YYYYMMDDHHmmSSOHH'mm'.
// Everything after the year is optional; missing fields default to the
// start of the period and a missing offset means UTC.
func ParseDate(s string) (time.Time, error) {
	raw := s
	s = strings.TrimPrefix(strings.TrimSpace(s), "D:")

	n := 0
	for n < len(s) && n < 14 && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n < 4 || n%2 != 0 {
		return time.Time{}, fmt.Errorf("invalid PDF date %q", raw)
	}
	digits, rest := s[:n], s[n:]

	// year, month, day, hour, minute, second
	fields := [6]int{0, 1, 1, 0, 0, 0}
	fields[0], _ = strconv.Atoi(digits[:4])
	for i, pos := 1, 4; pos+2 <= len(digits); i, pos = i+1, pos+2 {
		fields[i], _ = strconv.Atoi(digits[pos : pos+2])
	}

	if fields[1] < 1 || fields[1] > 12 || fields[2] < 1 || fields[2] > 31 ||
		fields[3] > 23 || fields[4] > 59 || fields[5] > 59 {
		return time.Time{}, fmt.Errorf("invalid PDF date %q", raw)
	}

	loc, err := parseOffset(rest)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid PDF date %q: %w", raw, err)
	}

	return time.Date(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], 0, loc), nil
}

// parseOffset reads the O HH'mm' suffix of a PDF date.
func parseOffset(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "Z" || strings.HasPrefix(s, "Z") {
		return time.UTC, nil
	}

	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("unexpected offset %q", s)
	}

	parts := strings.FieldsFunc(s[1:], func(r rune) bool { return r == '\'' })
	if len(parts) == 1 && len(parts[0]) == 4 {
		parts = []string{parts[0][:2], parts[0][2:]}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("unexpected offset %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours > 23 {
		return nil, fmt.Errorf("unexpected offset %q", s)
	}
	minutes := 0
	if len(parts) > 1 {
		if minutes, err = strconv.Atoi(parts[1]); err != nil || minutes > 59 {
			return nil, fmt.Errorf("unexpected offset %q", s)
		}
	}

	offset := sign * (hours*3600 + minutes*60)
	if offset == 0 {
		return time.UTC, nil
	}
	return time.FixedZone("", offset), nil
}
