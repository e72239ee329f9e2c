package client

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// combinedTimePattern matches XhYm, e.g. "1h30m".
var combinedTimePattern = regexp.MustCompile(`^(\d+)h(\d+)m$`)

// timePattern matches Xh or Xm.
var timePattern = regexp.MustCompile(`^(\d+)(h|m)$`)

// ParseDuration parses "2h", "30m" or "1h30m" into hours and minutes.
// A zero duration is rejected.
func ParseDuration(input string) (hours, minutes int, err error) {
	if m := combinedTimePattern.FindStringSubmatch(input); m != nil {
		hours, _ = strconv.Atoi(m[1])
		minutes, _ = strconv.Atoi(m[2])
	} else if m := timePattern.FindStringSubmatch(input); m != nil {
		value, _ := strconv.Atoi(m[1])
		if m[2] == "h" {
			hours = value
		} else {
			minutes = value
		}
	} else {
		return 0, 0, fmt.Errorf("invalid time format: expected Xh, Xm, or XhYm, got %s", input)
	}

	if hours == 0 && minutes == 0 {
		return 0, 0, fmt.Errorf("invalid duration: duration cannot be zero")
	}
	return hours, minutes, nil
}

// ParseAmount parses a non-negative hour or minute count as typed by a user.
// Fractions are allowed ("1.5").
func ParseAmount(input string) (float64, error) {
	v, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", input)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %q: time can only be added", input)
	}
	return v, nil
}
