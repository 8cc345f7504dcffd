package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseClock converts a hh:mm:ss clock string into total seconds.
// Whitespace is trimmed; empty or malformed strings return an error.
func ParseClock(s string) (int32, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("clock %q: expected hh:mm:ss", s)
	}
	var total int64
	for _, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("clock %q: %w", s, err)
		}
		if v < 0 {
			return 0, fmt.Errorf("clock %q: negative component", s)
		}
		total = total*60 + v
	}
	return int32(total), nil
}

// ParsePace converts a pace string into seconds. The sites render paces as
// either mm:ss or hh:mm:ss; the two are told apart purely by field length:
// anything at most 5 characters long with a single colon is
// minute:second, so "4:30" and "04:30" both mean 270 seconds.
func ParsePace(s string) (int32, error) {
	s = strings.TrimSpace(s)
	if len(s) <= 5 && strings.Count(s, ":") == 1 {
		s = "00:" + s
	}
	return ParseClock(s)
}

const (
	kmPerMilePace  = 1.609
	kmPerMileSpeed = 1.60934
)

// MilePaceToKm converts seconds-per-mile into seconds-per-km, rounded to
// the nearest second.
func MilePaceToKm(secPerMile float64) int32 {
	return int32(math.Round(secPerMile / kmPerMilePace))
}

// MphToKmh converts miles-per-hour into km-per-hour, rounded to two
// decimals.
func MphToKmh(mph float64) float64 {
	return math.Round(mph*kmPerMileSpeed*100) / 100
}
