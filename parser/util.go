package parser

import (
	"fmt"
	"strconv"
	"strings"
)

//*******************************************
// utility methods
//*******************************************

// Parses a GTFS "HH:MM:SS" time into seconds after midnight of the service
// day. Hours past 23 are valid and denote trips running past midnight.
func ParseTime(value string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM:SS", value)
	}
	hours, err := _ParseTimePart(parts[0], "hours", -1)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	minutes, err := _ParseTimePart(parts[1], "minutes", 59)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	seconds, err := _ParseTimePart(parts[2], "seconds", 59)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return hours*60*60 + minutes*60 + seconds, nil
}

func _ParseTimePart(value string, name string, max int64) (int64, error) {
	num, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if max >= 0 && int64(num) > max {
		return 0, fmt.Errorf("%s out of range: %d", name, num)
	}
	return int64(num), nil
}
