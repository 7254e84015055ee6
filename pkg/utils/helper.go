package utils

import (
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return result
}

// ParseDate parses a calendar date in YYYY-MM-DD format
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// ParseClock parses a wall-clock time in HH:MM format
func ParseClock(value string) (time.Time, error) {
	return time.Parse("15:04", value)
}
