package models

import (
	"fmt"
	"strconv"
	"strings"
)

// BaseHour is the clock hour represented by index 0 of an availability grid.
const BaseHour = 8

// IntervalRecord represents a continuous block of free hours on one day.
type IntervalRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Day       string `json:"day"`
	StartHour int    `json:"startHour"` // inclusive
	EndHour   int    `json:"endHour"`   // exclusive
}

// FormatHour renders an hour as "H:00".
func FormatHour(h int) string {
	return fmt.Sprintf("%d:00", h)
}

// Label returns e.g. "9:00 - 11:00".
func (iv IntervalRecord) Label() string {
	return fmt.Sprintf("%s - %s", FormatHour(iv.StartHour), FormatHour(iv.EndHour))
}

// ParseHour reads back an hour written by FormatHour. A bare "9" is accepted too.
func ParseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ":00")
	h, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid hour %q", s)
	}
	return h, nil
}
