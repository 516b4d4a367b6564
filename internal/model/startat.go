package model

import (
	"fmt"
	"strings"
	"time"
)

// inputLayout is the format browsers submit for datetime-local fields.
const inputLayout = "2006-01-02T15:04"

// startAtLayouts are tried in order. Values without a zone are read in local time.
var startAtLayouts = []string{
	inputLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseStartAt parses the start time of a reservation as submitted by a form.
func ParseStartAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value != "" {
		for _, layout := range startAtLayouts {
			if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: please enter a valid date and time", ErrValidation)
}
