package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var yearLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01",
	"2006",
	"02.01.2006",
}

// ParseYear reads the year of a record date.
func ParseYear(value string) (int, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return 0, ErrNoYear
	}

	for _, layout := range yearLayouts {
		t, err := time.Parse(layout, value)

		if err == nil {
			return t.Year(), nil
		}
	}

	if len(value) >= 4 {
		year, err := strconv.Atoi(value[:4])

		if err == nil {
			return year, nil
		}
	}

	return 0, fmt.Errorf("invalid record date %q: %w", value, ErrNoYear)
}
