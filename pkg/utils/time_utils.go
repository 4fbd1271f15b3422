// utils/timeutil.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock values inside a single day are minutes from midnight (0..1440).
const MinutesPerDay = 24 * 60

// ParseHHMM converts "HH:MM" to minutes from midnight.
func ParseHHMM(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse hh:mm %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse hh:mm %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse hh:mm %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse hh:mm %q: out of range", s)
	}
	return h*60 + m, nil
}

// FormatHHMM renders minutes from midnight as "HH:MM".
func FormatHHMM(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseHoursLabel parses a catalog opening-hours label such as "10 am-9 pm",
// "10:30 AM-2 PM", "Open 24 hours" or "Closed" into a [open, close) minute
// range. ok is false when the label means closed or cannot be parsed.
func ParseHoursLabel(label string) (open, closeAt int, ok bool) {
	s := strings.ToLower(strings.TrimSpace(label))
	if s == "" || strings.Contains(s, "closed") {
		return 0, 0, false
	}
	if strings.Contains(s, "open 24 hours") {
		return 0, MinutesPerDay, true
	}

	left, right, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	a, okA := parseClockLabel(left)
	b, okB := parseClockLabel(right)
	if !okA || !okB {
		return 0, 0, false
	}
	// Ranges that wrap past midnight are clamped to end of day.
	if b <= a {
		b = MinutesPerDay
	}
	return a, b, true
}

func parseClockLabel(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	var pm, am bool
	switch {
	case strings.HasSuffix(s, "pm"):
		pm = true
		s = strings.TrimSuffix(s, "pm")
	case strings.HasSuffix(s, "am"):
		am = true
		s = strings.TrimSuffix(s, "am")
	}

	h, m := 0, 0
	var err error
	if hh, mm, found := strings.Cut(s, ":"); found {
		if h, err = strconv.Atoi(hh); err != nil {
			return 0, false
		}
		if m, err = strconv.Atoi(mm); err != nil {
			return 0, false
		}
	} else if h, err = strconv.Atoi(s); err != nil {
		return 0, false
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, false
	}

	if am && h == 12 {
		h = 0
	}
	if pm && h != 12 {
		h += 12
	}
	return h*60 + m, true
}

// WeekdayName returns the catalog's weekday key for a date, e.g. "Monday".
func WeekdayName(d time.Time) string {
	return d.Weekday().String()
}
