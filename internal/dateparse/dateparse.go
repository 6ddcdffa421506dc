// Package dateparse turns expiry-date input strings ("2026-03-01", "+7d",
// "friday", "tomorrow") into concrete dates.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse resolves an expiry input string against the current time.
func Parse(input string) (time.Time, error) {
	return ParseFrom(input, time.Now())
}

// ParseFrom resolves an expiry input string relative to the given
// reference time, for deterministic tests. The result is midnight local
// time on the target day.
//
// Supported forms:
//   - exact dates: "2026-03-01"
//   - relative offsets: "+7d", "+2w", "+1m"
//   - keywords: "today", "tomorrow"
//   - weekday names: "monday".."sunday" (next occurrence)
func ParseFrom(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	if t, err := time.ParseInLocation("2006-01-02", input, now.Location()); err == nil {
		return t, nil
	}

	switch input {
	case "today":
		return startOfDay(now), nil
	case "tomorrow":
		return startOfDay(now.AddDate(0, 0, 1)), nil
	}

	// Relative offsets: +Nd, +Nw, +Nm
	if strings.HasPrefix(input, "+") && len(input) >= 3 {
		suffix := input[len(input)-1]
		n, err := strconv.Atoi(input[1 : len(input)-1])
		if err == nil && n >= 0 {
			switch suffix {
			case 'd':
				return startOfDay(now.AddDate(0, 0, n)), nil
			case 'w':
				return startOfDay(now.AddDate(0, 0, n*7)), nil
			case 'm':
				return startOfDay(now.AddDate(0, n, 0)), nil
			default:
				return time.Time{}, fmt.Errorf("unknown relative unit %q in %q (use d, w, or m)", string(suffix), input)
			}
		}
	}

	weekdays := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	if target, ok := weekdays[input]; ok {
		ahead := (int(target) - int(now.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7 // always advance to the next occurrence
		}
		return startOfDay(now.AddDate(0, 0, ahead)), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", input)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
