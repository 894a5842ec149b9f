// Package dates resolves human date expressions into canonical calendar dates.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical calendar date form.
const Layout = "2006-01-02"

// ErrNotADate is returned when an expression matches none of the accepted grammars.
var ErrNotADate = errors.New("not a date")

var offsetPattern = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)

// maxOffset bounds an offset's magnitude before any unit arithmetic. Any
// larger offset leaves the year 1-9999 range whatever the unit.
const maxOffset = 10000 * 366

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Resolve converts expr into a YYYY-MM-DD date relative to ref.
//
// Grammars are tried in order: a strict YYYY-MM-DD literal, the keywords
// today, tomorrow and "next <weekday>", then a single signed offset such as
// +3d, -2w, +1m or +1y. Keywords and unit letters are case-insensitive.
// Month and year offsets clamp to the last valid day of the target month.
func Resolve(expr string, ref time.Time) (string, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return "", ErrNotADate
	}

	if t, err := time.Parse(Layout, s); err == nil {
		return t.Format(Layout), nil
	}

	day := midnight(ref)

	if t, ok := keyword(s, day); ok {
		return t.Format(Layout), nil
	}

	if m := offsetPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil || n > maxOffset {
			return "", fmt.Errorf("%w: offset out of range", ErrNotADate)
		}
		if m[1] == "-" {
			n = -n
		}
		t, err := applyOffset(day, n, m[3])
		if err != nil {
			return "", err
		}
		return t.Format(Layout), nil
	}

	return "", ErrNotADate
}

// Today returns the canonical form of now's calendar date.
func Today(now time.Time) string {
	return midnight(now).Format(Layout)
}

// Valid reports whether s is already a canonical YYYY-MM-DD date.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

func keyword(s string, day time.Time) (time.Time, bool) {
	switch s {
	case "today":
		return day, true
	case "tomorrow":
		return day.AddDate(0, 0, 1), true
	}

	fields := strings.Fields(s)
	if len(fields) != 2 || fields[0] != "next" {
		return time.Time{}, false
	}
	wd, ok := weekdays[fields[1]]
	if !ok {
		return time.Time{}, false
	}
	return nextWeekday(day, wd), true
}

// nextWeekday never returns day itself.
func nextWeekday(day time.Time, wd time.Weekday) time.Time {
	ahead := (int(wd) - int(day.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return day.AddDate(0, 0, ahead)
}

func applyOffset(day time.Time, n int, unit string) (time.Time, error) {
	var t time.Time
	switch unit {
	case "d":
		t = day.AddDate(0, 0, n)
	case "w":
		t = day.AddDate(0, 0, 7*n)
	case "m":
		t = addMonthsClamped(day, n)
	case "y":
		t = addMonthsClamped(day, 12*n)
	default:
		return time.Time{}, ErrNotADate
	}
	if t.Year() < 1 || t.Year() > 9999 {
		return time.Time{}, fmt.Errorf("%w: offset out of range", ErrNotADate)
	}
	return t, nil
}

func addMonthsClamped(day time.Time, months int) time.Time {
	total := int(day.Month()) - 1 + months
	year := day.Year() + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)

	d := day.Day()
	if last := daysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
