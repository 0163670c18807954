package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

var (
	reDate = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	reTime = regexp.MustCompile(`^[0-9]{1,2}:[0-9]{2}(:[0-9]{2})?$`)
	reInt  = regexp.MustCompile(`^[+]?[0-9]+$`)
)

// Date validates a calendar date and returns it as YYYY-MM-DD.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !reDate.MatchString(s) {
		return "", false
	}
	d, err := time.Parse(DateLayout, s)
	// year 0 parses but no SQL date type stores it
	if err != nil || d.Year() < 1 {
		return "", false
	}
	return d.Format(DateLayout), true
}

// SlotTime validates a time of day given as HH:MM or HH:MM:SS and returns it
// as HH:MM:SS. When step > 0 the time must sit on a step-minute grid.
func SlotTime(s string, step int) (string, bool) {
	s = strings.TrimSpace(s)
	if !reTime.MatchString(s) {
		return "", false
	}
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = TimeLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return "", false
	}
	if step > 0 {
		if t.Second() != 0 || (t.Hour()*60+t.Minute())%step != 0 {
			return "", false
		}
	}
	return t.Format(TimeLayout), true
}

// Guests parses a party size. Only whole numbers >= 1 that fit in an int
// pass; nothing is rounded or clamped.
func Guests(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !reInt.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Capacity checks a table capacity range.
func Capacity(min, max int) bool {
	return min > 0 && min <= max
}
