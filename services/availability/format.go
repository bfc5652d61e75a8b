package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const clockLayout = "15:04"

// ClockOf renders the instant as a zero-padded "HH:MM" string, minute precision.
func ClockOf(t time.Time) string {
	return t.Format(clockLayout)
}

// FormatTime converts "HH:MM" to a 12-hour label: "14:30" -> "2:30 PM",
// "00:00" -> "12:00 AM". Minutes pass through untouched. Empty input yields
// an empty string; input without an hour part is returned as is.
func FormatTime(hhmm string) string {
	if hhmm == "" {
		return ""
	}
	hourPart, minutePart, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 {
		return hhmm
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, minutePart, suffix)
}

// IsClock reports whether s is a valid zero-padded 24-hour "HH:MM" value.
// Lexical comparison of times is only sound for values that pass this check.
func IsClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse(clockLayout, s)
	return err == nil
}

func hoursLabel(start, end string) string {
	return FormatTime(start) + " - " + FormatTime(end)
}
