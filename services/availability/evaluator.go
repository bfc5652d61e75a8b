// Package availability derives display facts from a doctor's weekly slots and
// validates edits to them. Everything here is pure: callers pass the reference
// instant, and no function touches storage.
//
// Every query fails closed. A nil or empty collection, or a day without an
// available slot, is reported as unavailable rather than as an error.
package availability

import (
	"time"

	"medconnect/models"
)

const (
	StatusAvailable   = "Available"
	StatusUnavailable = "Unavailable"
	StatusOffDay      = "Off Day"

	NextToday        = "Today"
	NextTomorrow     = "Tomorrow"
	NextNotAvailable = "Not Available"

	ScheduleNotAvailable = "Schedule not available"
)

// CurrentWeekday maps now onto the Sunday-first weekday enum.
func CurrentWeekday(now time.Time) models.Weekday {
	return models.WeekdayOf(now)
}

// availableSlot returns the first enabled slot for day. Disabled slots, and
// stored slots whose times are not valid "HH:MM" values, are treated as absent.
func availableSlot(a models.Availability, day models.Weekday) (models.TimeSlot, bool) {
	for _, s := range a {
		if s.Day == day && s.IsAvailable && IsClock(s.StartTime) && IsClock(s.EndTime) {
			return s, true
		}
	}
	return models.TimeSlot{}, false
}

// IsAvailableNow reports whether now falls inside today's enabled window.
// Both window ends are inclusive.
func IsAvailableNow(a models.Availability, now time.Time) bool {
	if len(a) == 0 {
		return false
	}
	slot, ok := availableSlot(a, CurrentWeekday(now))
	if !ok {
		return false
	}
	clock := ClockOf(now)
	return slot.StartTime <= clock && clock <= slot.EndTime
}

// Status is IsAvailableNow rendered as a display string.
func Status(a models.Availability, now time.Time) string {
	if IsAvailableNow(a, now) {
		return StatusAvailable
	}
	return StatusUnavailable
}

// NextAvailable returns "Today" while today's window has not ended, otherwise
// the first enabled day in the following seven: "Tomorrow" for the next day,
// else the capitalized day name. Offset seven is today's weekday one week out,
// so a doctor whose only window today has passed reports today's name.
func NextAvailable(a models.Availability, now time.Time) string {
	if len(a) == 0 {
		return NextNotAvailable
	}

	today := CurrentWeekday(now)
	if slot, ok := availableSlot(a, today); ok && ClockOf(now) <= slot.EndTime {
		return NextToday
	}

	start := today.Index()
	for offset := 1; offset <= 7; offset++ {
		day := models.Weekdays[(start+offset)%7]
		if _, ok := availableSlot(a, day); !ok {
			continue
		}
		if offset == 1 {
			return NextTomorrow
		}
		return day.Title()
	}
	return NextNotAvailable
}

// TodayWorkingHours renders today's enabled window, e.g. "9:00 AM - 12:00 PM".
func TodayWorkingHours(a models.Availability, now time.Time) string {
	if len(a) == 0 {
		return ScheduleNotAvailable
	}
	slot, ok := availableSlot(a, CurrentWeekday(now))
	if !ok {
		return StatusOffDay
	}
	return hoursLabel(slot.StartTime, slot.EndTime)
}

// WeeklySchedule always returns seven rows in Sunday-first order, whatever the
// input order or completeness.
func WeeklySchedule(a models.Availability) []models.DaySchedule {
	week := make([]models.DaySchedule, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		row := models.DaySchedule{Day: day.Title(), Status: StatusOffDay}
		if slot, ok := availableSlot(a, day); ok {
			hours := hoursLabel(slot.StartTime, slot.EndTime)
			row.Status = StatusAvailable
			row.Hours = &hours
			row.IsAvailable = true
		}
		week = append(week, row)
	}
	return week
}

// Summarize evaluates every query against the same reference instant.
func Summarize(doctorID string, a models.Availability, now time.Time) models.AvailabilitySummary {
	return models.AvailabilitySummary{
		DoctorID:       doctorID,
		IsAvailableNow: IsAvailableNow(a, now),
		Status:         Status(a, now),
		NextAvailable:  NextAvailable(a, now),
		TodayHours:     TodayWorkingHours(a, now),
		Weekly:         WeeklySchedule(a),
		EvaluatedAt:    now,
	}
}
