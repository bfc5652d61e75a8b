package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Weekday is the lowercase day name stored on a TimeSlot.
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// Weekdays is the fixed Sunday-first ordering used for every weekday index.
var Weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf maps an instant to its weekday in the instant's own location.
func WeekdayOf(t time.Time) Weekday {
	return Weekdays[int(t.Weekday())]
}

// ParseWeekday accepts only the exact lowercase day names.
func ParseWeekday(s string) (Weekday, bool) {
	for _, d := range Weekdays {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// Title returns the capitalized day name, e.g. "Monday".
func (d Weekday) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Index returns the Sunday-first position of d, or -1 for unknown values.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// TimeSlot is one weekday's availability window. Times are zero-padded "HH:MM"
// strings in the doctor's local frame and are compared lexically.
type TimeSlot struct {
	Day         Weekday `bson:"day" json:"day" binding:"omitempty,weekday"`
	StartTime   string  `bson:"startTime" json:"startTime" binding:"omitempty,hhmm"`
	EndTime     string  `bson:"endTime" json:"endTime" binding:"omitempty,hhmm"`
	IsAvailable bool    `bson:"isAvailable" json:"isAvailable"`
}

// IsComplete reports whether all three descriptive fields are filled in.
func (s TimeSlot) IsComplete() bool {
	return s.Day != "" && s.StartTime != "" && s.EndTime != ""
}

// Availability is a doctor's weekly slot collection. Insertion order carries no
// meaning. A nil Availability stands for a missing or malformed stored value.
type Availability []TimeSlot

// SlotFor returns the first slot configured for day.
func (a Availability) SlotFor(day Weekday) (TimeSlot, bool) {
	for _, s := range a {
		if s.Day == day {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// UnmarshalBSONValue never fails: anything other than a well-formed array of
// slots decodes to nil so the owning document still loads.
func (a *Availability) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*a = nil
	if t != bsontype.Array {
		return nil
	}
	var slots []TimeSlot
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&slots); err != nil {
		return nil
	}
	if slots == nil {
		slots = []TimeSlot{}
	}
	*a = slots
	return nil
}

// UnmarshalJSON mirrors UnmarshalBSONValue for cached or client supplied JSON.
func (a *Availability) UnmarshalJSON(data []byte) error {
	*a = nil
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	var slots []TimeSlot
	if err := json.Unmarshal(trimmed, &slots); err != nil {
		return nil
	}
	if slots == nil {
		slots = []TimeSlot{}
	}
	*a = slots
	return nil
}

// MarshalJSON renders a missing collection as an empty array.
func (a Availability) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]TimeSlot(a))
}

// DaySchedule is one row of the seven-row weekly schedule.
type DaySchedule struct {
	Day         string  `json:"day"`
	Status      string  `json:"status"`
	Hours       *string `json:"hours"`
	IsAvailable bool    `json:"isAvailable"`
}

// AvailabilitySummary bundles every derived availability fact for display.
type AvailabilitySummary struct {
	DoctorID       string        `json:"doctorId"`
	IsAvailableNow bool          `json:"isAvailableNow"`
	Status         string        `json:"status"`
	NextAvailable  string        `json:"nextAvailable"`
	TodayHours     string        `json:"todayHours"`
	Weekly         []DaySchedule `json:"weeklySchedule"`
	EvaluatedAt    time.Time     `json:"evaluatedAt"`
}

// UpdateAvailabilityRequest is the full-replace payload a doctor submits.
type UpdateAvailabilityRequest struct {
	Availability []TimeSlot `json:"availability" binding:"required,dive"`
}
