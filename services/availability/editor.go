package availability

import (
	"fmt"

	"medconnect/models"
)

// State is the lifecycle position of an editing session.
type State string

const (
	StateIdle       State = "idle"
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSaved      State = "saved"
)

// SlotField names an editable TimeSlot field, using the wire names.
type SlotField string

const (
	FieldDay         SlotField = "day"
	FieldStartTime   SlotField = "startTime"
	FieldEndTime     SlotField = "endTime"
	FieldIsAvailable SlotField = "isAvailable"
)

// BlankSlot is the row appended by AddSlot.
func BlankSlot() models.TimeSlot {
	return models.TimeSlot{IsAvailable: true}
}

// Editor is a single-owner working list of candidate slots. Edits are not
// validated; all checks run in Save.
type Editor struct {
	slots []models.TimeSlot
	state State
}

// NewEditor seeds the working list from the persisted collection, or with one
// blank row when nothing is stored.
func NewEditor(existing models.Availability) *Editor {
	slots := make([]models.TimeSlot, len(existing))
	copy(slots, existing)
	if len(slots) == 0 {
		slots = append(slots, BlankSlot())
	}
	return &Editor{slots: slots, state: StateIdle}
}

// RestoreEditor rebuilds a session from a stored snapshot.
func RestoreEditor(slots []models.TimeSlot, state State) *Editor {
	e := NewEditor(slots)
	if state != "" {
		e.state = state
	}
	return e
}

func (e *Editor) State() State {
	return e.state
}

// Slots returns a copy of the working list.
func (e *Editor) Slots() []models.TimeSlot {
	out := make([]models.TimeSlot, len(e.slots))
	copy(out, e.slots)
	return out
}

func (e *Editor) AddSlot() {
	e.slots = append(e.slots, BlankSlot())
	e.state = StateEditing
}

// RemoveSlot drops the row at index. The list never becomes empty.
func (e *Editor) RemoveSlot(index int) error {
	if index < 0 || index >= len(e.slots) {
		return fmt.Errorf("%w: %d", ErrSlotIndex, index)
	}
	if len(e.slots) == 1 {
		return ErrLastSlot
	}
	e.slots = append(e.slots[:index], e.slots[index+1:]...)
	e.state = StateEditing
	return nil
}

// UpdateSlot replaces one field of one row. Values are type-checked only.
func (e *Editor) UpdateSlot(index int, field SlotField, value interface{}) error {
	if index < 0 || index >= len(e.slots) {
		return fmt.Errorf("%w: %d", ErrSlotIndex, index)
	}
	slot := &e.slots[index]

	switch field {
	case FieldDay:
		switch v := value.(type) {
		case string:
			slot.Day = models.Weekday(v)
		case models.Weekday:
			slot.Day = v
		default:
			return fmt.Errorf("%w: %s expects a string", ErrFieldValue, field)
		}
	case FieldStartTime, FieldEndTime:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string", ErrFieldValue, field)
		}
		if field == FieldStartTime {
			slot.StartTime = v
		} else {
			slot.EndTime = v
		}
	case FieldIsAvailable:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a boolean", ErrFieldValue, field)
		}
		slot.IsAvailable = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	e.state = StateEditing
	return nil
}

// Preview renders the weekly schedule of the rows a save would keep.
func (e *Editor) Preview() []models.DaySchedule {
	return WeeklySchedule(models.Availability(keepable(e.slots)))
}

// Save validates the working list. On success the session is Saved and the
// returned collection is ready for a full replace; on failure it goes back to
// Editing with the list untouched.
func (e *Editor) Save() (models.Availability, error) {
	e.state = StateValidating
	validated, err := ValidateAndSave(e.slots)
	if err != nil {
		e.state = StateEditing
		return nil, err
	}
	e.state = StateSaved
	return validated, nil
}

// keepable drops incomplete and disabled rows.
func keepable(slots []models.TimeSlot) []models.TimeSlot {
	kept := make([]models.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.IsComplete() && s.IsAvailable {
			kept = append(kept, s)
		}
	}
	return kept
}

// ValidateAndSave filters the working list down to complete, enabled rows and
// checks them. Dropped rows are discarded, not round-tripped.
func ValidateAndSave(slots []models.TimeSlot) (models.Availability, error) {
	kept := keepable(slots)
	if len(kept) == 0 {
		return nil, ErrNoValidSlots
	}

	days := make(map[models.Weekday]struct{}, len(kept))
	for _, s := range kept {
		days[s.Day] = struct{}{}
	}
	if len(days) != len(kept) {
		return nil, ErrDuplicateDay
	}

	for _, s := range kept {
		if _, ok := models.ParseWeekday(string(s.Day)); !ok {
			return nil, newValidationError(ErrInvalidDay, "%q", s.Day)
		}
		if !IsClock(s.StartTime) || !IsClock(s.EndTime) {
			return nil, newValidationError(ErrInvalidTime, "%s %s-%s", s.Day, s.StartTime, s.EndTime)
		}
		if s.StartTime >= s.EndTime {
			return nil, newValidationError(ErrInvalidTimeRange, "%s %s-%s", s.Day, s.StartTime, s.EndTime)
		}
	}
	return models.Availability(kept), nil
}
