package models

import "time"

// AvailabilityDraft is a server-side editing session over a doctor's slots.
type AvailabilityDraft struct {
	ID        string     `json:"id"`
	DoctorID  string     `json:"doctorId"`
	State     string     `json:"state"`
	Slots     []TimeSlot `json:"slots"`
	LastError string     `json:"lastError,omitempty"`
	// Version increases on every stored edit.
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// UpdateDraftSlotRequest changes one field of one draft row. Value is a string
// for day/startTime/endTime and a bool for isAvailable.
type UpdateDraftSlotRequest struct {
	Field string      `json:"field" binding:"required,oneof=day startTime endTime isAvailable"`
	Value interface{} `json:"value"`
}
