package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Appointment maps to the appointment table. Date is a calendar date
// ("YYYY-MM-DD") and Time a slot label ("HH:MM"); both are compared as
// strings for conflict detection.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Date        string    `db:"date" json:"date"`
	Time        string    `db:"time" json:"time"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

const (
	StatusBooked    = "Booked"
	StatusCompleted = "Completed"
	StatusCanceled  = "Canceled"
)

var validStatuses = map[string]bool{
	StatusBooked:    true,
	StatusCompleted: true,
	StatusCanceled:  true,
}

// Fixed clinic day: 09:00 inclusive to 17:00 exclusive in 30-minute steps.
const (
	dayStartHour = 9
	dayEndHour   = 17
	slotMinutes  = 30
)

// SlotLabels returns the 16 canonical slot labels in ascending order.
func SlotLabels() []string {
	var labels []string
	for h := dayStartHour; h < dayEndHour; h++ {
		for m := 0; m < 60; m += slotMinutes {
			labels = append(labels, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return labels
}

// FreeSlots returns the canonical labels minus the booked times, preserving
// ascending order. Booked times outside the canonical set are ignored.
func FreeSlots(booked []string) []string {
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}
	var free []string
	for _, label := range SlotLabels() {
		if !taken[label] {
			free = append(free, label)
		}
	}
	return free
}

// ValidDate reports whether s is a well-formed "YYYY-MM-DD" calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidTime reports whether s is a well-formed "HH:MM" label. Times are not
// restricted to the canonical slots; conflicts key on the exact string.
func ValidTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// CreateInput carries the fields accepted when booking an appointment.
type CreateInput struct {
	PatientName string    `json:"patient_name"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
}

// UpdateInput carries the optional fields of a partial update. Nil fields
// are left untouched.
type UpdateInput struct {
	PatientName *string    `json:"patient_name"`
	DoctorID    *uuid.UUID `json:"doctor_id"`
	Date        *string    `json:"date"`
	Time        *string    `json:"time"`
}
