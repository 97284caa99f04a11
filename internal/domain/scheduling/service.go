package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/frontdesk/frontdesk/internal/platform/httperr"
)

type Service struct {
	repo    Repository
	doctors DoctorDirectory
}

func NewService(repo Repository, doctors DoctorDirectory) *Service {
	return &Service{repo: repo, doctors: doctors}
}

// AvailableSlots returns the canonical slot labels that have no Booked
// appointment for the doctor on the given date, ascending. A doctor with no
// bookings gets all 16 slots.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	if !ValidDate(date) {
		return nil, httperr.Validationf("invalid date: %s", date)
	}
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}
	booked, err := s.repo.BookedTimes(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	return FreeSlots(booked), nil
}

// Create books an appointment. The repository rejects a second Booked
// appointment for the same (doctor, date, time) with a Conflict error.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Appointment, error) {
	if in.PatientName == "" {
		return nil, httperr.Validationf("patient_name is required")
	}
	if in.DoctorID == uuid.Nil {
		return nil, httperr.Validationf("doctor_id is required")
	}
	if !ValidDate(in.Date) {
		return nil, httperr.Validationf("invalid date: %s", in.Date)
	}
	if !ValidTime(in.Time) {
		return nil, httperr.Validationf("invalid time: %s", in.Time)
	}
	if _, err := s.doctors.GetByID(ctx, in.DoctorID); err != nil {
		return nil, err
	}

	a := &Appointment{
		PatientName: in.PatientName,
		DoctorID:    in.DoctorID,
		Date:        in.Date,
		Time:        in.Time,
		Status:      StatusBooked,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns appointments ordered by (date, time), optionally filtered to
// one calendar date.
func (s *Service) List(ctx context.Context, date string) ([]*Appointment, error) {
	if date != "" && !ValidDate(date) {
		return nil, httperr.Validationf("invalid date: %s", date)
	}
	return s.repo.List(ctx, date)
}

// Update merges the provided fields into the stored appointment. Moving a
// Booked appointment onto an occupied (doctor, date, time) is a Conflict.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.PatientName != nil {
		if *in.PatientName == "" {
			return nil, httperr.Validationf("patient_name must not be empty")
		}
		a.PatientName = *in.PatientName
	}
	if in.DoctorID != nil {
		if *in.DoctorID == uuid.Nil {
			return nil, httperr.Validationf("doctor_id must not be empty")
		}
		if _, err := s.doctors.GetByID(ctx, *in.DoctorID); err != nil {
			return nil, err
		}
		a.DoctorID = *in.DoctorID
	}
	if in.Date != nil {
		if !ValidDate(*in.Date) {
			return nil, httperr.Validationf("invalid date: %s", *in.Date)
		}
		a.Date = *in.Date
	}
	if in.Time != nil {
		if !ValidTime(*in.Time) {
			return nil, httperr.Validationf("invalid time: %s", *in.Time)
		}
		a.Time = *in.Time
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SetStatus sets the appointment status. All transitions are allowed,
// including reopening a Completed appointment.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !validStatuses[status] {
		return nil, httperr.Validationf("invalid status: %s", status)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
