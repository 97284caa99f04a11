package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/frontdesk/frontdesk/internal/domain/doctor"
)

// Repository is the appointment store. Create and Update must enforce the
// single-Booked-per-(doctor, date, time) invariant atomically and return a
// Conflict error when it is violated.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, date string) ([]*Appointment, error)
	BookedTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
}

// DoctorDirectory is the read-only roster lookup used to validate doctor ids.
type DoctorDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
}
