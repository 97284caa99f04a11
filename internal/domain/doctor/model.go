package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table. The roster is maintained by front-desk
// admins; scheduling only reads it.
type Doctor struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Specialization string     `db:"specialization" json:"specialization"`
	Gender         string     `db:"gender" json:"gender"`
	Location       string     `db:"location" json:"location"`
	Status         string     `db:"status" json:"status"`
	NextAvailable  *time.Time `db:"next_available" json:"next_available,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	StatusAvailable = "Available"
	StatusBusy      = "Busy"
	StatusOffDuty   = "Off Duty"
)

var validStatuses = map[string]bool{
	StatusAvailable: true,
	StatusBusy:      true,
	StatusOffDuty:   true,
}

var validGenders = map[string]bool{
	"male":   true,
	"female": true,
	"other":  true,
}

// UpdateInput carries the optional fields of a partial update. Nil fields
// are left untouched.
type UpdateInput struct {
	Name           *string    `json:"name"`
	Specialization *string    `json:"specialization"`
	Gender         *string    `json:"gender"`
	Location       *string    `json:"location"`
	Status         *string    `json:"status"`
	NextAvailable  *time.Time `json:"next_available"`
}
