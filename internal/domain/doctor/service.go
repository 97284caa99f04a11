package doctor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/frontdesk/frontdesk/internal/platform/httperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return httperr.Validationf("name is required")
	}
	if d.Specialization == "" {
		return httperr.Validationf("specialization is required")
	}
	if d.Location == "" {
		return httperr.Validationf("location is required")
	}
	if !validGenders[d.Gender] {
		return httperr.Validationf("invalid gender: %s", d.Gender)
	}
	if d.Status == "" {
		d.Status = StatusAvailable
	}
	if !validStatuses[d.Status] {
		return httperr.Validationf("invalid status: %s", d.Status)
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	return s.repo.List(ctx)
}

// Update merges the provided fields into the stored doctor.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, httperr.Validationf("name must not be empty")
		}
		d.Name = *in.Name
	}
	if in.Specialization != nil {
		if *in.Specialization == "" {
			return nil, httperr.Validationf("specialization must not be empty")
		}
		d.Specialization = *in.Specialization
	}
	if in.Gender != nil {
		if !validGenders[*in.Gender] {
			return nil, httperr.Validationf("invalid gender: %s", *in.Gender)
		}
		d.Gender = *in.Gender
	}
	if in.Location != nil {
		if *in.Location == "" {
			return nil, httperr.Validationf("location must not be empty")
		}
		d.Location = *in.Location
	}
	if in.Status != nil {
		if !validStatuses[*in.Status] {
			return nil, httperr.Validationf("invalid status: %s", *in.Status)
		}
		d.Status = *in.Status
	}
	if in.NextAvailable != nil {
		d.NextAvailable = in.NextAvailable
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// SetStatus updates a doctor's availability status and, when provided,
// the next time they are expected to be free.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string, nextAvailable *time.Time) (*Doctor, error) {
	if !validStatuses[status] {
		return nil, httperr.Validationf("invalid status: %s", status)
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Status = status
	if nextAvailable != nil {
		d.NextAvailable = nextAvailable
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
