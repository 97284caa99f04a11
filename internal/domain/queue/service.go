package queue

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

// List returns the full queue in rank order: Urgent before Normal, then
// ascending arrival time, ties by queue number.
func (s *Service) List(ctx context.Context) ([]*QueueEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	Rank(entries)
	return entries, nil
}

// Position returns the 1-based rank of the entry within the current queue.
func (s *Service) Position(ctx context.Context, id uuid.UUID) (int, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	pos := PositionOf(entries, id)
	if pos == 0 {
		return 0, httperr.NotFoundf("queue entry %s not found", id)
	}
	return pos, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*QueueEntry, error) {
	if in.PatientName == "" {
		return nil, httperr.Validationf("patient_name is required")
	}
	if in.EstWaitTime < 0 {
		return nil, httperr.Validationf("est_wait_time must not be negative")
	}
	if in.Status == "" {
		in.Status = StatusWaiting
	}
	if !validStatuses[in.Status] {
		return nil, httperr.Validationf("invalid status: %s", in.Status)
	}
	if in.Priority == "" {
		in.Priority = PriorityNormal
	}
	if !validPriorities[in.Priority] {
		return nil, httperr.Validationf("invalid priority: %s", in.Priority)
	}

	e := &QueueEntry{
		PatientName: in.PatientName,
		ArrivalTime: time.Now(),
		EstWaitTime: in.EstWaitTime,
		Status:      in.Status,
		Priority:    in.Priority,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*QueueEntry, error) {
	return s.repo.GetByID(ctx, id)
}

// Update merges the provided fields into the stored entry. Arrival time and
// queue number are immutable.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*QueueEntry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.PatientName != nil {
		if *in.PatientName == "" {
			return nil, httperr.Validationf("patient_name must not be empty")
		}
		e.PatientName = *in.PatientName
	}
	if in.EstWaitTime != nil {
		if *in.EstWaitTime < 0 {
			return nil, httperr.Validationf("est_wait_time must not be negative")
		}
		e.EstWaitTime = *in.EstWaitTime
	}
	if in.Status != nil {
		if !validStatuses[*in.Status] {
			return nil, httperr.Validationf("invalid status: %s", *in.Status)
		}
		e.Status = *in.Status
	}
	if in.Priority != nil {
		if !validPriorities[*in.Priority] {
			return nil, httperr.Validationf("invalid priority: %s", *in.Priority)
		}
		e.Priority = *in.Priority
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// SetStatus mutates status only. Any transition is allowed so the front desk
// can correct mistakes.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*QueueEntry, error) {
	if !validStatuses[status] {
		return nil, httperr.Validationf("invalid status: %s", status)
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Status = status
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// SetPriority mutates priority only. Rank changes take effect on the next
// List or Position call.
func (s *Service) SetPriority(ctx context.Context, id uuid.UUID, priority string) (*QueueEntry, error) {
	if !validPriorities[priority] {
		return nil, httperr.Validationf("invalid priority: %s", priority)
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Priority = priority
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the entry. Remaining queue numbers are not renumbered.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
