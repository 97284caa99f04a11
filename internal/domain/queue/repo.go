package queue

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the queue_entry store. Create must assign queue_number
// atomically with respect to concurrent creates.
type Repository interface {
	Create(ctx context.Context, e *QueueEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*QueueEntry, error)
	Update(ctx context.Context, e *QueueEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*QueueEntry, error)
}
