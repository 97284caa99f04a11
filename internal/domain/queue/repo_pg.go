package queue

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frontdesk/frontdesk/internal/platform/httperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const entryCols = `id, patient_name, arrival_time, est_wait_time, status, priority, queue_number, created_at, updated_at`

func scanEntry(row pgx.Row) (*QueueEntry, error) {
	var e QueueEntry
	err := row.Scan(&e.ID, &e.PatientName, &e.ArrivalTime, &e.EstWaitTime,
		&e.Status, &e.Priority, &e.QueueNumber, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

// Create assigns queue_number = max(existing)+1 in the insert statement
// itself. The UNIQUE constraint on queue_number catches the race between two
// concurrent inserts reading the same max; the losing insert is retried.
func (r *repoPG) Create(ctx context.Context, e *QueueEntry) error {
	e.ID = uuid.New()
	for attempt := 0; attempt < 3; attempt++ {
		err := r.pool.QueryRow(ctx, `
			INSERT INTO queue_entry (id, patient_name, arrival_time, est_wait_time, status, priority, queue_number)
			SELECT $1, $2, $3, $4, $5, $6, COALESCE(MAX(queue_number), 0) + 1
			FROM queue_entry
			RETURNING queue_number, created_at, updated_at`,
			e.ID, e.PatientName, e.ArrivalTime, e.EstWaitTime, e.Status, e.Priority).
			Scan(&e.QueueNumber, &e.CreatedAt, &e.UpdatedAt)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return err
	}
	return httperr.Conflictf("could not assign queue number")
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*QueueEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `SELECT `+entryCols+` FROM queue_entry WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httperr.NotFoundf("queue entry %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *repoPG) Update(ctx context.Context, e *QueueEntry) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE queue_entry SET patient_name=$2, est_wait_time=$3, status=$4, priority=$5, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.PatientName, e.EstWaitTime, e.Status, e.Priority)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NotFoundf("queue entry %s not found", e.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM queue_entry WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NotFoundf("queue entry %s not found", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context) ([]*QueueEntry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+entryCols+` FROM queue_entry`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*QueueEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
