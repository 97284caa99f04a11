package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frontdesk/frontdesk/internal/platform/httperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const apptCols = `id, patient_name, doctor_id, date, time, status, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var date time.Time
	err := row.Scan(&a.ID, &a.PatientName, &a.DoctorID, &date, &a.Time,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Date = date.Format("2006-01-02")
	return &a, nil
}

// isUniqueViolation reports whether err is the partial unique index on
// (doctor_id, date, time) WHERE status = 'Booked' rejecting a double booking.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointment (id, patient_name, doctor_id, date, time, status)
		VALUES ($1, $2, $3, $4::date, $5, $6)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientName, a.DoctorID, a.Date, a.Time, a.Status).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if isUniqueViolation(err) {
		return httperr.Conflictf("doctor %s already has a booking at %s %s", a.DoctorID, a.Date, a.Time)
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httperr.NotFoundf("appointment %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointment SET patient_name=$2, doctor_id=$3, date=$4::date, time=$5, status=$6, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.PatientName, a.DoctorID, a.Date, a.Time, a.Status)
	if isUniqueViolation(err) {
		return httperr.Conflictf("doctor %s already has a booking at %s %s", a.DoctorID, a.Date, a.Time)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NotFoundf("appointment %s not found", a.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NotFoundf("appointment %s not found", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, date string) ([]*Appointment, error) {
	query := `SELECT ` + apptCols + ` FROM appointment`
	var args []interface{}
	if date != "" {
		query += ` WHERE date = $1::date`
		args = append(args, date)
	}
	query += ` ORDER BY date ASC, time ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) BookedTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT time FROM appointment
		WHERE doctor_id = $1 AND date = $2::date AND status = $3
		ORDER BY time ASC`, doctorID, date, StatusBooked)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}
