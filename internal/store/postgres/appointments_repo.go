package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"medibook/backend/internal/domain"
	"medibook/backend/internal/store"
)

// slotTakenConstraint is the partial unique index on
// (doctor_id, appointment_date, appointment_time) restricted to non-terminal
// statuses. It is the storage-enforced no-double-booking invariant; every
// write that can collide with it maps the violation to store.ErrSlotTaken.
const slotTakenConstraint = "appointments_slot_taken"

type AppointmentRepo struct {
	db bun.IDB
}

func NewAppointmentRepo(db bun.IDB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	var row domain.Appointment
	err := r.db.NewSelect().
		Model(&row).
		Relation("Doctor").
		Where("a.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return row, nil
}

func (r *AppointmentRepo) ListBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time, exclude uuid.UUID) ([]domain.TimeOfDay, error) {
	q := r.db.NewSelect().
		Model((*domain.Appointment)(nil)).
		Column("appointment_time").
		Where("doctor_id = ?", doctorID).
		Where("appointment_date = ?", date).
		Where("status IN (?)", bun.In(domain.NonTerminalStatuses))

	if exclude != uuid.Nil {
		q = q.Where("id != ?", exclude)
	}

	var times []domain.TimeOfDay
	err := q.
		OrderExpr("appointment_time ASC").
		Scan(ctx, &times)
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *AppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		return domain.Appointment{}, mapWriteError(err)
	}
	return m, nil
}

func (r *AppointmentRepo) Cancel(ctx context.Context, id uuid.UUID, cancelledBy, reason string, at time.Time) (domain.Appointment, error) {
	res, err := r.db.NewUpdate().
		Model((*domain.Appointment)(nil)).
		Set("status = ?", domain.StatusCancelled).
		Set("cancelled_by = ?", cancelledBy).
		Set("cancellation_reason = ?", reason).
		Set("cancelled_at = ?", at).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Where("status IN (?)", bun.In(domain.NonTerminalStatuses)).
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *AppointmentRepo) UpdateSlot(ctx context.Context, id uuid.UUID, newDate time.Time, newTime domain.TimeOfDay) (domain.Appointment, error) {
	res, err := r.db.NewUpdate().
		Model((*domain.Appointment)(nil)).
		Set("appointment_date = ?", newDate).
		Set("appointment_time = ?", newTime).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("status IN (?)", bun.In(domain.NonTerminalStatuses)).
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, mapWriteError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *AppointmentRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, includePast bool, today time.Time) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	q := r.db.NewSelect().
		Model(&rows).
		Relation("Doctor").
		Where("a.patient_id = ?", patientID)

	if includePast {
		q = q.OrderExpr("a.appointment_date DESC, a.appointment_time DESC")
	} else {
		q = q.
			Where("a.appointment_date >= ?", today).
			Where("a.status IN (?)", bun.In(domain.NonTerminalStatuses)).
			OrderExpr("a.appointment_date ASC, a.appointment_time ASC")
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == slotTakenConstraint {
			return store.ErrSlotTaken
		}
		return store.ErrDuplicate
	}
	return err
}
