package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"medibook/backend/internal/domain"
	"medibook/backend/internal/store"
)

type DoctorRepo struct {
	db bun.IDB
}

func NewDoctorRepo(db bun.IDB) *DoctorRepo {
	return &DoctorRepo{db: db}
}

func (r *DoctorRepo) List(ctx context.Context, specialization string) ([]domain.Doctor, error) {
	var rows []domain.Doctor
	q := r.db.NewSelect().
		Model(&rows).
		Where("available = TRUE")

	if s := strings.TrimSpace(specialization); s != "" {
		q = q.Where("LOWER(specialization) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	err := q.
		OrderExpr("specialization ASC, rating DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Doctor, error) {
	var row domain.Doctor
	err := r.db.NewSelect().
		Model(&row).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Doctor{}, store.ErrNotFound
		}
		return domain.Doctor{}, err
	}
	return row, nil
}

type ScheduleRepo struct {
	db bun.IDB
}

func NewScheduleRepo(db bun.IDB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) ListActiveEntries(ctx context.Context, doctorID uuid.UUID) ([]domain.WeeklyScheduleEntry, error) {
	var rows []domain.WeeklyScheduleEntry
	err := r.db.NewSelect().
		Model(&rows).
		Where("doctor_id = ?", doctorID).
		Where("active = TRUE").
		OrderExpr("array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], day_of_week), start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
