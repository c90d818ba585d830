package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"medibook/backend/internal/domain"
	"medibook/backend/internal/store"
)

type PatientRepo struct {
	db bun.IDB
}

func NewPatientRepo(db bun.IDB) *PatientRepo {
	return &PatientRepo{db: db}
}

func (r *PatientRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Patient, error) {
	var row domain.Patient
	err := r.db.NewSelect().
		Model(&row).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Patient{}, store.ErrNotFound
		}
		return domain.Patient{}, err
	}
	return row, nil
}

func (r *PatientRepo) GetByPhone(ctx context.Context, phone string) (domain.Patient, error) {
	var row domain.Patient
	err := r.db.NewSelect().
		Model(&row).
		Where("phone = ?", phone).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Patient{}, store.ErrNotFound
		}
		return domain.Patient{}, err
	}
	return row, nil
}

func (r *PatientRepo) Create(ctx context.Context, patient domain.Patient) (domain.Patient, error) {
	m := patient
	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Patient{}, store.ErrDuplicate
		}
		return domain.Patient{}, err
	}
	return m, nil
}
