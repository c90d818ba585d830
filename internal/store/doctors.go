package store

import (
	"context"

	"github.com/google/uuid"

	"medibook/backend/internal/domain"
)

type DoctorRepository interface {
	// List returns available doctors ordered by specialization then rating
	// descending. A non-empty specialization is a case-insensitive substring
	// filter.
	List(ctx context.Context, specialization string) ([]domain.Doctor, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Doctor, error)
}

type ScheduleRepository interface {
	// ListActiveEntries returns all active weekly schedule entries for a
	// doctor in Monday-first order.
	ListActiveEntries(ctx context.Context, doctorID uuid.UUID) ([]domain.WeeklyScheduleEntry, error)
}
