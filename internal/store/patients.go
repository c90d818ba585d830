package store

import (
	"context"

	"github.com/google/uuid"

	"medibook/backend/internal/domain"
)

type PatientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Patient, error)
	GetByPhone(ctx context.Context, phone string) (domain.Patient, error)
	// Create returns ErrDuplicate when the phone or email is already
	// registered.
	Create(ctx context.Context, patient domain.Patient) (domain.Patient, error)
}
