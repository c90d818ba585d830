package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"medibook/backend/internal/domain"
)

type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error)

	// ListBookedTimes returns the exact appointment times holding slots for
	// (doctorID, date): every appointment in a non-terminal status, ascending.
	// A non-nil exclude leaves that appointment's own slot out, so a
	// reschedule check does not collide with the slot being vacated.
	ListBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time, exclude uuid.UUID) ([]domain.TimeOfDay, error)

	// Create persists a new appointment. ErrSlotTaken reports that a
	// concurrent booking won the (doctor, date, time) slot first.
	Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)

	// Cancel transitions the appointment to Cancelled if it is still in a
	// non-terminal status, recording who cancelled and why. ErrNotFound
	// reports that no cancellable row matched.
	Cancel(ctx context.Context, id uuid.UUID, cancelledBy, reason string, at time.Time) (domain.Appointment, error)

	// UpdateSlot moves a non-terminal appointment to a new date and time in
	// place. ErrSlotTaken reports a conflict with another booking;
	// ErrNotFound reports that no non-terminal row matched.
	UpdateSlot(ctx context.Context, id uuid.UUID, newDate time.Time, newTime domain.TimeOfDay) (domain.Appointment, error)

	// ListByPatient returns a patient's appointments hydrated with doctor
	// details. With includePast false: non-terminal appointments dated today
	// or later, ascending. With includePast true: everything, descending.
	ListByPatient(ctx context.Context, patientID uuid.UUID, includePast bool, today time.Time) ([]domain.Appointment, error)
}
