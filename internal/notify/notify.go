// Package notify carries booking lifecycle events out of the scheduling
// service. Delivery (email, SMS, whatever sits behind the webhook) is an
// external concern; events are self-contained so no delivery path ever needs
// to read the database.
package notify

import (
	"context"

	"github.com/google/uuid"
)

type DoctorSummary struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	Email           string    `json:"email"`
	ConsultationFee float64   `json:"consultation_fee"`
}

type PatientSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

type AppointmentSummary struct {
	ID     uuid.UUID `json:"id"`
	Date   string    `json:"date"`
	Time   string    `json:"time"`
	Status string    `json:"status"`
	Reason string    `json:"reason"`
}

type BookingEvent struct {
	Appointment AppointmentSummary `json:"appointment"`
	Doctor      DoctorSummary      `json:"doctor"`
	Patient     PatientSummary     `json:"patient"`
}

type CancellationEvent struct {
	Appointment AppointmentSummary `json:"appointment"`
	Doctor      DoctorSummary      `json:"doctor"`
	Patient     PatientSummary     `json:"patient"`
	CancelledBy string             `json:"cancelled_by"`
	Reason      string             `json:"reason"`
}

// Events is the boundary the scheduling service emits through. Implementations
// must not block the caller and must never surface delivery failures back into
// the booking path.
type Events interface {
	BookingCreated(ctx context.Context, event BookingEvent)
	BookingCancelled(ctx context.Context, event CancellationEvent)
}

// NopEvents discards everything. Used when no delivery target is configured
// and as the default in tests.
type NopEvents struct{}

func (NopEvents) BookingCreated(context.Context, BookingEvent)        {}
func (NopEvents) BookingCancelled(context.Context, CancellationEvent) {}
