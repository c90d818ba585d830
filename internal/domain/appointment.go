package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusNoShow    AppointmentStatus = "NoShow"
)

// NonTerminalStatuses are the statuses that hold a slot and remain eligible
// for cancellation or reschedule.
var NonTerminalStatuses = []AppointmentStatus{StatusScheduled, StatusConfirmed}

func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo implements the appointment state machine:
// Scheduled -> {Confirmed, Cancelled}; Confirmed -> {Cancelled, Completed,
// NoShow}; terminal states allow nothing.
func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	switch s {
	case StatusScheduled:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted || to == StatusNoShow
	}
	return false
}

const (
	CancelledByPatient = "Patient"
	CancelledByDoctor  = "Doctor"
)

type Appointment struct {
	bun.BaseModel `bun:"table:appointments,alias:a"`

	ID                 uuid.UUID         `bun:"id,pk,type:uuid"`
	PatientID          uuid.UUID         `bun:"patient_id,notnull,type:uuid"`
	DoctorID           uuid.UUID         `bun:"doctor_id,notnull,type:uuid"`
	Date               time.Time         `bun:"appointment_date,notnull,type:date"`
	Time               TimeOfDay         `bun:"appointment_time,notnull,type:time"`
	Status             AppointmentStatus `bun:"status,notnull"`
	Reason             string            `bun:"reason,notnull"`
	Symptoms           string            `bun:"symptoms"`
	CancelledBy        string            `bun:"cancelled_by"`
	CancellationReason string            `bun:"cancellation_reason"`
	CreatedAt          time.Time         `bun:"created_at,notnull"`
	UpdatedAt          time.Time         `bun:"updated_at,notnull"`
	CancelledAt        *time.Time        `bun:"cancelled_at"`

	Doctor  *Doctor  `bun:"rel:belongs-to,join:doctor_id=id"`
	Patient *Patient `bun:"rel:belongs-to,join:patient_id=id"`
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
