package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"medibook/backend/internal/domain"
	"medibook/backend/internal/notify"
	"medibook/backend/internal/store"
)

type BookInput struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Date      time.Time
	Time      domain.TimeOfDay
	Reason    string
	Symptoms  string
}

// Book reserves a slot for a patient. The availability check and the insert
// are not atomic on their own; the storage-level uniqueness constraint on
// (doctor, date, time) for non-terminal appointments closes the race, and a
// constraint violation is reported exactly like an ordinary unavailable slot.
func (s *Service) Book(ctx context.Context, in BookInput) (domain.Appointment, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return domain.Appointment{}, validationError("reason is required")
	}
	if in.PatientID == uuid.Nil {
		return domain.Appointment{}, validationError("patient_id is required")
	}
	if in.DoctorID == uuid.Nil {
		return domain.Appointment{}, validationError("doctor_id is required")
	}

	date := domain.DateOf(in.Date)
	if err := s.checkDateWindow(date, s.today()); err != nil {
		return domain.Appointment{}, err
	}

	doctor, err := s.doctors.GetByID(ctx, in.DoctorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Appointment{}, &NotFoundError{Entity: "doctor"}
		}
		return domain.Appointment{}, err
	}
	patient, err := s.patients.GetByID(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Appointment{}, &NotFoundError{Entity: "patient"}
		}
		return domain.Appointment{}, err
	}

	res, err := s.availability(ctx, doctor.ID, date, uuid.Nil)
	if err != nil {
		return domain.Appointment{}, err
	}
	if !slotListed(res.Slots, in.Time) {
		return domain.Appointment{}, &SlotUnavailableError{Time: in.Time, Slots: res.Slots, Message: res.Message}
	}

	appt, err := s.appointments.Create(ctx, domain.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      date,
		Time:      in.Time,
		Status:    domain.StatusScheduled,
		Reason:    reason,
		Symptoms:  strings.TrimSpace(in.Symptoms),
	})
	if err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			return domain.Appointment{}, s.slotLost(ctx, doctor.ID, date, in.Time)
		}
		return domain.Appointment{}, err
	}

	s.events.BookingCreated(ctx, notify.BookingEvent{
		Appointment: appointmentSummary(appt),
		Doctor:      doctorSummary(doctor),
		Patient:     patientSummary(patient),
	})
	return appt, nil
}

// slotLost builds the SlotUnavailableError for a lost race, re-reading
// availability once so the caller sees the state that beat it.
func (s *Service) slotLost(ctx context.Context, doctorID uuid.UUID, date time.Time, t domain.TimeOfDay) error {
	res, err := s.availability(ctx, doctorID, date, uuid.Nil)
	if err != nil {
		s.logger.Error("availability re-read after slot conflict failed",
			"doctor_id", doctorID, "date", domain.FormatDate(date), "error", err)
		return &SlotUnavailableError{Time: t}
	}
	return &SlotUnavailableError{Time: t, Slots: res.Slots, Message: res.Message}
}
