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

// Cancel moves a patient's appointment to Cancelled and frees its slot. The
// status update in the store is compare-and-set against non-terminal status,
// so two racing cancels resolve to one winner.
func (s *Service) Cancel(ctx context.Context, appointmentID, patientID uuid.UUID, reason string) (domain.Appointment, error) {
	appt, err := s.ownedActiveAppointment(ctx, appointmentID, patientID)
	if err != nil {
		return domain.Appointment{}, err
	}

	cancelled, err := s.appointments.Cancel(ctx, appt.ID, domain.CancelledByPatient, strings.TrimSpace(reason), s.now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost a race with another lifecycle write; report the
			// status that won.
			return domain.Appointment{}, s.staleStateError(ctx, appt.ID)
		}
		return domain.Appointment{}, err
	}

	s.emitCancellation(ctx, cancelled)
	return cancelled, nil
}

// Reschedule moves an appointment to a new date and time as one in-place
// mutation: no intermediate Cancelled row, and the appointment's own slot is
// left out of the conflict check so moving within the same day works.
func (s *Service) Reschedule(ctx context.Context, appointmentID, patientID uuid.UUID, newDate time.Time, newTime domain.TimeOfDay) (domain.Appointment, error) {
	appt, err := s.ownedActiveAppointment(ctx, appointmentID, patientID)
	if err != nil {
		return domain.Appointment{}, err
	}

	date := domain.DateOf(newDate)
	if err := s.checkDateWindow(date, s.today()); err != nil {
		return domain.Appointment{}, err
	}

	res, err := s.availability(ctx, appt.DoctorID, date, appt.ID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if !slotListed(res.Slots, newTime) {
		return domain.Appointment{}, &SlotUnavailableError{Time: newTime, Slots: res.Slots, Message: res.Message}
	}

	moved, err := s.appointments.UpdateSlot(ctx, appt.ID, date, newTime)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrSlotTaken):
			return domain.Appointment{}, s.slotLost(ctx, appt.DoctorID, date, newTime)
		case errors.Is(err, store.ErrNotFound):
			return domain.Appointment{}, s.staleStateError(ctx, appt.ID)
		}
		return domain.Appointment{}, err
	}
	return moved, nil
}

// ownedActiveAppointment loads an appointment and runs the shared lifecycle
// preconditions: it exists, it belongs to the requesting patient, and it is
// still in a non-terminal status.
func (s *Service) ownedActiveAppointment(ctx context.Context, appointmentID, patientID uuid.UUID) (domain.Appointment, error) {
	if appointmentID == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}
	if patientID == uuid.Nil {
		return domain.Appointment{}, validationError("patient_id is required")
	}

	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Appointment{}, &NotFoundError{Entity: "appointment"}
		}
		return domain.Appointment{}, err
	}
	if appt.PatientID != patientID {
		return domain.Appointment{}, ErrForbidden
	}
	if appt.Status.IsTerminal() {
		return domain.Appointment{}, &InvalidStateError{Status: appt.Status}
	}
	return appt, nil
}

// staleStateError re-reads an appointment after a compare-and-set miss and
// reports its current status.
func (s *Service) staleStateError(ctx context.Context, appointmentID uuid.UUID) error {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Entity: "appointment"}
		}
		return err
	}
	return &InvalidStateError{Status: appt.Status}
}

func (s *Service) emitCancellation(ctx context.Context, appt domain.Appointment) {
	event := notify.CancellationEvent{
		Appointment: appointmentSummary(appt),
		CancelledBy: appt.CancelledBy,
		Reason:      appt.CancellationReason,
	}
	if appt.Doctor != nil {
		event.Doctor = doctorSummary(*appt.Doctor)
	}
	if patient, err := s.patients.GetByID(ctx, appt.PatientID); err == nil {
		event.Patient = patientSummary(patient)
	} else {
		s.logger.Warn("patient lookup for cancellation event failed",
			"patient_id", appt.PatientID, "error", err)
		event.Patient = notify.PatientSummary{ID: appt.PatientID}
	}
	s.events.BookingCancelled(ctx, event)
}
