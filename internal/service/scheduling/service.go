// Package scheduling implements the slot-availability and booking-conflict
// engine: free-slot computation from weekly schedule templates, conflict-free
// booking, and the patient-side appointment lifecycle.
package scheduling

import (
	"log/slog"
	"time"

	"medibook/backend/internal/domain"
	"medibook/backend/internal/notify"
	"medibook/backend/internal/store"
)

const defaultMaxAdvanceDays = 90

type Service struct {
	doctors      store.DoctorRepository
	schedules    store.ScheduleRepository
	patients     store.PatientRepository
	appointments store.AppointmentRepository
	events       notify.Events
	logger       *slog.Logger

	maxAdvanceDays int
	now            func() time.Time
}

type Config struct {
	// MaxAdvanceDays bounds how far ahead a booking date may lie.
	// Defaults to 90.
	MaxAdvanceDays int
}

func NewService(
	doctors store.DoctorRepository,
	schedules store.ScheduleRepository,
	patients store.PatientRepository,
	appointments store.AppointmentRepository,
	events notify.Events,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if events == nil {
		events = notify.NopEvents{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	maxAdvanceDays := cfg.MaxAdvanceDays
	if maxAdvanceDays <= 0 {
		maxAdvanceDays = defaultMaxAdvanceDays
	}

	return &Service{
		doctors:        doctors,
		schedules:      schedules,
		patients:       patients,
		appointments:   appointments,
		events:         events,
		logger:         logger,
		maxAdvanceDays: maxAdvanceDays,
		now:            time.Now,
	}
}

// today returns the server's current calendar date. All date-window checks
// compare calendar dates, never instants.
func (s *Service) today() time.Time {
	return domain.DateOf(s.now())
}

func (s *Service) checkDateWindow(date, today time.Time) error {
	if date.Before(today) {
		return ErrPastDate
	}
	if date.After(today.AddDate(0, 0, s.maxAdvanceDays)) {
		return ErrTooFarAhead
	}
	return nil
}

func appointmentSummary(appt domain.Appointment) notify.AppointmentSummary {
	return notify.AppointmentSummary{
		ID:     appt.ID,
		Date:   domain.FormatDate(appt.Date),
		Time:   appt.Time.String(),
		Status: string(appt.Status),
		Reason: appt.Reason,
	}
}

func doctorSummary(doctor domain.Doctor) notify.DoctorSummary {
	return notify.DoctorSummary{
		ID:              doctor.ID,
		Name:            doctor.Name(),
		Specialization:  doctor.Specialization,
		Email:           doctor.Email,
		ConsultationFee: doctor.ConsultationFee,
	}
}

func patientSummary(patient domain.Patient) notify.PatientSummary {
	return notify.PatientSummary{
		ID:    patient.ID,
		Name:  patient.Name(),
		Email: patient.Email,
		Phone: patient.Phone,
	}
}
