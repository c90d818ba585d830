package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"medibook/backend/internal/domain"
	"medibook/backend/internal/store"
)

// ListDoctors returns available doctors, optionally filtered by a
// case-insensitive specialization substring.
func (s *Service) ListDoctors(ctx context.Context, specialization string) ([]domain.Doctor, error) {
	return s.doctors.List(ctx, specialization)
}

// GetDoctorSchedule returns a doctor's active weekly entries in Monday-first
// order.
func (s *Service) GetDoctorSchedule(ctx context.Context, doctorID uuid.UUID) ([]domain.WeeklyScheduleEntry, error) {
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "doctor"}
		}
		return nil, err
	}
	return s.schedules.ListActiveEntries(ctx, doctorID)
}

type RegisterPatientInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth time.Time
	Gender      string
	BloodGroup  string
	Address     string
}

func (s *Service) RegisterPatient(ctx context.Context, in RegisterPatientInput) (domain.Patient, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	phone := strings.TrimSpace(in.Phone)
	email := strings.TrimSpace(in.Email)

	if firstName == "" {
		return domain.Patient{}, validationError("first_name is required")
	}
	if lastName == "" {
		return domain.Patient{}, validationError("last_name is required")
	}
	if phone == "" {
		return domain.Patient{}, validationError("phone is required")
	}
	if email == "" {
		return domain.Patient{}, validationError("email is required")
	}
	if in.Gender == "" {
		return domain.Patient{}, validationError("gender is required")
	}
	if in.DateOfBirth.IsZero() || !domain.DateOf(in.DateOfBirth).Before(s.today()) {
		return domain.Patient{}, validationError("date_of_birth must be in the past")
	}

	patient, err := s.patients.Create(ctx, domain.Patient{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Phone:       phone,
		DateOfBirth: domain.DateOf(in.DateOfBirth),
		Gender:      in.Gender,
		BloodGroup:  strings.TrimSpace(in.BloodGroup),
		Address:     strings.TrimSpace(in.Address),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.Patient{}, ErrAlreadyRegistered
		}
		return domain.Patient{}, err
	}
	return patient, nil
}

// PatientByPhone resolves a patient from the phone number the outer layers
// identify callers by.
func (s *Service) PatientByPhone(ctx context.Context, phone string) (domain.Patient, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return domain.Patient{}, validationError("phone is required")
	}
	patient, err := s.patients.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Patient{}, &NotFoundError{Entity: "patient"}
		}
		return domain.Patient{}, err
	}
	return patient, nil
}

// ListPatientAppointments returns a patient's appointments. With includePast
// false only upcoming non-terminal appointments are returned, soonest first;
// with includePast true the full history is returned, newest first.
func (s *Service) ListPatientAppointments(ctx context.Context, patientID uuid.UUID, includePast bool) ([]domain.Appointment, error) {
	if patientID == uuid.Nil {
		return nil, validationError("patient_id is required")
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "patient"}
		}
		return nil, err
	}
	return s.appointments.ListByPatient(ctx, patientID, includePast, s.today())
}
