// Package http exposes the scheduling service over a chi router: doctor
// directory, availability lookups, patient registration and the appointment
// lifecycle.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"medibook/backend/internal/domain"
	"medibook/backend/internal/service/scheduling"
)

type schedulingService interface {
	ListDoctors(ctx context.Context, specialization string) ([]domain.Doctor, error)
	GetDoctorSchedule(ctx context.Context, doctorID uuid.UUID) ([]domain.WeeklyScheduleEntry, error)
	ComputeAvailability(ctx context.Context, doctorID uuid.UUID, date time.Time) (domain.AvailabilityResult, error)
	RegisterPatient(ctx context.Context, in scheduling.RegisterPatientInput) (domain.Patient, error)
	PatientByPhone(ctx context.Context, phone string) (domain.Patient, error)
	Book(ctx context.Context, in scheduling.BookInput) (domain.Appointment, error)
	Cancel(ctx context.Context, appointmentID, patientID uuid.UUID, reason string) (domain.Appointment, error)
	Reschedule(ctx context.Context, appointmentID, patientID uuid.UUID, newDate time.Time, newTime domain.TimeOfDay) (domain.Appointment, error)
	ListPatientAppointments(ctx context.Context, patientID uuid.UUID, includePast bool) ([]domain.Appointment, error)
}

type Server struct {
	svc schedulingService
	log *slog.Logger
}

func NewServer(svc schedulingService, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		svc: svc,
		log: log.With(slog.String("component", "http")),
	}
}

func (s *Server) listDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := s.svc.ListDoctors(r.Context(), r.URL.Query().Get("specialization"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, toDoctorResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getDoctorSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_doctor_id", "id must be a valid UUID")
		return
	}

	entries, err := s.svc.GetDoctorSchedule(r.Context(), doctorID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]ScheduleEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toScheduleEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_doctor_id", "id must be a valid UUID")
		return
	}
	date, err := domain.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	res, err := s.svc.ComputeAvailability(r.Context(), doctorID, date)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{
		Date:           domain.FormatDate(date),
		AvailableSlots: slotStrings(res.Slots),
		Message:        res.Message,
	})
}

func (s *Server) registerPatient(w http.ResponseWriter, r *http.Request) {
	var req RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	dob, err := domain.ParseDate(req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date_of_birth", "date_of_birth must be YYYY-MM-DD")
		return
	}

	patient, err := s.svc.RegisterPatient(r.Context(), scheduling.RegisterPatientInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: dob,
		Gender:      req.Gender,
		BloodGroup:  req.BloodGroup,
		Address:     req.Address,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPatientResponse(patient))
}

func (s *Server) bookAppointment(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctor_id must be a valid UUID")
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
		return
	}
	slot, err := domain.ParseTimeOfDay(req.Time)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_time", "time must be HH:MM")
		return
	}

	patient, err := s.svc.PatientByPhone(r.Context(), req.PatientPhone)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	appt, err := s.svc.Book(r.Context(), scheduling.BookInput{
		PatientID: patient.ID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      slot,
		Reason:    req.Reason,
		Symptoms:  req.Symptoms,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.log.Info("appointment booked",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("doctor_id", appt.DoctorID.String()),
		slog.String("date", domain.FormatDate(appt.Date)),
		slog.String("time", appt.Time.String()),
	)
	writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
}

func (s *Server) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
		return
	}
	var req CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
		return
	}

	appt, err := s.svc.Cancel(r.Context(), appointmentID, patientID, req.Reason)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.log.Info("appointment cancelled", slog.String("appointment_id", appt.ID.String()))
	writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
}

func (s *Server) rescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
		return
	}
	var req RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
		return
	}
	newDate, err := domain.ParseDate(req.NewDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "new_date must be YYYY-MM-DD")
		return
	}
	newTime, err := domain.ParseTimeOfDay(req.NewTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_time", "new_time must be HH:MM")
		return
	}

	appt, err := s.svc.Reschedule(r.Context(), appointmentID, patientID, newDate, newTime)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.log.Info("appointment rescheduled",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("date", domain.FormatDate(appt.Date)),
		slog.String("time", appt.Time.String()),
	)
	writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
}

func (s *Server) listPatientAppointments(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
		return
	}
	includePast := r.URL.Query().Get("include_past") == "true"

	appointments, err := s.svc.ListPatientAppointments(r.Context(), patientID, includePast)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, toAppointmentResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeServiceError maps the scheduling error taxonomy onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		vErr     *scheduling.ValidationError
		nfErr    *scheduling.NotFoundError
		slotErr  *scheduling.SlotUnavailableError
		stateErr *scheduling.InvalidStateError
	)
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "validation_error", vErr.Error())
	case errors.As(err, &nfErr):
		writeError(w, http.StatusNotFound, nfErr.Entity+"_not_found", nfErr.Error())
	case errors.Is(err, scheduling.ErrPastDate):
		writeError(w, http.StatusBadRequest, "past_date", err.Error())
	case errors.Is(err, scheduling.ErrTooFarAhead):
		writeError(w, http.StatusBadRequest, "too_far_ahead", err.Error())
	case errors.Is(err, scheduling.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, scheduling.ErrAlreadyRegistered):
		writeError(w, http.StatusConflict, "already_registered", err.Error())
	case errors.As(err, &stateErr):
		writeError(w, http.StatusConflict, "invalid_state", stateErr.Error())
	case errors.As(err, &slotErr):
		writeJSON(w, http.StatusConflict, SlotUnavailableResponse{
			Error:          "slot_unavailable",
			Details:        slotErr.Error(),
			AvailableSlots: slotStrings(slotErr.Slots),
			Message:        slotErr.Message,
		})
	default:
		s.log.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", GetRequestID(r.Context())),
			slog.Any("err", err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
