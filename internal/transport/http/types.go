package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"medibook/backend/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type DoctorResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Specialization    string    `json:"specialization"`
	YearsOfExperience int       `json:"years_of_experience"`
	ConsultationFee   float64   `json:"consultation_fee"`
	Rating            float64   `json:"rating"`
}

type ScheduleEntryResponse struct {
	DayOfWeek           string `json:"day_of_week"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
}

type AvailabilityResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
	Message        string   `json:"message"`
}

type RegisterPatientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	BloodGroup  string `json:"blood_group,omitempty"`
	Address     string `json:"address,omitempty"`
}

type PatientResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

type BookAppointmentRequest struct {
	PatientPhone string `json:"patient_phone"`
	DoctorID     string `json:"doctor_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Reason       string `json:"reason"`
	Symptoms     string `json:"symptoms,omitempty"`
}

type CancelAppointmentRequest struct {
	PatientID string `json:"patient_id"`
	Reason    string `json:"reason"`
}

type RescheduleAppointmentRequest struct {
	PatientID string `json:"patient_id"`
	NewDate   string `json:"new_date"`
	NewTime   string `json:"new_time"`
}

type AppointmentResponse struct {
	ID        uuid.UUID       `json:"id"`
	PatientID uuid.UUID       `json:"patient_id"`
	DoctorID  uuid.UUID       `json:"doctor_id"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Status    string          `json:"status"`
	Reason    string          `json:"reason"`
	Symptoms  string          `json:"symptoms,omitempty"`
	Doctor    *DoctorResponse `json:"doctor,omitempty"`
}

// SlotUnavailableResponse carries the alternatives alongside the rejection so
// a caller can re-offer without another availability round trip.
type SlotUnavailableResponse struct {
	Error          string   `json:"error"`
	Details        string   `json:"details"`
	AvailableSlots []string `json:"available_slots"`
	Message        string   `json:"message,omitempty"`
}

func toDoctorResponse(d domain.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:                d.ID,
		Name:              d.Name(),
		Specialization:    d.Specialization,
		YearsOfExperience: d.YearsOfExperience,
		ConsultationFee:   d.ConsultationFee,
		Rating:            d.Rating,
	}
}

func toScheduleEntryResponse(e domain.WeeklyScheduleEntry) ScheduleEntryResponse {
	return ScheduleEntryResponse{
		DayOfWeek:           string(e.DayOfWeek),
		StartTime:           e.StartTime.String(),
		EndTime:             e.EndTime.String(),
		SlotDurationMinutes: e.SlotDurationMinutes,
	}
}

func toPatientResponse(p domain.Patient) PatientResponse {
	return PatientResponse{
		ID:    p.ID,
		Name:  p.Name(),
		Email: p.Email,
		Phone: p.Phone,
	}
}

func toAppointmentResponse(a domain.Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Date:      domain.FormatDate(a.Date),
		Time:      a.Time.String(),
		Status:    string(a.Status),
		Reason:    a.Reason,
		Symptoms:  a.Symptoms,
	}
	if a.Doctor != nil {
		doctor := toDoctorResponse(*a.Doctor)
		resp.Doctor = &doctor
	}
	return resp
}

func slotStrings(slots []domain.TimeOfDay) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}
