package scheduling

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"medibook/backend/internal/domain"
	"medibook/backend/internal/notify"
	"medibook/backend/internal/store"
)

type fakeDoctors struct {
	listFn func(ctx context.Context, specialization string) ([]domain.Doctor, error)
	getFn  func(ctx context.Context, id uuid.UUID) (domain.Doctor, error)
}

func (f *fakeDoctors) List(ctx context.Context, specialization string) ([]domain.Doctor, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx, specialization)
}

func (f *fakeDoctors) GetByID(ctx context.Context, id uuid.UUID) (domain.Doctor, error) {
	if f.getFn == nil {
		panic("GetByID not configured")
	}
	return f.getFn(ctx, id)
}

type fakeSchedules struct {
	listActiveFn func(ctx context.Context, doctorID uuid.UUID) ([]domain.WeeklyScheduleEntry, error)
}

func (f *fakeSchedules) ListActiveEntries(ctx context.Context, doctorID uuid.UUID) ([]domain.WeeklyScheduleEntry, error) {
	if f.listActiveFn == nil {
		panic("ListActiveEntries not configured")
	}
	return f.listActiveFn(ctx, doctorID)
}

type fakePatients struct {
	getFn        func(ctx context.Context, id uuid.UUID) (domain.Patient, error)
	getByPhoneFn func(ctx context.Context, phone string) (domain.Patient, error)
	createFn     func(ctx context.Context, patient domain.Patient) (domain.Patient, error)
}

func (f *fakePatients) GetByID(ctx context.Context, id uuid.UUID) (domain.Patient, error) {
	if f.getFn == nil {
		panic("GetByID not configured")
	}
	return f.getFn(ctx, id)
}

func (f *fakePatients) GetByPhone(ctx context.Context, phone string) (domain.Patient, error) {
	if f.getByPhoneFn == nil {
		panic("GetByPhone not configured")
	}
	return f.getByPhoneFn(ctx, phone)
}

func (f *fakePatients) Create(ctx context.Context, patient domain.Patient) (domain.Patient, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, patient)
}

type fakeAppointments struct {
	getFn           func(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	listBookedFn    func(ctx context.Context, doctorID uuid.UUID, date time.Time, exclude uuid.UUID) ([]domain.TimeOfDay, error)
	createFn        func(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	cancelFn        func(ctx context.Context, id uuid.UUID, cancelledBy, reason string, at time.Time) (domain.Appointment, error)
	updateSlotFn    func(ctx context.Context, id uuid.UUID, newDate time.Time, newTime domain.TimeOfDay) (domain.Appointment, error)
	listByPatientFn func(ctx context.Context, patientID uuid.UUID, includePast bool, today time.Time) ([]domain.Appointment, error)
}

func (f *fakeAppointments) GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	if f.getFn == nil {
		panic("GetByID not configured")
	}
	return f.getFn(ctx, id)
}

func (f *fakeAppointments) ListBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time, exclude uuid.UUID) ([]domain.TimeOfDay, error) {
	if f.listBookedFn == nil {
		panic("ListBookedTimes not configured")
	}
	return f.listBookedFn(ctx, doctorID, date, exclude)
}

func (f *fakeAppointments) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, appt)
}

func (f *fakeAppointments) Cancel(ctx context.Context, id uuid.UUID, cancelledBy, reason string, at time.Time) (domain.Appointment, error) {
	if f.cancelFn == nil {
		panic("Cancel not configured")
	}
	return f.cancelFn(ctx, id, cancelledBy, reason, at)
}

func (f *fakeAppointments) UpdateSlot(ctx context.Context, id uuid.UUID, newDate time.Time, newTime domain.TimeOfDay) (domain.Appointment, error) {
	if f.updateSlotFn == nil {
		panic("UpdateSlot not configured")
	}
	return f.updateSlotFn(ctx, id, newDate, newTime)
}

func (f *fakeAppointments) ListByPatient(ctx context.Context, patientID uuid.UUID, includePast bool, today time.Time) ([]domain.Appointment, error) {
	if f.listByPatientFn == nil {
		panic("ListByPatient not configured")
	}
	return f.listByPatientFn(ctx, patientID, includePast, today)
}

type recorderEvents struct {
	mu        sync.Mutex
	created   []notify.BookingEvent
	cancelled []notify.CancellationEvent
}

func (r *recorderEvents) BookingCreated(_ context.Context, event notify.BookingEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, event)
}

func (r *recorderEvents) BookingCancelled(_ context.Context, event notify.CancellationEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled = append(r.cancelled, event)
}

// testToday is the fixed clock for service tests: Monday 2025-11-17, mid
// morning.
var testToday = time.Date(2025, 11, 17, 10, 0, 0, 0, time.UTC)

func newTestService(doctors *fakeDoctors, schedules *fakeSchedules, patients *fakePatients, appointments *fakeAppointments, events notify.Events) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(doctors, schedules, patients, appointments, events, logger, Config{})
	svc.now = func() time.Time { return testToday }
	return svc
}

func mustTime(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	tod, err := domain.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q) error: %v", s, err)
	}
	return tod
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) error: %v", s, err)
	}
	return d
}

// weekdayHours builds one active entry per listed weekday with the given
// window and slot length.
func weekdayHours(doctorID uuid.UUID, days []domain.Weekday, start, end domain.TimeOfDay, slotMinutes int) []domain.WeeklyScheduleEntry {
	entries := make([]domain.WeeklyScheduleEntry, 0, len(days))
	for _, day := range days {
		entries = append(entries, domain.WeeklyScheduleEntry{
			ID:                  uuid.New(),
			DoctorID:            doctorID,
			DayOfWeek:           day,
			StartTime:           start,
			EndTime:             end,
			SlotDurationMinutes: slotMinutes,
			Active:              true,
		})
	}
	return entries
}

var weekdaysMonFri = []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday}

func fixedDoctor(id uuid.UUID) *fakeDoctors {
	return &fakeDoctors{
		getFn: func(_ context.Context, got uuid.UUID) (domain.Doctor, error) {
			if got != id {
				return domain.Doctor{}, store.ErrNotFound
			}
			return domain.Doctor{
				ID:             id,
				FirstName:      "Ada",
				LastName:       "Ibrahim",
				Specialization: "Cardiology",
				Email:          "ada.ibrahim@example.org",
				Available:      true,
			}, nil
		},
	}
}

func fixedPatient(id uuid.UUID) *fakePatients {
	return &fakePatients{
		getFn: func(_ context.Context, got uuid.UUID) (domain.Patient, error) {
			if got != id {
				return domain.Patient{}, store.ErrNotFound
			}
			return domain.Patient{
				ID:        id,
				FirstName: "Bayo",
				LastName:  "Adeyemi",
				Email:     "bayo.adeyemi@example.org",
				Phone:     "+2348010000009",
			}, nil
		},
	}
}
