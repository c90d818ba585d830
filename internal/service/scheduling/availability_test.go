package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"medibook/backend/internal/domain"
)

func TestComputeAvailability_FullWeekdayGrid(t *testing.T) {
	doctorID := uuid.New()
	schedules := &fakeSchedules{
		listActiveFn: func(_ context.Context, _ uuid.UUID) ([]domain.WeeklyScheduleEntry, error) {
			return weekdayHours(doctorID, weekdaysMonFri, mustTime(t, "09:00"), mustTime(t, "17:00"), 30), nil
		},
	}
	appointments := &fakeAppointments{
		listBookedFn: func(_ context.Context, _ uuid.UUID, _ time.Time, _ uuid.UUID) ([]domain.TimeOfDay, error) {
			return nil, nil
		},
	}
	svc := newTestService(fixedDoctor(doctorID), schedules, nil, appointments, nil)

	res, err := svc.ComputeAvailability(context.Background(), doctorID, mustDate(t, "2025-11-17"))
	if err != nil {
		t.Fatalf("ComputeAvailability error: %v", err)
	}
	if len(res.Slots) != 16 {
		t.Fatalf("len(slots) = %d, want 16", len(res.Slots))
	}
	if res.Slots[0] != mustTime(t, "09:00") {
		t.Fatalf("first slot = %s, want 09:00", res.Slots[0])
	}
	if res.Slots[len(res.Slots)-1] != mustTime(t, "16:30") {
		t.Fatalf("last slot = %s, want 16:30", res.Slots[len(res.Slots)-1])
	}
	for i := 1; i < len(res.Slots); i++ {
		if res.Slots[i]-res.Slots[i-1] != 30 {
			t.Fatalf("slots %s and %s are not 30 minutes apart", res.Slots[i-1], res.Slots[i])
		}
	}
	if res.Message != "Available slots on 2025-11-17" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestComputeAvailability_BookedTimesExcluded(t *testing.T) {
	doctorID := uuid.New()
	schedules := &fakeSchedules{
		listActiveFn: func(_ context.Context, _ uuid.UUID) ([]domain.WeeklyScheduleEntry, error) {
			return weekdayHours(doctorID, weekdaysMonFri, mustTime(t, "09:00"), mustTime(t, "17:00"), 30), nil
		},
	}
	appointments := &fakeAppointments{
		listBookedFn: func(_ context.Context, _ uuid.UUID, _ time.Time, _ uuid.UUID) ([]domain.TimeOfDay, error) {
			return []domain.TimeOfDay{mustTime(t, "09:00")}, nil
		},
	}
	svc := newTestService(fixedDoctor(doctorID), schedules, nil, appointments, nil)

	res, err := svc.ComputeAvailability(context.Background(), doctorID, mustDate(t, "2025-11-17"))
	if err != nil {
		t.Fatalf("ComputeAvailability error: %v", err)
	}
	if len(res.Slots) != 15 {
		t.Fatalf("len(slots) = %d, want 15", len(res.Slots))
	}
	if slotListed(res.Slots, mustTime(t, "09:00")) {
		t.Fatalf("09:00 still listed after being booked")
	}
}

func TestComputeAvailability_NotWorkingThatDay(t *testing.T) {
	doctorID := uuid.New()
	schedules := &fakeSchedules{
		listActiveFn: func(_ context.Context, _ uuid.UUID) ([]domain.WeeklyScheduleEntry, error) {
			return weekdayHours(doctorID, weekdaysMonFri, mustTime(t, "09:00"), mustTime(t, "17:00"), 30), nil
		},
	}
	svc := newTestService(fixedDoctor(doctorID), schedules, nil, &fakeAppointments{}, nil)

	// 2025-11-22 is a Saturday.
	res, err := svc.ComputeAvailability(context.Background(), doctorID, mustDate(t, "2025-11-22"))
	if err != nil {
		t.Fatalf("ComputeAvailability error: %v", err)
	}
	if len(res.Slots) != 0 {
		t.Fatalf("len(slots) = %d, want 0", len(res.Slots))
	}
	want := "Doctor is not available on Saturday. Works on: Monday, Tuesday, Wednesday, Thursday, Friday."
	if res.Message != want {
		t.Fatalf("message = %q, want %q", res.Message, want)
	}
}

func TestComputeAvailability_FullyBookedIsNotNotWorking(t *testing.T) {
	doctorID := uuid.New()
	schedules := &fakeSchedules{
		listActiveFn: func(_ context.Context, _ uuid.UUID) ([]domain.WeeklyScheduleEntry, error) {
			return weekdayHours(doctorID, []domain.Weekday{domain.Monday}, mustTime(t, "09:00"), mustTime(t, "10:00"), 30), nil
		},
	}
	appointments := &fakeAppointments{
		listBookedFn: func(_ context.Context, _ uuid.UUID, _ time.Time, _ uuid.UUID) ([]domain.TimeOfDay, error) {
			return []domain.TimeOfDay{mustTime(t, "09:00"), mustTime(t, "09:30")}, nil
		},
	}
	svc := newTestService(fixedDoctor(doctorID), schedules, nil, appointments, nil)

	res, err := svc.ComputeAvailability(context.Background(), doctorID, mustDate(t, "2025-11-17"))
	if err != nil {
		t.Fatalf("ComputeAvailability error: %v", err)
	}
	if len(res.Slots) != 0 {
		t.Fatalf("len(slots) = %d, want 0", len(res.Slots))
	}
	want := "No slots left on 2025-11-17. Try another day."
	if res.Message != want {
		t.Fatalf("message = %q, want %q", res.Message, want)
	}
}

func TestComputeAvailability_Idempotent(t *testing.T) {
	doctorID := uuid.New()
	schedules := &fakeSchedules{
		listActiveFn: func(_ context.Context, _ uuid.UUID) ([]domain.WeeklyScheduleEntry, error) {
			return weekdayHours(doctorID, weekdaysMonFri, mustTime(t, "09:00"), mustTime(t, "12:00"), 20), nil
		},
	}
	appointments := &fakeAppointments{
		listBookedFn: func(_ context.Context, _ uuid.UUID, _ time.Time, _ uuid.UUID) ([]domain.TimeOfDay, error) {
			return []domain.TimeOfDay{mustTime(t, "10:00")}, nil
		},
	}
	svc := newTestService(fixedDoctor(doctorID), schedules, nil, appointments, nil)

	first, err := svc.ComputeAvailability(context.Background(), doctorID, mustDate(t, "2025-11-18"))
	if err != nil {
		t.Fatalf("first call error: %v", err)
	}
	second, err := svc.ComputeAvailability(context.Background(), doctorID, mustDate(t, "2025-11-18"))
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if len(first.Slots) != len(second.Slots) || first.Message != second.Message {
		t.Fatalf("results differ: %v vs %v", first, second)
	}
	for i := range first.Slots {
		if first.Slots[i] != second.Slots[i] {
			t.Fatalf("slot %d differs: %s vs %s", i, first.Slots[i], second.Slots[i])
		}
	}
}

func TestComputeAvailability_FirstEntryWinsOnDuplicateWeekday(t *testing.T) {
	doctorID := uuid.New()
	schedules := &fakeSchedules{
		listActiveFn: func(_ context.Context, _ uuid.UUID) ([]domain.WeeklyScheduleEntry, error) {
			morning := weekdayHours(doctorID, []domain.Weekday{domain.Monday}, mustTime(t, "09:00"), mustTime(t, "10:00"), 30)
			evening := weekdayHours(doctorID, []domain.Weekday{domain.Monday}, mustTime(t, "18:00"), mustTime(t, "20:00"), 30)
			return append(morning, evening...), nil
		},
	}
	appointments := &fakeAppointments{
		listBookedFn: func(_ context.Context, _ uuid.UUID, _ time.Time, _ uuid.UUID) ([]domain.TimeOfDay, error) {
			return nil, nil
		},
	}
	svc := newTestService(fixedDoctor(doctorID), schedules, nil, appointments, nil)

	res, err := svc.ComputeAvailability(context.Background(), doctorID, mustDate(t, "2025-11-17"))
	if err != nil {
		t.Fatalf("ComputeAvailability error: %v", err)
	}
	if len(res.Slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2 (morning entry only)", len(res.Slots))
	}
	if res.Slots[0] != mustTime(t, "09:00") {
		t.Fatalf("first slot = %s, want 09:00", res.Slots[0])
	}
}

func TestComputeAvailability_UnknownDoctor(t *testing.T) {
	svc := newTestService(fixedDoctor(uuid.New()), &fakeSchedules{}, nil, &fakeAppointments{}, nil)

	_, err := svc.ComputeAvailability(context.Background(), uuid.New(), mustDate(t, "2025-11-17"))
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("error type = %T, want *NotFoundError", err)
	}
	if nfErr.Entity != "doctor" {
		t.Fatalf("entity = %q, want doctor", nfErr.Entity)
	}
}
