package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medibook/backend/internal/domain"
	"medibook/backend/internal/store"
)

// ComputeAvailability returns the free slots for a doctor on a calendar date.
// An empty slot list distinguishes, via the message, a day the doctor does
// not work from a day that is fully booked.
func (s *Service) ComputeAvailability(ctx context.Context, doctorID uuid.UUID, date time.Time) (domain.AvailabilityResult, error) {
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AvailabilityResult{}, &NotFoundError{Entity: "doctor"}
		}
		return domain.AvailabilityResult{}, err
	}
	return s.availability(ctx, doctorID, domain.DateOf(date), uuid.Nil)
}

// availability is the exclusion-set core shared by Book and Reschedule.
// exclude removes one appointment's own booked time from the exclusion set so
// a reschedule can keep its current slot.
func (s *Service) availability(ctx context.Context, doctorID uuid.UUID, date time.Time, exclude uuid.UUID) (domain.AvailabilityResult, error) {
	entries, err := s.schedules.ListActiveEntries(ctx, doctorID)
	if err != nil {
		return domain.AvailabilityResult{}, err
	}

	weekday := domain.WeekdayOf(date)
	entry, ok := firstEntryFor(entries, weekday)
	if !ok {
		return domain.AvailabilityResult{
			Message: fmt.Sprintf("Doctor is not available on %s. Works on: %s.", weekday, workingDays(entries)),
		}, nil
	}
	if countEntriesFor(entries, weekday) > 1 {
		s.logger.Warn("multiple active schedule entries for weekday, using first",
			"doctor_id", doctorID, "day_of_week", weekday)
	}

	booked, err := s.appointments.ListBookedTimes(ctx, doctorID, date, exclude)
	if err != nil {
		return domain.AvailabilityResult{}, err
	}
	taken := make(map[domain.TimeOfDay]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	grid := domain.SlotGrid(entry)
	free := make([]domain.TimeOfDay, 0, len(grid))
	for _, slot := range grid {
		if _, booked := taken[slot]; !booked {
			free = append(free, slot)
		}
	}

	day := domain.FormatDate(date)
	if len(free) == 0 {
		return domain.AvailabilityResult{
			Slots:   free,
			Message: fmt.Sprintf("No slots left on %s. Try another day.", day),
		}, nil
	}
	return domain.AvailabilityResult{
		Slots:   free,
		Message: fmt.Sprintf("Available slots on %s", day),
	}, nil
}

func firstEntryFor(entries []domain.WeeklyScheduleEntry, day domain.Weekday) (domain.WeeklyScheduleEntry, bool) {
	for _, e := range entries {
		if e.DayOfWeek == day {
			return e, true
		}
	}
	return domain.WeeklyScheduleEntry{}, false
}

func countEntriesFor(entries []domain.WeeklyScheduleEntry, day domain.Weekday) int {
	n := 0
	for _, e := range entries {
		if e.DayOfWeek == day {
			n++
		}
	}
	return n
}

func workingDays(entries []domain.WeeklyScheduleEntry) string {
	seen := make(map[domain.Weekday]struct{}, len(entries))
	days := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.DayOfWeek]; dup {
			continue
		}
		seen[e.DayOfWeek] = struct{}{}
		days = append(days, string(e.DayOfWeek))
	}
	return strings.Join(days, ", ")
}

func slotListed(slots []domain.TimeOfDay, t domain.TimeOfDay) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
