package domain

import "testing"

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q) error: %v", s, err)
	}
	return v
}

func TestSlotGrid(t *testing.T) {
	entry := func(start, end string, dur int) WeeklyScheduleEntry {
		return WeeklyScheduleEntry{
			DayOfWeek:           Monday,
			StartTime:           mustTime(t, start),
			EndTime:             mustTime(t, end),
			SlotDurationMinutes: dur,
			Active:              true,
		}
	}

	t.Run("full working day", func(t *testing.T) {
		got := SlotGrid(entry("09:00", "17:00", 30))
		if len(got) != 16 {
			t.Fatalf("len = %d, want 16", len(got))
		}
		if got[0] != mustTime(t, "09:00") {
			t.Fatalf("first slot = %s, want 09:00", got[0])
		}
		if got[len(got)-1] != mustTime(t, "16:30") {
			t.Fatalf("last slot = %s, want 16:30", got[len(got)-1])
		}
		for i := 1; i < len(got); i++ {
			if got[i]-got[i-1] != 30 {
				t.Fatalf("gap between %s and %s != 30m", got[i-1], got[i])
			}
		}
	})

	t.Run("trailing partial slot dropped", func(t *testing.T) {
		got := SlotGrid(entry("09:00", "10:45", 30))
		// Start 10:30 is still < 10:45, so it is emitted even though the
		// slot would overrun; 10:45 itself is not a slot start.
		want := []TimeOfDay{mustTime(t, "09:00"), mustTime(t, "09:30"), mustTime(t, "10:00"), mustTime(t, "10:30")}
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("slot[%d] = %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("start at end boundary excluded", func(t *testing.T) {
		got := SlotGrid(entry("09:00", "10:00", 30))
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2 (%v)", len(got), got)
		}
	})

	t.Run("inverted window is empty", func(t *testing.T) {
		if got := SlotGrid(entry("17:00", "09:00", 30)); len(got) != 0 {
			t.Fatalf("len = %d, want 0", len(got))
		}
	})

	t.Run("zero duration is empty", func(t *testing.T) {
		if got := SlotGrid(entry("09:00", "17:00", 0)); len(got) != 0 {
			t.Fatalf("len = %d, want 0", len(got))
		}
	})
}

func TestAppointmentStatusStateMachine(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusScheduled, StatusNoShow, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusNoShow, StatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestAppointmentStatusTerminal(t *testing.T) {
	for _, s := range NonTerminalStatuses {
		if s.IsTerminal() {
			t.Fatalf("%s reported terminal", s)
		}
	}
	for _, s := range []AppointmentStatus{StatusCancelled, StatusCompleted, StatusNoShow} {
		if !s.IsTerminal() {
			t.Fatalf("%s reported non-terminal", s)
		}
	}
}
