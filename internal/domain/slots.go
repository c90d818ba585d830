package domain

// AvailabilityResult is the single shape availability is always reported in.
// An empty Slots list is meaningful on its own only together with Message,
// which distinguishes "not working that day" from "fully booked".
type AvailabilityResult struct {
	Slots   []TimeOfDay
	Message string
}

// SlotGrid generates the full candidate grid for one weekly schedule entry:
// slot starts from StartTime stepping by the slot duration, keeping every
// start strictly before EndTime. A trailing span shorter than the duration is
// dropped by the same check; the slot's own end is never re-validated.
func SlotGrid(e WeeklyScheduleEntry) []TimeOfDay {
	if e.SlotDurationMinutes <= 0 {
		return nil
	}
	if e.StartTime >= e.EndTime {
		return nil
	}

	step := TimeOfDay(e.SlotDurationMinutes)
	out := make([]TimeOfDay, 0, int((e.EndTime-e.StartTime)/step)+1)
	for t := e.StartTime; t < e.EndTime; t += step {
		out = append(out, t)
	}
	return out
}
