package store

import "errors"

var (
	// ErrNotFound is returned when a row does not exist, or when a guarded
	// update matched no row.
	ErrNotFound = errors.New("not found")

	// ErrSlotTaken is returned when the slot-uniqueness constraint on
	// (doctor_id, appointment_date, appointment_time) rejects a write.
	ErrSlotTaken = errors.New("slot already taken")

	// ErrDuplicate is returned when a uniqueness constraint other than the
	// slot index rejects a write (patient phone/email).
	ErrDuplicate = errors.New("duplicate record")
)
