package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Weekday names match the day_of_week column values. Ordering helpers are
// Monday-first because schedules and availability messages list days that way.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekOrder = [...]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func WeekdayOf(date time.Time) Weekday {
	switch date.Weekday() {
	case time.Sunday:
		return Sunday
	default:
		return weekOrder[int(date.Weekday())-1]
	}
}

// Index reports the Monday-first position of w, or 7 for unknown values so
// they sort last instead of panicking.
func (w Weekday) Index() int {
	for i, d := range weekOrder {
		if d == w {
			return i
		}
	}
	return len(weekOrder)
}

type Doctor struct {
	bun.BaseModel `bun:"table:doctors,alias:d"`

	ID                uuid.UUID `bun:"id,pk,type:uuid"`
	FirstName         string    `bun:"first_name,notnull"`
	LastName          string    `bun:"last_name,notnull"`
	Specialization    string    `bun:"specialization,notnull"`
	Email             string    `bun:"email,notnull"`
	Phone             string    `bun:"phone,notnull"`
	YearsOfExperience int       `bun:"years_of_experience,notnull"`
	ConsultationFee   float64   `bun:"consultation_fee,notnull"`
	Rating            float64   `bun:"rating,notnull"`
	Available         bool      `bun:"available,notnull"`
	CreatedAt         time.Time `bun:"created_at,notnull"`
	UpdatedAt         time.Time `bun:"updated_at,notnull"`
}

func (d *Doctor) Name() string {
	return d.FirstName + " " + d.LastName
}

func (d *Doctor) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if d.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			d.ID = id
		}
		if d.CreatedAt.IsZero() {
			d.CreatedAt = now
		}
		if d.UpdatedAt.IsZero() {
			d.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		d.UpdatedAt = now
	}
	return nil
}

// WeeklyScheduleEntry is one weekday's recurring working-hours template for a
// doctor. start_time must be before end_time; a trailing span shorter than the
// slot duration simply produces no slot.
type WeeklyScheduleEntry struct {
	bun.BaseModel `bun:"table:doctor_schedules,alias:ds"`

	ID                  uuid.UUID `bun:"id,pk,type:uuid"`
	DoctorID            uuid.UUID `bun:"doctor_id,notnull,type:uuid"`
	DayOfWeek           Weekday   `bun:"day_of_week,notnull"`
	StartTime           TimeOfDay `bun:"start_time,notnull"`
	EndTime             TimeOfDay `bun:"end_time,notnull"`
	SlotDurationMinutes int       `bun:"slot_duration_minutes,notnull"`
	Active              bool      `bun:"active,notnull"`
	CreatedAt           time.Time `bun:"created_at,notnull"`
	UpdatedAt           time.Time `bun:"updated_at,notnull"`
}

func (e *WeeklyScheduleEntry) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if e.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			e.ID = id
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		e.UpdatedAt = now
	}
	return nil
}
