// Seeds a database with fake doctors, weekly schedules and patients for
// local development.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/uptrace/bun"

	"medibook/backend/internal/config"
	"medibook/backend/internal/domain"
	"medibook/backend/internal/store/postgres"
)

var specializations = []string{
	"Cardiology",
	"Dermatology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("service", "medibook-seed"))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL, postgres.PoolConfig{MaxOpenConns: 4})
	if err != nil {
		log.Error("database connection failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		_ = postgres.Close(db)
	}()

	gofakeit.Seed(time.Now().UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	doctors, err := seedDoctors(ctx, db, 25)
	if err != nil {
		log.Error("seeding doctors failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("doctors seeded", slog.Int("count", len(doctors)))

	if err := seedSchedules(ctx, db, doctors); err != nil {
		log.Error("seeding schedules failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("schedules seeded")

	patients, err := seedPatients(ctx, db, 200)
	if err != nil {
		log.Error("seeding patients failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("patients seeded", slog.Int("count", patients))

	log.Info("seed complete")
}

func seedDoctors(ctx context.Context, db *bun.DB, count int) ([]domain.Doctor, error) {
	doctors := make([]domain.Doctor, 0, count)
	for i := 0; i < count; i++ {
		doctors = append(doctors, domain.Doctor{
			FirstName:         gofakeit.FirstName(),
			LastName:          gofakeit.LastName(),
			Specialization:    specializations[gofakeit.Number(0, len(specializations)-1)],
			Email:             gofakeit.Email(),
			Phone:             gofakeit.Phone(),
			YearsOfExperience: gofakeit.Number(1, 35),
			ConsultationFee:   float64(gofakeit.Number(40, 300)),
			Rating:            float64(gofakeit.Number(25, 50)) / 10,
			Available:         true,
		})
	}
	if _, err := db.NewInsert().Model(&doctors).Exec(ctx); err != nil {
		return nil, err
	}
	return doctors, nil
}

func seedSchedules(ctx context.Context, db *bun.DB, doctors []domain.Doctor) error {
	weekdays := []domain.Weekday{
		domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday,
	}

	var entries []domain.WeeklyScheduleEntry
	for _, doctor := range doctors {
		// Each doctor works 3-5 weekdays with a fixed daily window.
		days := gofakeit.Number(3, 5)
		startHour := gofakeit.Number(8, 10)
		endHour := gofakeit.Number(15, 18)
		duration := []int{15, 20, 30}[gofakeit.Number(0, 2)]

		for _, day := range weekdays[:days] {
			entries = append(entries, domain.WeeklyScheduleEntry{
				DoctorID:            doctor.ID,
				DayOfWeek:           day,
				StartTime:           domain.TimeOfDay(startHour * 60),
				EndTime:             domain.TimeOfDay(endHour * 60),
				SlotDurationMinutes: duration,
				Active:              true,
			})
		}
	}
	_, err := db.NewInsert().Model(&entries).Exec(ctx)
	return err
}

func seedPatients(ctx context.Context, db *bun.DB, count int) (int, error) {
	patients := make([]domain.Patient, 0, count)
	for i := 0; i < count; i++ {
		patients = append(patients, domain.Patient{
			FirstName:   gofakeit.FirstName(),
			LastName:    gofakeit.LastName(),
			Email:       fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Phone:       fmt.Sprintf("+234%010d", gofakeit.Number(8000000000, 8199999999)),
			DateOfBirth: gofakeit.DateRange(time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2007, 12, 31, 0, 0, 0, 0, time.UTC)),
			Gender:      []string{"Male", "Female"}[gofakeit.Number(0, 1)],
			BloodGroup:  []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}[gofakeit.Number(0, 7)],
			Address:     gofakeit.Address().Address,
		})
	}
	if _, err := db.NewInsert().Model(&patients).Exec(ctx); err != nil {
		return 0, err
	}
	return len(patients), nil
}
