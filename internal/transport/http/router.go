package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

type RouterConfig struct {
	Service        schedulingService
	DB             *bun.DB
	Logger         *slog.Logger
	Version        string
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	if cfg.RequestTimeout > 0 {
		r.Use(TimeoutMiddleware(cfg.RequestTimeout))
	}

	health := NewHealthHandler(cfg.DB, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	s := NewServer(cfg.Service, logger)
	r.Get("/doctors", s.listDoctors)
	r.Get("/doctors/{id}/schedule", s.getDoctorSchedule)
	r.Get("/doctors/{id}/availability", s.getAvailability)
	r.Post("/patients", s.registerPatient)
	r.Get("/patients/{id}/appointments", s.listPatientAppointments)
	r.Post("/appointments", s.bookAppointment)
	r.Post("/appointments/{id}/cancel", s.cancelAppointment)
	r.Post("/appointments/{id}/reschedule", s.rescheduleAppointment)

	return r
}
