package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/campushub/slot-booking/internal/booking"
	"github.com/campushub/slot-booking/internal/store"
)

type RouterConfig struct {
	Engine  *booking.Engine
	Store   store.Store
	Logger  zerolog.Logger
	Env     string
	Version string
	Now     func() time.Time // nil means time.Now
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.Store, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h := NewHandler(cfg.Engine, cfg.Now)

	r.Route("/slots", func(r chi.Router) {
		r.Post("/", h.CreateSlot)
		r.Get("/", h.ListSlots)
		r.Patch("/{id}", h.UpdateSlot)
		r.Delete("/{id}", h.DeleteSlot)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Post("/", h.BookAppointment)
		r.Post("/{id}/cancel", h.CancelAppointment)
		r.Post("/{id}/attend", h.MarkAttended)
	})

	r.Get("/users/{id}/appointments", h.ListUserAppointments)

	return r
}
