package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	slotsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "slot_booking",
			Name:      "slots_created_total",
			Help:      "Count of slots published by teachers.",
		},
	)

	slotsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "slot_booking",
			Name:      "slots_deleted_total",
			Help:      "Count of slots deleted by teachers.",
		},
	)

	appointmentsBooked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "slot_booking",
			Name:      "appointments_booked_total",
			Help:      "Count of appointments booked by students.",
		},
	)

	appointmentsCancelled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slot_booking",
			Name:      "appointments_cancelled_total",
			Help:      "Count of cancelled appointments by acting role.",
		},
		[]string{"actor"},
	)

	appointmentsAttended = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "slot_booking",
			Name:      "appointments_attended_total",
			Help:      "Count of appointments marked attended.",
		},
	)

	operationRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slot_booking",
			Name:      "operations_rejected_total",
			Help:      "Count of engine operations rejected, by error kind.",
		},
		[]string{"kind"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "slot_booking",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register registers all collectors (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			slotsCreated,
			slotsDeleted,
			appointmentsBooked,
			appointmentsCancelled,
			appointmentsAttended,
			operationRejected,
			httpDuration,
		)
	})
}

func IncSlotCreated() {
	slotsCreated.Inc()
}

func IncSlotDeleted() {
	slotsDeleted.Inc()
}

func IncAppointmentBooked() {
	appointmentsBooked.Inc()
}

func IncAppointmentCancelled(actor string) {
	appointmentsCancelled.WithLabelValues(actor).Inc()
}

func IncAppointmentAttended() {
	appointmentsAttended.Inc()
}

func IncOperationRejected(kind string) {
	operationRejected.WithLabelValues(kind).Inc()
}

func ObserveHTTPRequest(method, route, status string, seconds float64) {
	httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}
