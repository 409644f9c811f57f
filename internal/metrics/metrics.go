package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barber_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Booking
	AppointmentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barber_appointments_created_total",
			Help: "Appointments successfully booked",
		},
	)

	AppointmentConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barber_appointment_conflicts_total",
			Help: "Booking attempts rejected because the slot was taken",
		},
	)

	AppointmentTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_appointment_status_changes_total",
			Help: "Appointment status changes by target status",
		},
		[]string{"status"},
	)

	// Auth
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barber_rate_limited_total",
			Help: "Requests rejected by the login rate limiter",
		},
	)
)
