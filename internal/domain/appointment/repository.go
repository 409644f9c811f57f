package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ListFilter narrows appointment listings. Nil fields do not filter.
type ListFilter struct {
	AccountID *uint
	BarberID  *uint
	From      *time.Time
	To        *time.Time
}

type Repository interface {
	// -------- Catalog lookups --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	GetAccount(ctx context.Context, id uint) (*models.Account, error)

	// -------- Appointment (write) --------

	// SaveIfSlotFree creates (ID == 0) or updates ap unless another
	// non-canceled appointment holds the same barber and start time.
	// Fails with slot_conflict.
	SaveIfSlotFree(ctx context.Context, ap *models.Appointment) error

	Save(ctx context.Context, ap *models.Appointment) error
	Delete(ctx context.Context, id uint) error

	// -------- Appointment (read) --------

	// GetAppointment returns the row with Service, Barber and
	// Account.Profile loaded. Fails with appointment_not_found.
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	// ListOccupied returns non-canceled appointments starting in
	// [from, to), optionally for a single barber.
	ListOccupied(ctx context.Context, from, to time.Time, barberID *uint) ([]models.Appointment, error)

	// ListAppointments returns rows ordered by start time, newest first,
	// with the same associations as GetAppointment.
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)
}
