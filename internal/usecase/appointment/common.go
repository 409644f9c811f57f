package appointment

import (
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Clock returns the current time in the business timezone.
type Clock func() time.Time

// Actor is the authenticated caller.
type Actor struct {
	AccountID uint
	IsAdmin   bool
}

func (a Actor) CanAccess(ap *models.Appointment) bool {
	return a.IsAdmin || domain.IsOwner(ap, a.AccountID)
}

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return timezone.Now
	}
	return c
}

func requireAccess(actor Actor, ap *models.Appointment) error {
	if !actor.CanAccess(ap) {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return nil
}

func barberKey(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}
