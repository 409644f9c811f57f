package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to the target status. It reports whether the row
// changed and needs saving.
func Transition(ap *models.Appointment, to Status, now time.Time) (bool, error) {
	from := EffectiveStatus(Status(ap.Status), ap.StartsAt, now)
	if err := CanTransition(from, to); err != nil {
		return false, err
	}

	if Status(ap.Status) == to {
		return false, nil
	}

	ap.Status = string(to)
	switch to {
	case StatusCanceled:
		ap.CanceledAt = &now
	case StatusFinalized:
		ap.FinalizedAt = &now
	}
	return true, nil
}

func Cancel(ap *models.Appointment, now time.Time) (bool, error) {
	return Transition(ap, StatusCanceled, now)
}

// IsOwner reports whether accountID booked ap.
func IsOwner(ap *models.Appointment, accountID uint) bool {
	return ap.AccountID == accountID
}
