package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// DeleteAppointment removes the row for its owner or an admin, whatever
// its status.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(repo domain.Repository, audit *audit.Dispatcher) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: audit}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, actor Actor, appointmentID uint) error {
	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if err := requireAccess(actor, ap); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, ap.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.AccountID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"ownerId": ap.AccountID,
			"status":  ap.Status,
		},
	})
	return nil
}
