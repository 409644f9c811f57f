package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now Clock,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   clockOrDefault(now),
	}
}

// Execute cancels the appointment. Canceling an already canceled
// appointment succeeds without touching the row.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
) (*dto.AppointmentView, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := requireAccess(actor, ap); err != nil {
		return nil, err
	}

	now := uc.now()
	changed, err := domain.Cancel(ap, now)
	if err != nil {
		return nil, err
	}

	if changed {
		if err := uc.repo.Save(ctx, ap); err != nil {
			return nil, err
		}

		metrics.AppointmentTransitions.WithLabelValues(ap.Status).Inc()
		uc.audit.Dispatch(audit.Event{
			ActorID:  &actor.AccountID,
			Action:   "appointment_canceled",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
	}

	view := dto.NewAppointmentView(ap, now)
	return &view, nil
}
