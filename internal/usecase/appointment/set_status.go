package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

type SetStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewSetStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now Clock,
) *SetStatus {
	return &SetStatus{
		repo:  repo,
		audit: audit,
		now:   clockOrDefault(now),
	}
}

func (uc *SetStatus) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
	rawStatus string,
) (*dto.AppointmentView, error) {

	target, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := requireAccess(actor, ap); err != nil {
		return nil, err
	}

	now := uc.now()
	from := ap.Status

	changed, err := domain.Transition(ap, target, now)
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
			Action:   "appointment_status_changed",
			Entity:   "appointment",
			EntityID: &ap.ID,
			Metadata: map[string]string{
				"from": from,
				"to":   ap.Status,
			},
		})
	}

	view := dto.NewAppointmentView(ap, now)
	return &view, nil
}
