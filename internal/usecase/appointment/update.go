package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// UpdateAppointmentInput is a partial update: nil fields keep their value.
type UpdateAppointmentInput struct {
	Actor         Actor
	AppointmentID uint

	BarberID  *uint
	ServiceID *uint
	Date      *string
	Time      *string
	Status    *string
	Notes     *string
}

func (in UpdateAppointmentInput) empty() bool {
	return in.BarberID == nil && in.ServiceID == nil && in.Date == nil &&
		in.Time == nil && in.Status == nil && in.Notes == nil
}

type UpdateAppointment struct {
	repo   domain.Repository
	locker *domain.SlotLocker
	audit  *audit.Dispatcher
	now    Clock
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker *domain.SlotLocker,
	audit *audit.Dispatcher,
	now Clock,
) *UpdateAppointment {
	if locker == nil {
		locker = domain.NewSlotLocker()
	}
	return &UpdateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		now:    clockOrDefault(now),
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*dto.AppointmentView, error) {

	if in.empty() {
		return nil, httperr.ErrBusiness(httperr.CodeNoFields)
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := requireAccess(in.Actor, ap); err != nil {
		return nil, err
	}

	now := uc.now()
	slotChanged := false

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
		svc, err := uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		if !svc.Active {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		ap.ServiceID = svc.ID
		ap.Service = svc
	}

	// --------------------------------------------------
	// Barber
	// --------------------------------------------------
	if in.BarberID != nil && barberKey(ap.BarberID) != *in.BarberID {
		barber, err := uc.repo.GetBarber(ctx, *in.BarberID)
		if err != nil {
			return nil, err
		}
		if !barber.Active {
			return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
		id := barber.ID
		ap.BarberID = &id
		ap.Barber = barber
		slotChanged = true
	}

	// --------------------------------------------------
	// Date / time (either half may be omitted)
	// --------------------------------------------------
	if in.Date != nil || in.Time != nil {
		local := ap.StartsAt.In(timezone.Location())
		date := local.Format("2006-01-02")
		clock := domain.SlotLabel(local)
		if in.Date != nil {
			date = strings.TrimSpace(*in.Date)
		}
		if in.Time != nil {
			clock = strings.TrimSpace(*in.Time)
		}

		start, err := timezone.ParseDateTime(date, clock)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidDateTime)
		}
		if !start.Equal(ap.StartsAt) {
			if start.Before(now) {
				return nil, httperr.ErrBusiness(httperr.CodePastDateTime)
			}
			if !domain.DefaultBusinessHours.Contains(domain.SlotLabel(start)) {
				return nil, httperr.ErrBusiness(httperr.CodeInvalidDateTime)
			}
			ap.StartsAt = start
			slotChanged = true
		}
	}

	// --------------------------------------------------
	// Status
	// --------------------------------------------------
	if in.Status != nil {
		target, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if _, err := domain.Transition(ap, target, now); err != nil {
			return nil, err
		}
	}

	if in.Notes != nil {
		ap.Notes = strings.TrimSpace(*in.Notes)
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	if slotChanged && domain.Status(ap.Status) != domain.StatusCanceled {
		unlock := uc.locker.Lock(barberKey(ap.BarberID))
		err = uc.repo.SaveIfSlotFree(ctx, ap)
		unlock()
	} else {
		err = uc.repo.Save(ctx, ap)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Actor.AccountID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	view := dto.NewAppointmentView(ap, now)
	return &view, nil
}
