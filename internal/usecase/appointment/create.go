package appointment

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor Actor

	// OwnerID books on behalf of another account (admin only).
	// Nil means the caller.
	OwnerID *uint

	BarberID  *uint
	ServiceID uint
	Date      string
	Time      string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	locker *domain.SlotLocker
	audit  *audit.Dispatcher
	log    *zap.Logger
	now    Clock
}

func NewCreateAppointment(
	repo domain.Repository,
	locker *domain.SlotLocker,
	audit *audit.Dispatcher,
	log *zap.Logger,
	now Clock,
) *CreateAppointment {
	if locker == nil {
		locker = domain.NewSlotLocker()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CreateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		log:    log,
		now:    clockOrDefault(now),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*dto.AppointmentView, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	if in.ServiceID == 0 || in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingFields)
	}

	// --------------------------------------------------
	// 2. Date / time in the business timezone
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateTime)
	}

	if start.Before(uc.now()) {
		return nil, httperr.ErrBusiness(httperr.CodePastDateTime)
	}
	if !domain.DefaultBusinessHours.Contains(domain.SlotLabel(start)) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateTime)
	}

	// --------------------------------------------------
	// 3. Owner
	// --------------------------------------------------
	ownerID := in.Actor.AccountID
	if in.OwnerID != nil && *in.OwnerID != 0 && *in.OwnerID != ownerID {
		if !in.Actor.IsAdmin {
			return nil, httperr.ErrBusiness(httperr.CodeForbidden)
		}
		if _, err := uc.repo.GetAccount(ctx, *in.OwnerID); err != nil {
			return nil, err
		}
		ownerID = *in.OwnerID
	}

	// --------------------------------------------------
	// 4. Catalog
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	if in.BarberID != nil {
		barber, err := uc.repo.GetBarber(ctx, *in.BarberID)
		if err != nil {
			return nil, err
		}
		if !barber.Active {
			return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
	}

	// --------------------------------------------------
	// 5. Conflict-checked insert, one writer per barber
	// --------------------------------------------------
	ap := &models.Appointment{
		AccountID: ownerID,
		BarberID:  in.BarberID,
		ServiceID: in.ServiceID,
		StartsAt:  start,
		Status:    string(domain.InitialStatus()),
		Notes:     strings.TrimSpace(in.Notes),
	}

	unlock := uc.locker.Lock(barberKey(in.BarberID))
	err = uc.repo.SaveIfSlotFree(ctx, ap)
	unlock()

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			metrics.AppointmentConflicts.Inc()
			uc.audit.Dispatch(audit.Event{
				ActorID: &in.Actor.AccountID,
				Action:  "appointment_conflict",
				Entity:  "appointment",
				Metadata: map[string]any{
					"barberId": in.BarberID,
					"start":    start,
				},
			})
		}
		return nil, err
	}

	metrics.AppointmentsCreated.Inc()
	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Actor.AccountID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// --------------------------------------------------
	// 6. Joined view
	// --------------------------------------------------
	created, err := uc.repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		uc.log.Warn("reload after create failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
		created = ap
	}

	view := dto.NewAppointmentView(created, uc.now())
	return &view, nil
}
