package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListInput struct {
	Actor Actor

	// UserID restricts the listing to one owner. Nil lists what the
	// actor may see: everything for admins, their own rows otherwise.
	UserID *uint

	BarberID *uint
	Date     string
}

type ListAppointments struct {
	repo domain.Repository
	now  Clock
}

func NewListAppointments(repo domain.Repository, now Clock) *ListAppointments {
	return &ListAppointments{repo: repo, now: clockOrDefault(now)}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListInput,
) ([]dto.AppointmentView, error) {

	var f domain.ListFilter

	switch {
	case in.UserID != nil:
		if *in.UserID != in.Actor.AccountID && !in.Actor.IsAdmin {
			return nil, httperr.ErrBusiness(httperr.CodeForbidden)
		}
		f.AccountID = in.UserID
	case !in.Actor.IsAdmin:
		id := in.Actor.AccountID
		f.AccountID = &id
	}

	f.BarberID = in.BarberID

	if in.Date != "" {
		day, err := timezone.ParseDate(in.Date)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		from, to := dayBounds(day)
		f.From, f.To = &from, &to
	}

	rows, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentViews(rows, uc.now()), nil
}
