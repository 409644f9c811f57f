package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AvailabilityInput struct {
	ServiceID uint
	Date      string
	BarberID  *uint
}

type GetAvailability struct {
	repo  domain.Repository
	hours domain.BusinessHours
	now   Clock
}

func NewGetAvailability(repo domain.Repository, now Clock) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		hours: domain.DefaultBusinessHours,
		now:   clockOrDefault(now),
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*dto.Availability, error) {

	if in.ServiceID == 0 || len(in.Date) != len("2006-01-02") {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	day, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	if _, err := uc.repo.GetService(ctx, in.ServiceID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Occupied rows of the day (canceled rows never count)
	// --------------------------------------------------
	from, to := dayBounds(day)
	rows, err := uc.repo.ListOccupied(ctx, from, to, in.BarberID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	occupied := make([]dto.OccupiedSlot, 0, len(rows))
	labels := make([]string, 0, len(rows))
	for _, ap := range rows {
		label := domain.SlotLabel(ap.StartsAt.In(timezone.Location()))
		labels = append(labels, label)
		occupied = append(occupied, dto.OccupiedSlot{
			Time:          label,
			AppointmentID: ap.ID,
			UserID:        ap.AccountID,
			BarberID:      ap.BarberID,
			Status:        string(domain.EffectiveStatus(domain.Status(ap.Status), ap.StartsAt, now)),
		})
	}

	free := domain.FreeSlots(uc.hours.Slots(), labels)

	return &dto.Availability{
		ServiceID:      in.ServiceID,
		Date:           in.Date,
		BarberID:       in.BarberID,
		AvailableSlots: free,
		Occupied:       occupied,
		TotalAvailable: len(free),
	}, nil
}

// dayBounds returns [00:00, next 00:00) of day in its location.
func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}
