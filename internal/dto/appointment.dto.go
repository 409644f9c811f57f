package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// AppointmentView is the joined row every appointment endpoint returns.
type AppointmentView struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	BarberID  *uint     `json:"barberId"`
	ServiceID uint      `json:"serviceId"`
	DateTime  time.Time `json:"dateTime"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`

	Status       string `json:"status"`
	StoredStatus string `json:"storedStatus"`
	Notes        string `json:"notes"`

	ServiceName     string          `json:"serviceName"`
	ServicePrice    decimal.Decimal `json:"servicePrice"`
	ServiceDuration int             `json:"serviceDuration"`
	BarberName      string          `json:"barberName,omitempty"`

	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewAppointmentView flattens ap and its loaded associations. The status
// shown is the effective one at now.
func NewAppointmentView(ap *models.Appointment, now time.Time) AppointmentView {
	local := ap.StartsAt.In(timezone.Location())

	v := AppointmentView{
		ID:           ap.ID,
		UserID:       ap.AccountID,
		BarberID:     ap.BarberID,
		ServiceID:    ap.ServiceID,
		DateTime:     local,
		Date:         local.Format("2006-01-02"),
		Time:         domain.SlotLabel(local),
		Status:       string(domain.EffectiveStatus(domain.Status(ap.Status), ap.StartsAt, now)),
		StoredStatus: ap.Status,
		Notes:        ap.Notes,
		CreatedAt:    ap.CreatedAt,
	}

	if ap.Service != nil {
		v.ServiceName = ap.Service.Name
		v.ServicePrice = ap.Service.Price
		v.ServiceDuration = ap.Service.Minutes()
	}
	if ap.Barber != nil {
		v.BarberName = ap.Barber.Name
	}
	if ap.Account != nil {
		v.UserEmail = ap.Account.Email
		if ap.Account.Profile != nil {
			v.UserName = ap.Account.Profile.Name
		}
	}

	return v
}

func NewAppointmentViews(aps []models.Appointment, now time.Time) []AppointmentView {
	out := make([]AppointmentView, 0, len(aps))
	for i := range aps {
		out = append(out, NewAppointmentView(&aps[i], now))
	}
	return out
}

// OccupiedSlot is one taken slot in an availability answer.
type OccupiedSlot struct {
	Time          string `json:"time"`
	AppointmentID uint   `json:"appointmentId"`
	UserID        uint   `json:"userId"`
	BarberID      *uint  `json:"barberId"`
	Status        string `json:"status"`
}

type Availability struct {
	ServiceID      uint           `json:"serviceId"`
	Date           string         `json:"date"`
	BarberID       *uint          `json:"barberId"`
	AvailableSlots []string       `json:"availableSlots"`
	Occupied       []OccupiedSlot `json:"occupied"`
	TotalAvailable int            `json:"totalAvailable"`
}
