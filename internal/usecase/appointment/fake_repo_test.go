package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// fakeRepo keeps everything in memory. Its conflict check and insert are
// two separate critical sections, like a query followed by an INSERT, so
// callers racing without SlotLocker can double-book.
type fakeRepo struct {
	mu sync.Mutex

	services     map[uint]*models.Service
	barbers      map[uint]*models.Barber
	accounts     map[uint]*models.Account
	appointments map[uint]*models.Appointment
	nextID       uint

	insertDelay time.Duration
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	r := &fakeRepo{
		services:     map[uint]*models.Service{},
		barbers:      map[uint]*models.Barber{},
		accounts:     map[uint]*models.Account{},
		appointments: map[uint]*models.Appointment{},
	}

	r.services[1] = &models.Service{ID: 1, Name: "Haircut", Price: decimal.RequireFromString("30.00"), Duration: 30, DurationMin: 30, Active: true}
	r.services[2] = &models.Service{ID: 2, Name: "Beard", Price: decimal.RequireFromString("20.00"), Duration: 20, DurationMin: 20, Active: true}
	r.services[3] = &models.Service{ID: 3, Name: "Retired Service", Price: decimal.RequireFromString("10.00"), Duration: 30, DurationMin: 30, Active: false}
	r.barbers[1] = &models.Barber{ID: 1, Name: "Default Barber", Active: true}
	r.barbers[2] = &models.Barber{ID: 2, Name: "Second Barber", Active: true}
	r.barbers[3] = &models.Barber{ID: 3, Name: "Retired Barber", Active: false}
	r.accounts[10] = &models.Account{ID: 10, Email: "ana@example.com", Role: models.RoleCustomer, Enabled: true, Profile: &models.Profile{Name: "Ana"}}
	r.accounts[11] = &models.Account{ID: 11, Email: "bruno@example.com", Role: models.RoleCustomer, Enabled: true, Profile: &models.Profile{Name: "Bruno"}}
	r.accounts[1] = &models.Account{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin, Enabled: true}
	return r
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetAccount(_ context.Context, id uint) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) slotTaken(ap *models.Appointment) bool {
	if ap.BarberID == nil {
		return false
	}
	for _, other := range r.appointments {
		if other.ID == ap.ID || other.BarberID == nil {
			continue
		}
		if *other.BarberID == *ap.BarberID &&
			other.StartsAt.Equal(ap.StartsAt) &&
			other.Status != string(domain.StatusCanceled) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) SaveIfSlotFree(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	taken := r.slotTaken(ap)
	r.mu.Unlock()
	if taken {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	if r.insertDelay > 0 {
		time.Sleep(r.insertDelay)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store(ap)
	return nil
}

func (r *fakeRepo) Save(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store(ap)
	return nil
}

func (r *fakeRepo) store(ap *models.Appointment) {
	if ap.ID == 0 {
		r.nextID++
		ap.ID = r.nextID
		ap.CreatedAt = time.Now()
	}
	cp := *ap
	cp.Service, cp.Barber, cp.Account = nil, nil, nil
	r.appointments[ap.ID] = &cp
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.appointments, id)
	return nil
}

func (r *fakeRepo) joined(ap *models.Appointment) *models.Appointment {
	cp := *ap
	if s, ok := r.services[ap.ServiceID]; ok {
		sc := *s
		cp.Service = &sc
	}
	if ap.BarberID != nil {
		if b, ok := r.barbers[*ap.BarberID]; ok {
			bc := *b
			cp.Barber = &bc
		}
	}
	if a, ok := r.accounts[ap.AccountID]; ok {
		ac := *a
		cp.Account = &ac
	}
	return &cp
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return r.joined(ap), nil
}

func (r *fakeRepo) ListOccupied(_ context.Context, from, to time.Time, barberID *uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Status == string(domain.StatusCanceled) {
			continue
		}
		if ap.StartsAt.Before(from) || !ap.StartsAt.Before(to) {
			continue
		}
		if barberID != nil && (ap.BarberID == nil || *ap.BarberID != *barberID) {
			continue
		}
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.AccountID != nil && ap.AccountID != *f.AccountID {
			continue
		}
		if f.BarberID != nil && (ap.BarberID == nil || *ap.BarberID != *f.BarberID) {
			continue
		}
		if f.From != nil && ap.StartsAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !ap.StartsAt.Before(*f.To) {
			continue
		}
		out = append(out, *r.joined(ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appointments)
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

var (
	customer      = Actor{AccountID: 10}
	otherCustomer = Actor{AccountID: 11}
	admin         = Actor{AccountID: 1, IsAdmin: true}
)

// fixedNow is 2025-06-09 10:00 in the business timezone.
func fixedNow() time.Time {
	return time.Date(2025, 6, 9, 10, 0, 0, 0, timezone.Location())
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }
