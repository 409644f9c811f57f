package handlers

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for RequireAuth: X-Test-User carries the id and
// X-Test-Role the role.
func asUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.GetHeader("X-Test-User"), 10, 64)
		role := c.GetHeader("X-Test-Role")
		if role == "" {
			role = models.RoleCustomer
		}
		c.Set(middleware.ContextUserID, uint(id))
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

// ======================================================
// APPOINTMENTS
// ======================================================

type memAppointments struct {
	mu       sync.Mutex
	services map[uint]*models.Service
	barbers  map[uint]*models.Barber
	accounts map[uint]*models.Account
	rows     map[uint]*models.Appointment
	nextID   uint
}

var _ domain.Repository = (*memAppointments)(nil)

func newMemAppointments() *memAppointments {
	return &memAppointments{
		services: map[uint]*models.Service{
			1: {ID: 1, Name: "Corte de Cabelo", Price: decimal.RequireFromString("30.00"), Duration: 30, Active: true},
		},
		barbers: map[uint]*models.Barber{
			1: {ID: 1, Name: "João", Active: true},
			2: {ID: 2, Name: "Pedro", Active: true},
		},
		accounts: map[uint]*models.Account{
			1:  {ID: 1, Email: "admin@example.com", Role: models.RoleAdmin, Enabled: true},
			10: {ID: 10, Email: "ana@example.com", Role: models.RoleCustomer, Enabled: true, Profile: &models.Profile{Name: "Ana"}},
			11: {ID: 11, Email: "bia@example.com", Role: models.RoleCustomer, Enabled: true},
		},
		rows:   map[uint]*models.Appointment{},
		nextID: 1,
	}
}

func (m *memAppointments) GetService(_ context.Context, id uint) (*models.Service, error) {
	if s, ok := m.services[id]; ok {
		return s, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
}

func (m *memAppointments) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	if b, ok := m.barbers[id]; ok {
		return b, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
}

func (m *memAppointments) GetAccount(_ context.Context, id uint) (*models.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
}

func (m *memAppointments) SaveIfSlotFree(ctx context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	for _, other := range m.rows {
		if other.ID == ap.ID || other.Status == string(domain.StatusCanceled) {
			continue
		}
		if ap.BarberID != nil && other.BarberID != nil &&
			*ap.BarberID == *other.BarberID && other.StartsAt.Equal(ap.StartsAt) {
			m.mu.Unlock()
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
	}
	m.mu.Unlock()
	return m.Save(ctx, ap)
}

func (m *memAppointments) Save(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ap.ID == 0 {
		ap.ID = m.nextID
		m.nextID++
		ap.CreatedAt = time.Now()
	}
	cp := *ap
	cp.Service, cp.Barber, cp.Account = nil, nil, nil
	m.rows[ap.ID] = &cp
	return nil
}

func (m *memAppointments) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *memAppointments) joined(ap *models.Appointment) *models.Appointment {
	cp := *ap
	cp.Service = m.services[ap.ServiceID]
	if ap.BarberID != nil {
		cp.Barber = m.barbers[*ap.BarberID]
	}
	cp.Account = m.accounts[ap.AccountID]
	return &cp
}

func (m *memAppointments) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ap, ok := m.rows[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return m.joined(ap), nil
}

func (m *memAppointments) ListOccupied(_ context.Context, from, to time.Time, barberID *uint) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.rows {
		if ap.Status == string(domain.StatusCanceled) || ap.StartsAt.Before(from) || !ap.StartsAt.Before(to) {
			continue
		}
		if barberID != nil && (ap.BarberID == nil || *ap.BarberID != *barberID) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (m *memAppointments) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.rows {
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
		out = append(out, *m.joined(ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

// ======================================================
// ACCOUNTS
// ======================================================

type memAccounts struct {
	mu       sync.Mutex
	accounts map[uint]*models.Account
	refresh  map[string]*models.RefreshToken
	resets   map[string]*models.PasswordReset
	nextID   uint

	// purgeErr fails DeleteRefreshTokensFor when set
	purgeErr error
}

var _ account.Repository = (*memAccounts)(nil)

func newMemAccounts() *memAccounts {
	return &memAccounts{
		accounts: map[uint]*models.Account{},
		refresh:  map[string]*models.RefreshToken{},
		resets:   map[string]*models.PasswordReset{},
		nextID:   1,
	}
}

func cloneAccount(a *models.Account) *models.Account {
	cp := *a
	if a.Profile != nil {
		p := *a.Profile
		cp.Profile = &p
	}
	return &cp
}

func (m *memAccounts) GetByID(_ context.Context, id uint) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
}

func (m *memAccounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
}

func (m *memAccounts) Create(_ context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.accounts {
		if other.Email == a.Email {
			return httperr.ErrBusiness(httperr.CodeEmailTaken)
		}
	}
	a.ID = m.nextID
	m.nextID++
	if a.Profile != nil {
		a.Profile.AccountID = a.ID
	}
	m.accounts[a.ID] = cloneAccount(a)
	return nil
}

func (m *memAccounts) Save(_ context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID] = cloneAccount(a)
	return nil
}

func (m *memAccounts) List(_ context.Context, excludeIDs ...uint) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	skip := map[uint]bool{}
	for _, id := range excludeIDs {
		skip[id] = true
	}
	var out []models.Account
	for id, a := range m.accounts {
		if !skip[id] {
			out = append(out, *cloneAccount(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memAccounts) CreateRefreshToken(_ context.Context, t *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.refresh[t.Token] = &cp
	return nil
}

func (m *memAccounts) FindRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.refresh[token]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeInvalidRefreshToken)
}

func (m *memAccounts) DeleteRefreshToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refresh, token)
	return nil
}

func (m *memAccounts) DeleteRefreshTokensFor(_ context.Context, accountID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.purgeErr != nil {
		return m.purgeErr
	}
	for k, t := range m.refresh {
		if t.AccountID == accountID {
			delete(m.refresh, k)
		}
	}
	return nil
}

func (m *memAccounts) CreatePasswordReset(_ context.Context, r *models.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.resets[r.Token] = &cp
	return nil
}

func (m *memAccounts) FindPasswordReset(_ context.Context, token string) (*models.PasswordReset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.resets[token]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeResetTokenInvalid)
}

func (m *memAccounts) ConsumePasswordReset(_ context.Context, r *models.PasswordReset, a *models.Account, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.resets[r.Token]
	if !ok || stored.UsedAt != nil {
		return httperr.ErrBusiness(httperr.CodeResetTokenInvalid)
	}
	stored.UsedAt = &at
	m.accounts[a.ID] = cloneAccount(a)
	return nil
}
