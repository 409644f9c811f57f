package auth

import (
	"context"
	"sync"
	"time"

	authpkg "github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type fakeAccounts struct {
	mu       sync.Mutex
	accounts map[uint]*models.Account
	refresh  map[string]*models.RefreshToken
	resets   map[string]*models.PasswordReset
	nextID   uint
}

var _ account.Repository = (*fakeAccounts)(nil)

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		accounts: map[uint]*models.Account{},
		refresh:  map[string]*models.RefreshToken{},
		resets:   map[string]*models.PasswordReset{},
		nextID:   100,
	}
}

func (f *fakeAccounts) seed(email, password string, enabled bool) *models.Account {
	hash, err := authpkg.HashPassword(password)
	if err != nil {
		panic(err)
	}
	acc := &models.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		Enabled:      enabled,
		Profile:      &models.Profile{Name: "Seed"},
	}
	if err := f.Create(context.Background(), acc); err != nil {
		panic(err)
	}
	return acc
}

func (f *fakeAccounts) clone(a *models.Account) *models.Account {
	cp := *a
	if a.Profile != nil {
		p := *a.Profile
		cp.Profile = &p
	}
	return &cp
}

func (f *fakeAccounts) GetByID(_ context.Context, id uint) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
	}
	return f.clone(a), nil
}

func (f *fakeAccounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			return f.clone(a), nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
}

func (f *fakeAccounts) Create(_ context.Context, a *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.accounts {
		if other.Email == a.Email {
			return httperr.ErrBusiness(httperr.CodeEmailTaken)
		}
	}
	f.nextID++
	a.ID = f.nextID
	if a.Profile != nil {
		a.Profile.AccountID = a.ID
	}
	f.accounts[a.ID] = f.clone(a)
	return nil
}

func (f *fakeAccounts) Save(_ context.Context, a *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[a.ID] = f.clone(a)
	return nil
}

func (f *fakeAccounts) List(_ context.Context, excludeIDs ...uint) ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	skip := map[uint]bool{}
	for _, id := range excludeIDs {
		skip[id] = true
	}
	var out []models.Account
	for id, a := range f.accounts {
		if !skip[id] {
			out = append(out, *f.clone(a))
		}
	}
	return out, nil
}

func (f *fakeAccounts) CreateRefreshToken(_ context.Context, t *models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.refresh[t.Token] = &cp
	return nil
}

func (f *fakeAccounts) FindRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.refresh[token]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRefreshToken)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeAccounts) DeleteRefreshToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.refresh, token)
	return nil
}

func (f *fakeAccounts) DeleteRefreshTokensFor(_ context.Context, accountID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, t := range f.refresh {
		if t.AccountID == accountID {
			delete(f.refresh, k)
		}
	}
	return nil
}

func (f *fakeAccounts) CreatePasswordReset(_ context.Context, r *models.PasswordReset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.resets[r.Token] = &cp
	return nil
}

func (f *fakeAccounts) FindPasswordReset(_ context.Context, token string) (*models.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resets[token]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeResetTokenInvalid)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeAccounts) ConsumePasswordReset(_ context.Context, r *models.PasswordReset, a *models.Account, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.resets[r.Token]
	if !ok || stored.UsedAt != nil {
		return httperr.ErrBusiness(httperr.CodeResetTokenInvalid)
	}
	stored.UsedAt = &at
	f.accounts[a.ID] = f.clone(a)
	return nil
}

func (f *fakeAccounts) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.refresh)
}

func (f *fakeAccounts) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.resets)
}
