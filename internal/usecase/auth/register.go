package auth

import (
	"context"
	"strings"

	authpkg "github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

type Register struct {
	repo        account.Repository
	audit       *audit.Dispatcher
	checkDomain EmailChecker
}

func NewRegister(repo account.Repository, audit *audit.Dispatcher, checkDomain EmailChecker) *Register {
	return &Register{repo: repo, audit: audit, checkDomain: checkDomain}
}

// Execute creates a customer account. An email whose owner deleted their
// account is reclaimed: the old row is re-enabled with the new password
// and profile. Accounts blocked by an admin are not reclaimable.
func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.Account, bool, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)

	if email == "" || in.Password == "" || name == "" || phone == "" {
		return nil, false, httperr.ErrBusiness(httperr.CodeMissingFields)
	}
	if err := checkEmailDomain(email, uc.checkDomain); err != nil {
		return nil, false, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, false, err
	}

	hash, err := authpkg.HashPassword(in.Password)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Enabled || existing.DeletedAt == nil {
			return nil, false, httperr.ErrBusiness(httperr.CodeEmailTaken)
		}
		return uc.reactivate(ctx, existing, hash, name, phone)

	case !httperr.IsBusiness(err, httperr.CodeAccountNotFound):
		return nil, false, err
	}

	acc := &models.Account{
		Email:              email,
		PasswordHash:       hash,
		Role:               models.RoleCustomer,
		Enabled:            true,
		MustChangePassword: false,
		Profile: &models.Profile{
			Name:  name,
			Phone: phone,
		},
	}

	if err := uc.repo.Create(ctx, acc); err != nil {
		return nil, false, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &acc.ID,
		Action:   "account_registered",
		Entity:   "account",
		EntityID: &acc.ID,
	})
	return acc, false, nil
}

func (uc *Register) reactivate(ctx context.Context, acc *models.Account, hash, name, phone string) (*models.Account, bool, error) {
	acc.PasswordHash = hash
	acc.Enabled = true
	acc.DeletedAt = nil
	acc.MustChangePassword = false
	acc.Role = models.RoleCustomer

	if acc.Profile == nil {
		acc.Profile = &models.Profile{AccountID: acc.ID}
	}
	acc.Profile.Name = name
	acc.Profile.Phone = phone

	if err := uc.repo.Save(ctx, acc); err != nil {
		return nil, false, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &acc.ID,
		Action:   "account_reactivated",
		Entity:   "account",
		EntityID: &acc.ID,
	})
	return acc, true, nil
}
