package auth

import (
	"context"

	authpkg "github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const resetTokenBytes = 32

// ======================================================
// CHANGE PASSWORD
// ======================================================

type ChangePassword struct {
	repo  account.Repository
	audit *audit.Dispatcher
}

func NewChangePassword(repo account.Repository, audit *audit.Dispatcher) *ChangePassword {
	return &ChangePassword{repo: repo, audit: audit}
}

func (uc *ChangePassword) Execute(ctx context.Context, accountID uint, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return httperr.ErrBusiness(httperr.CodeMissingFields)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	acc, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !authpkg.CheckPassword(acc.PasswordHash, oldPassword) {
		return httperr.ErrBusiness(httperr.CodeWrongPassword)
	}

	hash, err := authpkg.HashPassword(newPassword)
	if err != nil {
		return err
	}
	acc.PasswordHash = hash
	acc.MustChangePassword = false

	if err := uc.repo.Save(ctx, acc); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &acc.ID,
		Action:   "password_changed",
		Entity:   "account",
		EntityID: &acc.ID,
	})
	return nil
}

// ======================================================
// FORGOT PASSWORD
// ======================================================

type ForgotPassword struct {
	repo account.Repository
	ttls TokenTTLs
	now  Clock
}

func NewForgotPassword(repo account.Repository, ttls TokenTTLs, now Clock) *ForgotPassword {
	return &ForgotPassword{repo: repo, ttls: ttls, now: clockOrDefault(now)}
}

// Execute returns the reset token, or "" when no enabled account owns the
// email. Callers must answer both cases the same way.
func (uc *ForgotPassword) Execute(ctx context.Context, email string) (string, error) {
	acc, err := uc.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeAccountNotFound) {
			return "", nil
		}
		return "", err
	}
	if !acc.Enabled {
		return "", nil
	}

	token, err := authpkg.RandomToken(resetTokenBytes)
	if err != nil {
		return "", err
	}

	if err := uc.repo.CreatePasswordReset(ctx, &models.PasswordReset{
		AccountID: acc.ID,
		Token:     token,
		ExpiresAt: uc.now().Add(uc.ttls.Reset),
	}); err != nil {
		return "", err
	}

	return token, nil
}

// ======================================================
// RESET PASSWORD
// ======================================================

type ResetPassword struct {
	repo  account.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewResetPassword(repo account.Repository, audit *audit.Dispatcher, now Clock) *ResetPassword {
	return &ResetPassword{repo: repo, audit: audit, now: clockOrDefault(now)}
}

func (uc *ResetPassword) Execute(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return httperr.ErrBusiness(httperr.CodeMissingFields)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	reset, err := uc.repo.FindPasswordReset(ctx, token)
	if err != nil {
		return err
	}
	if reset.UsedAt != nil {
		return httperr.ErrBusiness(httperr.CodeResetTokenInvalid)
	}

	now := uc.now()
	if now.After(reset.ExpiresAt) {
		return httperr.ErrBusiness(httperr.CodeResetTokenExpired)
	}

	acc, err := uc.repo.GetByID(ctx, reset.AccountID)
	if err != nil {
		return err
	}

	hash, err := authpkg.HashPassword(newPassword)
	if err != nil {
		return err
	}
	acc.PasswordHash = hash
	acc.MustChangePassword = false

	if err := uc.repo.ConsumePasswordReset(ctx, reset, acc, now); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &acc.ID,
		Action:   "password_reset",
		Entity:   "account",
		EntityID: &acc.ID,
	})
	return nil
}
