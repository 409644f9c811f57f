package auth

import (
	"context"
	"time"

	authpkg "github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ======================================================
// REFRESH
// ======================================================

type RefreshSession struct {
	repo   account.Repository
	issuer *authpkg.Issuer
	ttls   TokenTTLs
	now    Clock
}

func NewRefreshSession(repo account.Repository, issuer *authpkg.Issuer, ttls TokenTTLs, now Clock) *RefreshSession {
	return &RefreshSession{repo: repo, issuer: issuer, ttls: ttls, now: clockOrDefault(now)}
}

// Execute trades a persisted refresh token for a new access token. The
// refresh token itself is not rotated.
func (uc *RefreshSession) Execute(ctx context.Context, refreshToken string) (string, time.Time, error) {
	invalid := httperr.ErrBusiness(httperr.CodeInvalidRefreshToken)

	if refreshToken == "" {
		return "", time.Time{}, invalid
	}

	rec, err := uc.repo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}

	if !uc.now().Before(rec.ExpiresAt) {
		_ = uc.repo.DeleteRefreshToken(ctx, refreshToken)
		return "", time.Time{}, invalid
	}

	id, err := uc.issuer.ParseRefresh(refreshToken)
	if err != nil || id.AccountID != rec.AccountID {
		return "", time.Time{}, invalid
	}

	acc, err := uc.repo.GetByID(ctx, rec.AccountID)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeAccountNotFound) {
			return "", time.Time{}, invalid
		}
		return "", time.Time{}, err
	}
	if !acc.Enabled {
		return "", time.Time{}, httperr.ErrBusiness(httperr.CodeAccountDisabled)
	}

	return uc.issuer.Access(identityOf(acc), uc.ttls.Access)
}

// ======================================================
// LOGOUT
// ======================================================

type Logout struct {
	repo account.Repository
}

func NewLogout(repo account.Repository) *Logout {
	return &Logout{repo: repo}
}

// Execute forgets the refresh token. Unknown tokens are not an error.
func (uc *Logout) Execute(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return uc.repo.DeleteRefreshToken(ctx, refreshToken)
}
