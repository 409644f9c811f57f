package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	authpkg "github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// dummyHash keeps unknown-email logins as slow as wrong-password ones.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3Ydh3bU8bE6q5Jm8rUq7J4C"

type LoginInput struct {
	Email    string
	Password string

	// Legacy logins get a single long-lived access token and no
	// refresh token.
	Legacy bool
}

type LoginOutput struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	Account          *models.Account
}

type Login struct {
	repo   account.Repository
	issuer *authpkg.Issuer
	ttls   TokenTTLs
	audit  *audit.Dispatcher
	log    *zap.Logger
	now    Clock
}

func NewLogin(
	repo account.Repository,
	issuer *authpkg.Issuer,
	ttls TokenTTLs,
	audit *audit.Dispatcher,
	log *zap.Logger,
	now Clock,
) *Login {
	if log == nil {
		log = zap.NewNop()
	}
	return &Login{repo: repo, issuer: issuer, ttls: ttls, audit: audit, log: log, now: clockOrDefault(now)}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// --------------------------------------------------
	// Credentials: one answer for unknown email and bad password
	// --------------------------------------------------
	acc, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if !httperr.IsBusiness(err, httperr.CodeAccountNotFound) {
			return nil, err
		}
		authpkg.CheckPassword(dummyHash, in.Password)
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}

	if !authpkg.CheckPassword(acc.PasswordHash, in.Password) {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}

	if !acc.Enabled {
		metrics.LoginAttempts.WithLabelValues("disabled").Inc()
		return nil, httperr.ErrBusiness(httperr.CodeAccountDisabled)
	}

	// --------------------------------------------------
	// Tokens
	// --------------------------------------------------
	ttl := uc.ttls.Access
	if in.Legacy {
		ttl = uc.ttls.Legacy
	}

	out := &LoginOutput{Account: acc}
	out.AccessToken, out.AccessExpiresAt, err = uc.issuer.Access(identityOf(acc), ttl)
	if err != nil {
		return nil, err
	}

	if !in.Legacy {
		out.RefreshToken, out.RefreshExpiresAt, err = uc.issuer.Refresh(identityOf(acc), uc.ttls.Refresh)
		if err != nil {
			return nil, err
		}

		if err := uc.repo.CreateRefreshToken(ctx, &models.RefreshToken{
			AccountID: acc.ID,
			Token:     out.RefreshToken,
			ExpiresAt: out.RefreshExpiresAt,
		}); err != nil {
			return nil, err
		}
	}

	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	uc.audit.Dispatch(audit.Event{
		ActorID:  &acc.ID,
		Action:   "login",
		Entity:   "account",
		EntityID: &acc.ID,
	})
	uc.log.Debug("login", zap.Uint("account_id", acc.ID), zap.Bool("legacy", in.Legacy))

	return out, nil
}
