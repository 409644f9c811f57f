package auth

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
)

// DeleteAccount disables the caller's account and ends every session.
// The row is kept so the email can be registered again.
type DeleteAccount struct {
	repo  account.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewDeleteAccount(repo account.Repository, audit *audit.Dispatcher, now Clock) *DeleteAccount {
	return &DeleteAccount{repo: repo, audit: audit, now: clockOrDefault(now)}
}

func (uc *DeleteAccount) Execute(ctx context.Context, accountID uint) error {
	acc, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	now := uc.now()
	acc.Enabled = false
	acc.DeletedAt = &now

	if err := uc.repo.Save(ctx, acc); err != nil {
		return err
	}
	if err := uc.repo.DeleteRefreshTokensFor(ctx, acc.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &acc.ID,
		Action:   "account_deleted",
		Entity:   "account",
		EntityID: &acc.ID,
	})
	return nil
}
