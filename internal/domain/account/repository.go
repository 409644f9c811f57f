package account

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Repository is the persistence port for accounts and their session
// records. Missing rows come back as business errors:
// account_not_found, invalid_refresh_token and reset_token_invalid.
type Repository interface {
	// -------- Accounts --------
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// Create inserts the account and its profile. A taken email fails
	// with email_taken.
	Create(ctx context.Context, a *models.Account) error

	// Save updates the account and upserts its profile when loaded.
	Save(ctx context.Context, a *models.Account) error

	List(ctx context.Context, excludeIDs ...uint) ([]models.Account, error)

	// -------- Refresh tokens --------
	CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteRefreshTokensFor(ctx context.Context, accountID uint) error

	// -------- Password reset --------
	CreatePasswordReset(ctx context.Context, r *models.PasswordReset) error
	FindPasswordReset(ctx context.Context, token string) (*models.PasswordReset, error)

	// ConsumePasswordReset marks r used and saves a in one transaction.
	// A token consumed concurrently fails with reset_token_invalid.
	ConsumePasswordReset(ctx context.Context, r *models.PasswordReset, a *models.Account, at time.Time) error
}
