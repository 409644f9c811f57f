package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

var _ account.Repository = (*AccountGormRepository)(nil)

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// --------------------------------------------------
// Accounts
// --------------------------------------------------

func (r *AccountGormRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var acc models.Account
	if err := r.db.WithContext(ctx).Preload("Profile").First(&acc, id).Error; err != nil {
		return nil, notFound(err, httperr.CodeAccountNotFound)
	}
	return &acc, nil
}

func (r *AccountGormRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).
		First(&acc).Error; err != nil {
		return nil, notFound(err, httperr.CodeAccountNotFound)
	}
	return &acc, nil
}

func (r *AccountGormRepository) Create(ctx context.Context, a *models.Account) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeEmailTaken)
	}
	return err
}

func (r *AccountGormRepository) Save(ctx context.Context, a *models.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(a).Error; err != nil {
			return err
		}
		if a.Profile == nil {
			return nil
		}

		a.Profile.AccountID = a.ID
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "photo_url", "updated_at"}),
		}).Create(a.Profile).Error
	})
}

func (r *AccountGormRepository) List(ctx context.Context, excludeIDs ...uint) ([]models.Account, error) {
	q := r.db.WithContext(ctx).Preload("Profile")
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	var list []models.Account
	if err := q.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// Refresh tokens
// --------------------------------------------------

func (r *AccountGormRepository) CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *AccountGormRepository) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rec models.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&rec).Error; err != nil {
		return nil, notFound(err, httperr.CodeInvalidRefreshToken)
	}
	return &rec, nil
}

func (r *AccountGormRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (r *AccountGormRepository) DeleteRefreshTokensFor(ctx context.Context, accountID uint) error {
	return r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&models.RefreshToken{}).Error
}

// --------------------------------------------------
// Password reset
// --------------------------------------------------

func (r *AccountGormRepository) CreatePasswordReset(ctx context.Context, pr *models.PasswordReset) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *AccountGormRepository) FindPasswordReset(ctx context.Context, token string) (*models.PasswordReset, error) {
	var rec models.PasswordReset
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&rec).Error; err != nil {
		return nil, notFound(err, httperr.CodeResetTokenInvalid)
	}
	return &rec, nil
}

func (r *AccountGormRepository) ConsumePasswordReset(
	ctx context.Context,
	pr *models.PasswordReset,
	a *models.Account,
	at time.Time,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PasswordReset{}).
			Where("id = ? AND used_at IS NULL", pr.ID).
			Update("used_at", at)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness(httperr.CodeResetTokenInvalid)
		}

		return tx.Model(&models.Account{}).
			Where("id = ?", a.ID).
			Updates(map[string]any{
				"password_hash":        a.PasswordHash,
				"must_change_password": a.MustChangePassword,
			}).Error
	})
}
