package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err, httperr.CodeServiceNotFound)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, notFound(err, httperr.CodeBarberNotFound)
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	var acc models.Account
	if err := r.db.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, notFound(err, httperr.CodeAccountNotFound)
	}
	return &acc, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) SaveIfSlotFree(ctx context.Context, ap *models.Appointment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if ap.BarberID != nil {
			var conflicts []models.Appointment
			q := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(
					"barber_id = ? AND starts_at = ? AND status <> ?",
					*ap.BarberID, ap.StartsAt, string(domain.StatusCanceled),
				)
			if ap.ID != 0 {
				q = q.Where("id <> ?", ap.ID)
			}
			if err := q.Limit(1).Find(&conflicts).Error; err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return httperr.ErrBusiness(httperr.CodeSlotConflict)
			}
		}

		return tx.Omit(clause.Associations).Save(ap).Error
	})

	// the partial unique index catches writers outside this process
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}
	return err
}

func (r *AppointmentGormRepository) Save(ctx context.Context, ap *models.Appointment) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}
	return err
}

func (r *AppointmentGormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Preload("Account").
		Preload("Account.Profile")
}

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.joined(ctx).First(&ap, id).Error; err != nil {
		return nil, notFound(err, httperr.CodeAppointmentNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListOccupied(
	ctx context.Context,
	from time.Time,
	to time.Time,
	barberID *uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Where("status <> ?", string(domain.StatusCanceled))

	if barberID != nil {
		q = q.Where("barber_id = ?", *barberID)
	}

	var list []models.Appointment
	if err := q.Order("starts_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.joined(ctx)

	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.From != nil {
		q = q.Where("starts_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("starts_at < ?", *f.To)
	}

	var list []models.Appointment
	if err := q.Order("starts_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
