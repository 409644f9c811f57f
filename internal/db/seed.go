package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

func defaultServices() []models.Service {
	svc := func(name, desc, price string, minutes int, icon string) models.Service {
		return models.Service{
			Name:        name,
			Description: desc,
			Price:       decimal.RequireFromString(price),
			Duration:    minutes,
			DurationMin: minutes,
			Icon:        icon,
			Active:      true,
		}
	}
	return []models.Service{
		svc("Corte de Cabelo", "Corte tradicional ou moderno", "30.00", 30, "cut"),
		svc("Barba", "Aparar e modelar a barba", "20.00", 20, "beard"),
		svc("Sobrancelha", "Design de sobrancelha", "15.00", 15, "eye"),
		svc("Pezinho", "Acabamento da nuca", "10.00", 10, "neck"),
	}
}

// Seed fills an empty database with the admin account and the default
// catalog. Tables that already have rows are left alone.
func Seed(db *gorm.DB, cfg SeedConfig, log *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedAdmin(tx, cfg, log); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Service{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			services := defaultServices()
			if err := tx.Create(&services).Error; err != nil {
				return fmt.Errorf("seed services: %w", err)
			}
			log.Info("seeded services", zap.Int("count", len(services)))
		}

		if err := tx.Model(&models.Barber{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			b := models.Barber{
				Name:        "Barbeiro Padrão",
				Bio:         "Profissional da casa",
				Specialties: []string{"Corte", "Barba"},
				Active:      true,
			}
			if err := tx.Create(&b).Error; err != nil {
				return fmt.Errorf("seed barber: %w", err)
			}
		}

		if err := tx.Model(&models.Establishment{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			e := models.Establishment{Name: "Barbearia", Active: true}
			if err := tx.Create(&e).Error; err != nil {
				return fmt.Errorf("seed establishment: %w", err)
			}
		}

		return nil
	})
}

func seedAdmin(tx *gorm.DB, cfg SeedConfig, log *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.Account
	err := tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin, err := newSeedAdmin(email, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if err := tx.Create(admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info("seeded admin account", zap.String("email", email))
	return nil
}

// newSeedAdmin builds the first admin. The configured password is only a
// bootstrap credential, so it must be changed at first login.
func newSeedAdmin(email, password string) (*models.Account, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.Account{
		Email:              email,
		PasswordHash:       hash,
		Role:               models.RoleAdmin,
		Enabled:            true,
		MustChangePassword: true,
		Profile:            &models.Profile{Name: "Administrador"},
	}, nil
}
