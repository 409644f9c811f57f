package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsProduction() {
		level = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates the schema and the indexes AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.Service{},
		&models.Barber{},
		&models.Establishment{},
		&models.Appointment{},
		&models.RefreshToken{},
		&models.PasswordReset{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	stmts := []string{
		// one live booking per barber and instant; canceled rows free the slot
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_barber_slot
		   ON appointments (barber_id, starts_at)
		   WHERE status <> 'canceled' AND barber_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS ix_appointments_starts_at ON appointments (starts_at)`,
		`CREATE INDEX IF NOT EXISTS ix_appointments_account ON appointments (account_id)`,
		`CREATE INDEX IF NOT EXISTS ix_refresh_tokens_account ON refresh_tokens (account_id)`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
