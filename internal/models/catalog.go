package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price"`

	// Duration and DurationMin are both read by older clients
	Duration    int `gorm:"not null;default:30" json:"duration"`
	DurationMin int `gorm:"not null;default:30" json:"durationMin"`

	Icon   string `gorm:"size:50;default:'cut'" json:"icon"`
	Active bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Minutes reconciles the two duration columns, preferring Duration.
func (s *Service) Minutes() int {
	switch {
	case s.Duration > 0:
		return s.Duration
	case s.DurationMin > 0:
		return s.DurationMin
	default:
		return 30
	}
}

type Barber struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:120;not null" json:"name"`
	Bio         string   `gorm:"type:text" json:"bio"`
	PhotoURL    string   `gorm:"size:500" json:"photoUrl"`
	Specialties []string `gorm:"type:text;serializer:json" json:"specialties"`
	Active      bool     `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Establishment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:150;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:30" json:"phone"`
	Active  bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
