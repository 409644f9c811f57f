package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AccountID uint     `gorm:"index;not null" json:"userId"`
	Account   *Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// nullable: a booking may be made without choosing a barber
	BarberID *uint   `json:"barberId"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ServiceID uint     `gorm:"not null" json:"serviceId"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	StartsAt time.Time `gorm:"index;not null" json:"date"`
	Status   string    `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Notes    string    `gorm:"size:500" json:"notes"`

	CanceledAt  *time.Time `json:"canceledAt,omitempty"`
	FinalizedAt *time.Time `json:"finalizedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
