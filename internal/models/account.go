package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type Account struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'customer'" json:"role"`

	MustChangePassword bool `gorm:"not null;default:false" json:"mustChangePassword"`
	Enabled            bool `gorm:"not null;default:true" json:"enabled"`

	// set when the owner deletes the account; the row stays so the
	// email can be reclaimed by a later registration
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE;" json:"profile,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type Profile struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AccountID uint   `gorm:"uniqueIndex;not null" json:"accountId"`
	Name      string `gorm:"size:120" json:"name"`
	Phone     string `gorm:"size:30" json:"phone"`
	PhotoURL  string `gorm:"size:500" json:"photoUrl"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
