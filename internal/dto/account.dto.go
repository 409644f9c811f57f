package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AccountView struct {
	ID                 uint      `json:"id"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	IsAdmin            bool      `json:"isAdmin"`
	MustChangePassword bool      `json:"mustChangePassword"`
	Enabled            bool      `json:"enabled"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	PhotoURL           string    `json:"photoUrl"`
	CreatedAt          time.Time `json:"createdAt"`
}

func NewAccountView(a *models.Account) AccountView {
	v := AccountView{
		ID:                 a.ID,
		Email:              a.Email,
		Role:               a.Role,
		IsAdmin:            a.IsAdmin(),
		MustChangePassword: a.MustChangePassword,
		Enabled:            a.Enabled,
		CreatedAt:          a.CreatedAt,
	}
	if a.Profile != nil {
		v.Name = a.Profile.Name
		v.Phone = a.Profile.Phone
		v.PhotoURL = a.Profile.PhotoURL
	}
	return v
}
