package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	authpkg "github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	accounts account.Repository
	photos   *storage.Photos
	audit    *audit.Dispatcher

	// the seeded admin never shows up in the admin user list
	seedAdminEmail string
}

func NewUserHandler(
	accounts account.Repository,
	photos *storage.Photos,
	dispatcher *audit.Dispatcher,
	seedAdminEmail string,
) *UserHandler {
	return &UserHandler{
		accounts:       accounts,
		photos:         photos,
		audit:          dispatcher,
		seedAdminEmail: strings.ToLower(seedAdminEmail),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateMeRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=120"`
	Phone    *string `json:"phone" binding:"omitempty,max=40"`
	PhotoURL *string `json:"photoUrl" binding:"omitempty,max=500"`

	Nome    *string `json:"nome" binding:"omitempty,max=120"`
	Contato *string `json:"contato" binding:"omitempty,max=40"`
	Foto    *string `json:"foto" binding:"omitempty,max=500"`
}

type AdminUpdateUserRequest struct {
	Enabled            *bool   `json:"enabled"`
	MustChangePassword *bool   `json:"mustChangePassword"`
	Role               *string `json:"role" binding:"omitempty,oneof=admin customer"`
}

type AdminSetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ======================================================
// SELF
// ======================================================

func (h *UserHandler) GetMe(c *gin.Context) {
	acc, err := h.accounts.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.OK(c, h.view(c, acc))
}

// UpdateMe upserts the caller's profile from JSON. Fields left out keep
// their value, the photo included.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	name := firstSet(req.Name, req.Nome)
	phone := firstSet(req.Phone, req.Contato)
	photo := firstSet(req.PhotoURL, req.Foto)
	if name == nil && phone == nil && photo == nil {
		httperr.Business(c, httperr.CodeNoFields)
		return
	}

	h.saveProfile(c, name, phone, photo)
}

// UpdateProfile is UpdateMe over multipart/form-data with an optional
// "foto" image file.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	// room for the form fields around the file
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.photos.MaxBytes()+1<<20)

	name := formValue(c, "name", "nome")
	phone := formValue(c, "phone", "contato")

	var photo *string
	fh, err := c.FormFile("foto")
	switch {
	case err == nil:
		url, err := h.photos.Upload(c.Request.Context(), "profile", fh)
		if err != nil {
			httperr.FromError(c, middleware.Logger(c), err)
			return
		}
		photo = &url
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Business(c, httperr.CodeInvalidImage)
			return
		}
		httperr.Business(c, httperr.CodeInvalidRequest)
		return
	}

	if name == nil && phone == nil && photo == nil {
		httperr.Business(c, httperr.CodeNoFields)
		return
	}

	h.saveProfile(c, name, phone, photo)
}

func (h *UserHandler) saveProfile(c *gin.Context, name, phone, photo *string) {
	acc, err := h.accounts.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	if acc.Profile == nil {
		acc.Profile = &models.Profile{AccountID: acc.ID}
	}
	if name != nil {
		acc.Profile.Name = strings.TrimSpace(*name)
	}
	if phone != nil {
		acc.Profile.Phone = strings.TrimSpace(*phone)
	}
	if photo != nil {
		acc.Profile.PhotoURL = *photo
	}

	if err := h.accounts.Save(c.Request.Context(), acc); err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	c.JSON(http.StatusOK, httpresp.DataResponse{
		Success: true,
		Message: "Perfil atualizado com sucesso.",
		Data:    h.view(c, acc),
	})
}

// ======================================================
// ADMIN
// ======================================================

func (h *UserHandler) AdminList(c *gin.Context) {
	list, err := h.accounts.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	views := make([]dto.AccountView, 0, len(list))
	for i := range list {
		if strings.EqualFold(list[i].Email, h.seedAdminEmail) {
			continue
		}
		views = append(views, h.view(c, &list[i]))
	}
	httpresp.List(c, views)
}

func (h *UserHandler) AdminUpdate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AdminUpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Enabled == nil && req.MustChangePassword == nil && req.Role == nil {
		httperr.Business(c, httperr.CodeNoFields)
		return
	}

	acc, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	if req.Enabled != nil {
		acc.Enabled = *req.Enabled
	}
	if req.MustChangePassword != nil {
		acc.MustChangePassword = *req.MustChangePassword
	}
	if req.Role != nil {
		acc.Role = *req.Role
	}

	if err := h.accounts.Save(c.Request.Context(), acc); err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	// a blocked account loses its sessions right away
	if !acc.Enabled {
		if err := h.accounts.DeleteRefreshTokensFor(c.Request.Context(), acc.ID); err != nil {
			middleware.Logger(c).Warn("block: delete refresh tokens",
				zap.Uint("account_id", acc.ID), zap.Error(err))
		}
	}

	actor := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		ActorID:  &actor,
		Action:   "account_updated",
		Entity:   "account",
		EntityID: &acc.ID,
		Metadata: map[string]any{
			"enabled":            acc.Enabled,
			"mustChangePassword": acc.MustChangePassword,
			"role":               acc.Role,
		},
	})

	httpresp.OK(c, h.view(c, acc))
}

// AdminSetPassword replaces the password and forces a change at next login.
func (h *UserHandler) AdminSetPassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AdminSetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	acc, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	hash, err := authpkg.HashPassword(req.NewPassword)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	acc.PasswordHash = hash
	acc.MustChangePassword = true

	if err := h.accounts.Save(c.Request.Context(), acc); err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	actor := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		ActorID:  &actor,
		Action:   "password_reset_by_admin",
		Entity:   "account",
		EntityID: &acc.ID,
	})

	httpresp.Message(c, "Senha redefinida com sucesso.")
}

// ======================================================
// HELPERS
// ======================================================

func (h *UserHandler) view(c *gin.Context, acc *models.Account) dto.AccountView {
	v := dto.NewAccountView(acc)
	v.PhotoURL = absoluteURL(c, v.PhotoURL)
	return v
}

func firstSet(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func formValue(c *gin.Context, keys ...string) *string {
	for _, k := range keys {
		if v, ok := c.GetPostForm(k); ok {
			return &v
		}
	}
	return nil
}
