package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberHandler struct {
	db     *gorm.DB
	photos *storage.Photos
}

func NewBarberHandler(db *gorm.DB, photos *storage.Photos) *BarberHandler {
	return &BarberHandler{db: db, photos: photos}
}

// --------- Requests ---------

// Specialties is raw so both ["a","b"] and "a, b" are accepted.
type BarberRequest struct {
	Name        *string         `json:"name" binding:"omitempty,max=120"`
	Bio         *string         `json:"bio" binding:"omitempty,max=1000"`
	PhotoURL    *string         `json:"photoUrl" binding:"omitempty,max=500"`
	Specialties json.RawMessage `json:"specialties"`
	Active      *bool           `json:"active"`
}

func (r BarberRequest) specialties() ([]string, bool, error) {
	if len(r.Specialties) == 0 || string(r.Specialties) == "null" {
		return nil, false, nil
	}
	var raw any
	if err := json.Unmarshal(r.Specialties, &raw); err != nil {
		return nil, false, err
	}
	out, ok := parseSpecialties(raw)
	if !ok {
		return nil, false, errors.New("specialties must be a list or a string")
	}
	return out, true, nil
}

// --------- Public ---------

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {

		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.List(c, h.views(c, barbers))
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var b models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND active = ?", id, true).
		First(&b).Error; err != nil {

		h.fail(c, err)
		return
	}
	httpresp.OK(c, h.view(c, b))
}

// --------- Admin ---------

func (h *BarberHandler) ListAll(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&barbers).Error; err != nil {

		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.List(c, h.views(c, barbers))
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req BarberRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Nome do barbeiro é obrigatório.")
		return
	}
	specialties, _, err := req.specialties()
	if err != nil {
		httperr.Business(c, httperr.CodeInvalidRequest)
		return
	}

	b := models.Barber{
		Name:        strings.TrimSpace(*req.Name),
		Specialties: specialties,
		Active:      true,
	}
	if b.Specialties == nil {
		b.Specialties = []string{}
	}
	if req.Bio != nil {
		b.Bio = *req.Bio
	}
	if req.PhotoURL != nil {
		b.PhotoURL = *req.PhotoURL
	}

	db := h.db.WithContext(c.Request.Context())
	if err := db.Create(&b).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	if req.Active != nil && !*req.Active {
		if err := db.Model(&b).Update("active", false).Error; err != nil {
			httperr.FromError(c, middleware.Logger(c), err)
			return
		}
	}

	httpresp.Created(c, "Barbeiro criado com sucesso.", h.view(c, b))
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req BarberRequest
	if !bindJSON(c, &req) {
		return
	}
	specialties, hasSpecialties, err := req.specialties()
	if err != nil {
		httperr.Business(c, httperr.CodeInvalidRequest)
		return
	}
	if req.Name == nil && req.Bio == nil && req.PhotoURL == nil && !hasSpecialties && req.Active == nil {
		httperr.Business(c, httperr.CodeNoFields)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var b models.Barber
	if err := db.First(&b, id).Error; err != nil {
		h.fail(c, err)
		return
	}

	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		b.Bio = *req.Bio
	}
	if req.PhotoURL != nil {
		b.PhotoURL = *req.PhotoURL
	}
	if hasSpecialties {
		b.Specialties = specialties
	}
	if req.Active != nil {
		b.Active = *req.Active
	}

	if err := db.Save(&b).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.OK(c, h.view(c, b))
}

// Delete deactivates the barber; past appointments keep pointing at it.
func (h *BarberHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Barber{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		httperr.FromError(c, middleware.Logger(c), res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Business(c, httperr.CodeBarberNotFound)
		return
	}

	httpresp.Message(c, "Barbeiro desativado com sucesso.")
}

// UploadPhoto takes a multipart "foto" (or "photo") file.
func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var b models.Barber
	if err := db.First(&b, id).Error; err != nil {
		h.fail(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.photos.MaxBytes()+1<<20)

	fh, err := c.FormFile("foto")
	if err != nil {
		fh, err = c.FormFile("photo")
	}
	if err != nil {
		httperr.Business(c, httperr.CodeInvalidImage)
		return
	}

	url, err := h.photos.Upload(c.Request.Context(), "barber", fh)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	if err := db.Model(&b).Update("photo_url", url).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	b.PhotoURL = url

	httpresp.OK(c, h.view(c, b))
}

// --------- Helpers ---------

func (h *BarberHandler) view(c *gin.Context, b models.Barber) models.Barber {
	b.PhotoURL = absoluteURL(c, b.PhotoURL)
	if b.Specialties == nil {
		b.Specialties = []string{}
	}
	return b
}

func (h *BarberHandler) views(c *gin.Context, list []models.Barber) []models.Barber {
	for i := range list {
		list[i] = h.view(c, list[i])
	}
	return list
}

func (h *BarberHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Business(c, httperr.CodeBarberNotFound)
		return
	}
	httperr.FromError(c, middleware.Logger(c), err)
}
