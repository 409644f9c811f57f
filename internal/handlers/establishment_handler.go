package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type EstablishmentHandler struct {
	db *gorm.DB
}

func NewEstablishmentHandler(db *gorm.DB) *EstablishmentHandler {
	return &EstablishmentHandler{db: db}
}

type EstablishmentRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=120"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=40"`
	Active  *bool   `json:"active"`
}

func (h *EstablishmentHandler) List(c *gin.Context) {
	var list []models.Establishment
	if err := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("name ASC").
		Find(&list).Error; err != nil {

		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.List(c, list)
}

func (h *EstablishmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var e models.Establishment
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND active = ?", id, true).
		First(&e).Error; err != nil {

		h.fail(c, err)
		return
	}
	httpresp.OK(c, e)
}

func (h *EstablishmentHandler) Create(c *gin.Context) {
	var req EstablishmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Nome do estabelecimento é obrigatório.")
		return
	}

	e := models.Establishment{Name: strings.TrimSpace(*req.Name), Active: true}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}

	db := h.db.WithContext(c.Request.Context())
	if err := db.Create(&e).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	if req.Active != nil && !*req.Active {
		if err := db.Model(&e).Update("active", false).Error; err != nil {
			httperr.FromError(c, middleware.Logger(c), err)
			return
		}
	}

	httpresp.Created(c, "Estabelecimento criado com sucesso.", e)
}

func (h *EstablishmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req EstablishmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil && req.Address == nil && req.Phone == nil && req.Active == nil {
		httperr.Business(c, httperr.CodeNoFields)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var e models.Establishment
	if err := db.First(&e, id).Error; err != nil {
		h.fail(c, err)
		return
	}

	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.Active != nil {
		e.Active = *req.Active
	}

	if err := db.Save(&e).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.OK(c, e)
}

func (h *EstablishmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Establishment{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		httperr.FromError(c, middleware.Logger(c), res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Business(c, httperr.CodeEstablishmentNotFound)
		return
	}

	httpresp.Message(c, "Estabelecimento desativado com sucesso.")
}

func (h *EstablishmentHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Business(c, httperr.CodeEstablishmentNotFound)
		return
	}
	httperr.FromError(c, middleware.Logger(c), err)
}
