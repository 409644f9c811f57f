package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	defaultServiceMinutes = 30
	defaultServiceIcon    = "cut"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type ServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=120"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *int             `json:"duration" binding:"omitempty,min=0,max=1440"`
	DurationMin *int             `json:"durationMin" binding:"omitempty,min=0,max=1440"`
	Icon        *string          `json:"icon" binding:"omitempty,max=16"`
	Active      *bool            `json:"active"`
}

func (r ServiceRequest) empty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil &&
		r.Duration == nil && r.DurationMin == nil && r.Icon == nil && r.Active == nil
}

// decimal.Decimal carries no binding tags
func (r ServiceRequest) validPrice() bool {
	return r.Price == nil || !r.Price.IsNegative()
}

// --------- Handlers ---------

// List returns active services ordered by name.
func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {

		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) ListAll(c *gin.Context) {
	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&services).Error; err != nil {

		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.validPrice() {
		httperr.Business(c, httperr.CodeInvalidRequest)
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Nome do serviço é obrigatório.")
		return
	}

	svc := models.Service{
		Name:   strings.TrimSpace(*req.Name),
		Price:  decimal.Zero,
		Icon:   defaultServiceIcon,
		Active: true,
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Icon != nil && *req.Icon != "" {
		svc.Icon = *req.Icon
	}
	svc.Duration, svc.DurationMin = reconcileDuration(req.Duration, req.DurationMin)

	db := h.db.WithContext(c.Request.Context())
	if err := db.Create(&svc).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	// gorm skips zero values on insert, so an inactive service is flipped
	// after the row exists
	if req.Active != nil && !*req.Active {
		if err := db.Model(&svc).Update("active", false).Error; err != nil {
			httperr.FromError(c, middleware.Logger(c), err)
			return
		}
	}

	httpresp.Created(c, "Serviço criado com sucesso.", svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.validPrice() {
		httperr.Business(c, httperr.CodeInvalidRequest)
		return
	}
	if req.empty() {
		httperr.Business(c, httperr.CodeNoFields)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var svc models.Service
	if err := db.First(&svc, id).Error; err != nil {
		h.fail(c, err)
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Icon != nil {
		svc.Icon = *req.Icon
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.Duration != nil || req.DurationMin != nil {
		svc.Duration, svc.DurationMin = reconcileDuration(req.Duration, req.DurationMin)
	}

	if err := db.Save(&svc).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.OK(c, svc)
}

// Delete deactivates the service. Rows are kept because appointments
// reference them.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Service{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		httperr.FromError(c, middleware.Logger(c), res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Business(c, httperr.CodeServiceNotFound)
		return
	}

	c.JSON(http.StatusOK, httpresp.DataResponse{Success: true, Message: "Serviço desativado com sucesso."})
}

func (h *ServiceHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Business(c, httperr.CodeServiceNotFound)
		return
	}
	httperr.FromError(c, middleware.Logger(c), err)
}

// reconcileDuration fills both duration columns from whichever one was
// given, preferring duration. Neither given means 30 minutes.
func reconcileDuration(duration, durationMin *int) (int, int) {
	pick := func(v *int) int {
		if v != nil && *v > 0 {
			return *v
		}
		return 0
	}

	d, dm := pick(duration), pick(durationMin)
	switch {
	case d > 0 && dm > 0:
		return d, dm
	case d > 0:
		return d, d
	case dm > 0:
		return dm, dm
	default:
		return defaultServiceMinutes, defaultServiceMinutes
	}
}
