package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports 503 when the database does not answer a ping.
func (h *HealthHandler) Health(c *gin.Context) {
	status, code := "ok", http.StatusOK
	dbStatus := "ok"

	if err := h.ping(c.Request.Context()); err != nil {
		status, code, dbStatus = "degraded", http.StatusServiceUnavailable, "unreachable"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": timezone.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) ping(ctx context.Context) error {
	if h.db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
