package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextUserEmail = "userEmail"
)

type TokenParser interface {
	ParseAccess(token string) (auth.Identity, error)
}

// AccountLookup re-reads the bearer on every request so blocking or
// deleting an account takes effect before its tokens expire.
type AccountLookup interface {
	GetByID(ctx context.Context, id uint) (*models.Account, error)
}

func RequireAuth(tokens TokenParser, accounts AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			httperr.Business(c, httperr.CodeUnauthenticated)
			return
		}

		id, err := tokens.ParseAccess(raw)
		if err != nil {
			httperr.Business(c, httperr.CodeUnauthenticated)
			return
		}

		acc, err := accounts.GetByID(c.Request.Context(), id.AccountID)
		if err != nil {
			if httperr.IsBusiness(err, httperr.CodeAccountNotFound) {
				httperr.Business(c, httperr.CodeForbidden)
				return
			}
			httperr.FromError(c, Logger(c), err)
			return
		}
		if !acc.Enabled || acc.DeletedAt != nil {
			httperr.Business(c, httperr.CodeAccountDisabled)
			return
		}

		c.Set(ContextUserID, acc.ID)
		c.Set(ContextUserRole, acc.Role)
		c.Set(ContextUserEmail, acc.Email)

		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			httperr.Business(c, httperr.CodeForbidden)
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextUserRole) == models.RoleAdmin
}

// bearerToken accepts "Authorization: Bearer <t>" and the older
// x-access-token header.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(c.GetHeader("x-access-token"))
}
