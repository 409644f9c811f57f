package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucappt "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// --------------------------------------------------
// Params
// --------------------------------------------------

// paramID reads a positive numeric path parameter. It writes the 400
// itself and returns false when the value is unusable.
func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.Business(c, httperr.CodeInvalidRequest)
		return 0, false
	}
	return uint(v), true
}

func queryUint(c *gin.Context, name string) *uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil
	}
	id := uint(v)
	return &id
}

func actorOf(c *gin.Context) ucappt.Actor {
	return ucappt.Actor{
		AccountID: middleware.UserID(c),
		IsAdmin:   middleware.IsAdmin(c),
	}
}

// firstNonEmpty picks the english field over its legacy alias.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// --------------------------------------------------
// Photos
// --------------------------------------------------

// absoluteURL prefixes stored relative paths (/uploads/x.webp) with the
// scheme and host the request came in on.
func absoluteURL(c *gin.Context, raw string) string {
	if raw == "" || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}

	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return scheme + "://" + c.Request.Host + raw
}

// --------------------------------------------------
// Specialties
// --------------------------------------------------

// parseSpecialties accepts a JSON array or a comma separated string.
// Blank entries are dropped and nil means "not supplied".
func parseSpecialties(raw any) ([]string, bool) {
	var parts []string

	switch v := raw.(type) {
	case nil:
		return nil, false
	case string:
		parts = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	case []string:
		parts = v
	default:
		return nil, false
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, true
}
