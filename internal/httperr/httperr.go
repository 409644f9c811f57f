package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Verbose adds internal error text to 500 bodies. Only set in development.
var Verbose bool

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Business writes the mapped status and message for a business code.
func Business(c *gin.Context, code string) {
	status, msg, ok := Lookup(code)
	if !ok {
		status, msg = http.StatusBadRequest, code
	}
	Write(c, status, code, msg)
}

// FromError answers with the business mapping when err carries a code and
// with a generic 500 otherwise. Internal errors are logged, never echoed,
// unless Verbose is on.
func FromError(c *gin.Context, log *zap.Logger, err error) {
	if code := Code(err); code != "" {
		Business(c, code)
		return
	}

	if log != nil {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	body := HTTPError{
		Code:    CodeInternal,
		Message: "Erro interno do servidor.",
	}
	if Verbose {
		body.Detail = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}
