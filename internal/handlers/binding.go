package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// bindJSON binds and validates the body against its binding tags. On
// failure it writes the 400 for the first broken rule and returns false.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.Business(c, bindingCode(err))
		return false
	}
	return true
}

func bindingCode(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return httperr.CodeInvalidRequest
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required", "required_without":
		return httperr.CodeMissingFields
	case "email":
		return httperr.CodeInvalidEmail
	case "datetime":
		return httperr.CodeInvalidDateTime
	case "min":
		if isPasswordField(fe.Field()) {
			return httperr.CodeWeakPassword
		}
	}
	return httperr.CodeInvalidRequest
}

func isPasswordField(name string) bool {
	return strings.HasSuffix(name, "Password") || name == "Senha"
}
