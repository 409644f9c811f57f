package auth

import (
	"strings"
	"time"

	authpkg "github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Clock func() time.Time

// TokenTTLs groups the lifetimes of every credential the service hands out.
type TokenTTLs struct {
	Access  time.Duration
	Legacy  time.Duration
	Refresh time.Duration
	Reset   time.Duration
}

func DefaultTTLs() TokenTTLs {
	return TokenTTLs{
		Access:  2 * time.Hour,
		Legacy:  24 * time.Hour,
		Refresh: 30 * 24 * time.Hour,
		Reset:   30 * time.Minute,
	}
}

// EmailChecker reports whether an email's domain can receive mail.
type EmailChecker func(email string) bool

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func identityOf(a *models.Account) authpkg.Identity {
	return authpkg.Identity{AccountID: a.ID, Email: a.Email, Role: a.Role}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkEmailDomain runs the optional deliverability check. Syntax is
// validated by the request binding.
func checkEmailDomain(email string, check EmailChecker) error {
	if check != nil && !check(email) {
		return httperr.ErrBusiness(httperr.CodeInvalidEmail)
	}
	return nil
}

func validatePassword(pw string) error {
	if len(pw) < authpkg.MinPasswordLength {
		return httperr.ErrBusiness(httperr.CodeWeakPassword)
	}
	if len(pw) > authpkg.MaxPasswordBytes {
		return httperr.ErrBusiness(httperr.CodePasswordTooLong)
	}
	return nil
}
