package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	authpkg "github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucauth "github.com/BruksfildServices01/barber-booking/internal/usecase/auth"
)

type AuthHandler struct {
	accounts account.Repository
	issuer   *authpkg.Issuer

	login          *ucauth.Login
	refresh        *ucauth.RefreshSession
	logout         *ucauth.Logout
	register       *ucauth.Register
	changePassword *ucauth.ChangePassword
	deleteAccount  *ucauth.DeleteAccount
	forgotPassword *ucauth.ForgotPassword
	resetPassword  *ucauth.ResetPassword

	// exposeResetToken returns the reset token in the forgot-password
	// response. Never set in production.
	exposeResetToken bool
}

type AuthHandlerConfig struct {
	TTLs             ucauth.TokenTTLs
	CheckEmailDomain ucauth.EmailChecker
	ExposeResetToken bool
	Now              ucauth.Clock
}

func NewAuthHandler(
	accounts account.Repository,
	issuer *authpkg.Issuer,
	dispatcher *audit.Dispatcher,
	log *zap.Logger,
	cfg AuthHandlerConfig,
) *AuthHandler {
	return &AuthHandler{
		accounts:         accounts,
		issuer:           issuer,
		login:            ucauth.NewLogin(accounts, issuer, cfg.TTLs, dispatcher, log, cfg.Now),
		refresh:          ucauth.NewRefreshSession(accounts, issuer, cfg.TTLs, cfg.Now),
		logout:           ucauth.NewLogout(accounts),
		register:         ucauth.NewRegister(accounts, dispatcher, cfg.CheckEmailDomain),
		changePassword:   ucauth.NewChangePassword(accounts, dispatcher),
		deleteAccount:    ucauth.NewDeleteAccount(accounts, dispatcher, cfg.Now),
		forgotPassword:   ucauth.NewForgotPassword(accounts, cfg.TTLs, cfg.Now),
		resetPassword:    ucauth.NewResetPassword(accounts, dispatcher, cfg.Now),
		exposeResetToken: cfg.ExposeResetToken,
	}
}

// --------- Requests ---------

// Senha, Nome and Contato are the field names older clients send.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required_without=Senha"`
	Senha    string `json:"senha" binding:"required_without=Password"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required_without=Senha,omitempty,min=6"`
	Name     string `json:"name" binding:"required_without=Nome,max=120"`
	Phone    string `json:"phone" binding:"required_without=Contato,max=40"`

	Senha   string `json:"senha" binding:"required_without=Password,omitempty,min=6"`
	Nome    string `json:"nome" binding:"required_without=Name,max=120"`
	Contato string `json:"contato" binding:"required_without=Phone,max=40"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest tolerates an empty body.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ValidateTokenRequest struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// --------- Responses ---------

type LoginResponse struct {
	Success          bool            `json:"success"`
	AccessToken      string          `json:"accessToken"`
	RefreshToken     string          `json:"refreshToken"`
	ExpiresAt        time.Time       `json:"expiresAt"`
	RefreshExpiresAt time.Time       `json:"refreshExpiresAt"`
	User             dto.AccountView `json:"user"`
}

type LegacyLoginResponse struct {
	Success   bool            `json:"success"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      dto.AccountView `json:"user"`
}

type ForgotPasswordResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DebugToken string `json:"debugToken,omitempty"`
}

// --------- Login & session ---------

// Login issues an access and a refresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	out, ok := h.doLogin(c, false)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success:          true,
		AccessToken:      out.AccessToken,
		RefreshToken:     out.RefreshToken,
		ExpiresAt:        out.AccessExpiresAt,
		RefreshExpiresAt: out.RefreshExpiresAt,
		User:             dto.NewAccountView(out.Account),
	})
}

// LegacyLogin issues one long-lived access token and no refresh token.
func (h *AuthHandler) LegacyLogin(c *gin.Context) {
	out, ok := h.doLogin(c, true)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, LegacyLoginResponse{
		Success:   true,
		Token:     out.AccessToken,
		ExpiresAt: out.AccessExpiresAt,
		User:      dto.NewAccountView(out.Account),
	})
}

func (h *AuthHandler) doLogin(c *gin.Context, legacy bool) (*ucauth.LoginOutput, bool) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return nil, false
	}

	out, err := h.login.Execute(c.Request.Context(), ucauth.LoginInput{
		Email:    req.Email,
		Password: firstNonEmpty(req.Password, req.Senha),
		Legacy:   legacy,
	})
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return nil, false
	}
	return out, true
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	token, exp, err := h.refresh.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": token,
		"expiresAt":   exp,
	})
}

// Logout always succeeds; an unknown refresh token is simply ignored.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.logout.Execute(c.Request.Context(), req.RefreshToken); err != nil {
		middleware.Logger(c).Warn("logout: delete refresh token", zap.Error(err))
	}
	httpresp.Message(c, "Logout realizado com sucesso.")
}

// Validate answers for the bearer already checked by RequireAuth.
func (h *AuthHandler) Validate(c *gin.Context) {
	acc, err := h.accounts.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": dto.NewAccountView(acc)})
}

// ValidateToken checks a token passed in the body instead of the header.
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req ValidateTokenRequest
	_ = c.ShouldBindJSON(&req)

	token := strings.TrimSpace(req.Token)
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	id, err := h.issuer.ParseAccess(token)
	if err != nil {
		httperr.Business(c, httperr.CodeUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"valid":   true,
		"user": gin.H{
			"id":    id.AccountID,
			"email": id.Email,
			"role":  id.Role,
		},
	})
}

// --------- Account ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	acc, reactivated, err := h.register.Execute(c.Request.Context(), ucauth.RegisterInput{
		Email:    req.Email,
		Password: firstNonEmpty(req.Password, req.Senha),
		Name:     firstNonEmpty(req.Name, req.Nome),
		Phone:    firstNonEmpty(req.Phone, req.Contato),
	})
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	if reactivated {
		c.JSON(http.StatusOK, httpresp.DataResponse{
			Success: true,
			Message: "Conta reativada com sucesso.",
			Data:    dto.NewAccountView(acc),
		})
		return
	}
	httpresp.Created(c, "Usuário cadastrado com sucesso.", dto.NewAccountView(acc))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.changePassword.Execute(
		c.Request.Context(),
		middleware.UserID(c),
		req.OldPassword,
		req.NewPassword,
	); err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.Message(c, "Senha alterada com sucesso.")
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.deleteAccount.Execute(c.Request.Context(), middleware.UserID(c)); err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.Message(c, "Conta excluída com sucesso.")
}

// --------- Password reset ---------

// ForgotPassword answers the same way whether or not the email exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.forgotPassword.Execute(c.Request.Context(), req.Email)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	resp := ForgotPasswordResponse{
		Success: true,
		Message: "Se o e-mail existir, enviaremos instruções.",
	}
	if h.exposeResetToken {
		resp.DebugToken = token
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.resetPassword.Execute(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.Message(c, "Senha redefinida com sucesso.")
}
