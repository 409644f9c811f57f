package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucauth "github.com/BruksfildServices01/barber-booking/internal/usecase/auth"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type Deps struct {
	DB         *gorm.DB
	Config     *config.Config
	Log        *zap.Logger
	Issuer     *auth.Issuer
	Audit      *audit.Dispatcher
	Photos     *storage.Photos
	LoginLimit middleware.Counter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	locker := domain.NewSlotLocker()

	var checkDomain ucauth.EmailChecker
	if cfg.EmailDomainCheck {
		checkDomain = validators.NewDomainChecker(nil, 0).IsEmailDomainValid
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accountRepo, d.Issuer, d.Audit, d.Log, handlers.AuthHandlerConfig{
		TTLs: ucauth.TokenTTLs{
			Access:  cfg.AccessTokenTTL,
			Legacy:  cfg.LegacyTokenTTL,
			Refresh: cfg.RefreshTokenTTL,
			Reset:   cfg.ResetTokenTTL,
		},
		CheckEmailDomain: checkDomain,
		ExposeResetToken: !cfg.IsProduction(),
	})
	userHandler := handlers.NewUserHandler(accountRepo, d.Photos, d.Audit, cfg.SeedAdminEmail)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentRepo, locker, d.Audit, d.Log, nil)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	barberHandler := handlers.NewBarberHandler(d.DB, d.Photos)
	establishmentHandler := handlers.NewEstablishmentHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	healthHandler := handlers.NewHealthHandler(d.DB)

	requireAuth := middleware.RequireAuth(d.Issuer, accountRepo)
	requireAdmin := middleware.RequireAdmin()

	// ======================================================
	// PLATFORM
	// ======================================================
	r.GET("/health", healthHandler.Health)

	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, httperr.CodeNotFound, "Rota não encontrada.")
	})

	api := r.Group("/api")
	api.GET("/health", healthHandler.Health)

	// ------------------------------
	// AUTH
	// ------------------------------
	api.POST("/login",
		middleware.RateLimit(d.LoginLimit, middleware.RateLimitConfig{
			Prefix: "login",
			Limit:  cfg.LoginRateLimit,
		}),
		authHandler.Login,
	)

	authAPI := api.Group("/auth")
	{
		authAPI.POST("/login", authHandler.LegacyLogin)
		authAPI.POST("/register", authHandler.Register)
		authAPI.POST("/refresh", authHandler.Refresh)
		authAPI.POST("/validate-token", authHandler.ValidateToken)
		authAPI.POST("/forgot-password", authHandler.ForgotPassword)
		authAPI.POST("/reset-password", authHandler.ResetPassword)

		authAPI.POST("/logout", requireAuth, authHandler.Logout)
		authAPI.GET("/validate", requireAuth, authHandler.Validate)
		authAPI.PUT("/change-password", requireAuth, authHandler.ChangePassword)
		authAPI.DELETE("/profile", requireAuth, authHandler.DeleteAccount)
	}

	// ------------------------------
	// PROFILE & USERS
	// ------------------------------
	api.GET("/profile", requireAuth, userHandler.GetMe)
	api.PUT("/profile", requireAuth, userHandler.UpdateProfile)

	users := api.Group("/users", requireAuth)
	{
		users.GET("/me", userHandler.GetMe)
		users.PUT("/me", userHandler.UpdateMe)

		usersAdmin := users.Group("/admin", requireAdmin)
		usersAdmin.GET("", userHandler.AdminList)
		usersAdmin.PUT("/:id", userHandler.AdminUpdate)
		usersAdmin.PUT("/:id/password", userHandler.AdminSetPassword)
	}

	// ------------------------------
	// CATALOG
	// ------------------------------
	services := api.Group("/services")
	{
		services.GET("", serviceHandler.List)

		servicesAdmin := services.Group("/admin", requireAuth, requireAdmin)
		servicesAdmin.GET("", serviceHandler.ListAll)
		servicesAdmin.POST("", serviceHandler.Create)
		servicesAdmin.PUT("/:id", serviceHandler.Update)
		servicesAdmin.DELETE("/:id", serviceHandler.Delete)
	}

	barbers := api.Group("/barbers")
	{
		barbers.GET("", barberHandler.List)
		barbers.GET("/:id", barberHandler.Get)

		barbersAdmin := barbers.Group("/admin", requireAuth, requireAdmin)
		barbersAdmin.GET("/barbers", barberHandler.ListAll)
		barbersAdmin.POST("", barberHandler.Create)
		barbersAdmin.PUT("/:id", barberHandler.Update)
		barbersAdmin.DELETE("/:id", barberHandler.Delete)
		barbersAdmin.POST("/:id/photo", barberHandler.UploadPhoto)
	}

	establishments := api.Group("/establishments")
	{
		establishments.GET("", establishmentHandler.List)
		establishments.GET("/:id", establishmentHandler.Get)

		establishmentsAdmin := establishments.Group("/admin", requireAuth, requireAdmin)
		establishmentsAdmin.POST("", establishmentHandler.Create)
		establishmentsAdmin.PUT("/:id", establishmentHandler.Update)
		establishmentsAdmin.DELETE("/:id", establishmentHandler.Delete)
	}

	// ------------------------------
	// APPOINTMENTS
	// ------------------------------
	appointments := api.Group("/appointments", requireAuth)
	{
		appointments.GET("", appointmentHandler.List)
		appointments.GET("/user/:userId", appointmentHandler.ListByUser)
		appointments.GET("/available-slots", appointmentHandler.AvailableSlots)
		appointments.POST("", appointmentHandler.Create)
		appointments.PUT("/:id/cancel", appointmentHandler.Cancel)
		appointments.PUT("/:id/status", appointmentHandler.SetStatus)
		appointments.PUT("/:id", appointmentHandler.Update)
		appointments.DELETE("/:id", appointmentHandler.Delete)

		appointmentsAdmin := appointments.Group("/admin", requireAdmin)
		appointmentsAdmin.GET("/appointments", appointmentHandler.ListAdmin)
		appointmentsAdmin.PUT("/appointments/:id", appointmentHandler.Update)
		appointmentsAdmin.PUT("/:id/status", appointmentHandler.SetStatus)
		appointmentsAdmin.DELETE("/appointments/:id", appointmentHandler.Delete)
	}

	// ------------------------------
	// AUDIT
	// ------------------------------
	api.GET("/audit-logs", requireAuth, requireAdmin, auditLogsHandler.List)
}
