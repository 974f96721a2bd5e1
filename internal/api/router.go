package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifeflow/donation-platform/internal/api/handler"
	"github.com/lifeflow/donation-platform/internal/api/middleware"
	"github.com/lifeflow/donation-platform/internal/core/domain"
	"github.com/lifeflow/donation-platform/internal/core/ports"
	"github.com/lifeflow/donation-platform/internal/core/service"
	"github.com/lifeflow/donation-platform/internal/infrastructure/config"
	mongostore "github.com/lifeflow/donation-platform/internal/infrastructure/db/mongo"
	redisstore "github.com/lifeflow/donation-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	notifier ports.Notifier,
	events service.EventSink,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("lifeflow"))

	// --- Repositories ---
	adminRepo := mongostore.NewAdminRepository(db)
	otpRepo := mongostore.NewOTPRepository(db)
	donorRepo := mongostore.NewDonorRepository(db)
	campRepo := mongostore.NewCampRepository(db)
	apptRepo := mongostore.NewAppointmentRepository(db)
	ticketRepo := mongostore.NewTicketRepository(db)
	revoker := redisstore.NewRevocationStore(rdb)

	// --- Services ---
	adminService := service.NewAdminService(
		adminRepo, otpRepo, campRepo, ticketRepo,
		notifier, revoker,
		cfg.JWTSecret, 24*time.Hour, log,
	)
	donorService := service.NewDonorService(donorRepo, log)
	campService := service.NewCampService(campRepo, log)
	apptService := service.NewAppointmentService(apptRepo, donorRepo, campRepo, events, log)
	ticketService := service.NewTicketService(ticketRepo, log)

	// --- Handlers ---
	adminHandler := handler.NewAdminHandler(adminService, cfg.IsProduction())
	donorHandler := handler.NewDonorHandler(donorService)
	campHandler := handler.NewCampHandler(campService)
	apptHandler := handler.NewAppointmentHandler(apptService)
	ticketHandler := handler.NewTicketHandler(ticketService)

	session := middleware.Session(middleware.SessionConfig{
		Secret:   cfg.JWTSecret,
		Accounts: adminRepo,
		Revoker:  revoker,
	})

	// --- Admin routes ---
	admin := e.Group("/api/admin")
	admin.POST("/initialize", adminHandler.Initialize)
	admin.POST("/login", adminHandler.Login)
	admin.POST("/verify-otp", adminHandler.VerifyOTP)
	admin.POST("/resend-otp", adminHandler.ResendOTP)

	authed := admin.Group("", session)
	authed.POST("/logout", adminHandler.Logout)
	authed.GET("/profile", adminHandler.Profile)
	authed.PUT("/profile", adminHandler.UpdateProfile)
	authed.PUT("/change-password", adminHandler.ChangePassword)
	authed.GET("/all", adminHandler.ListAdmins)

	manage := authed.Group("", middleware.RequireCapability(domain.CapManageAdmins))
	manage.POST("/register", adminHandler.Register)
	manage.GET("/support-admins", adminHandler.ListSupportAdmins)
	manage.PUT("/support-admins/:id", adminHandler.UpdateSupportAdmin)
	manage.DELETE("/support-admins/:id", adminHandler.DeleteSupportAdmin)

	approve := authed.Group("", middleware.RequireCapability(domain.CapApproveRecords))
	approve.POST("/approve-user/:userId", adminHandler.ApproveUser)
	approve.POST("/approve-organizer/:organizerId", adminHandler.ApproveOrganizer)
	approve.POST("/approve-camp/:campId", adminHandler.ApproveCamp)

	support := authed.Group("", middleware.RequireCapability(domain.CapHandleTickets))
	support.POST("/support-ticket/:ticketId", adminHandler.HandleTicket)

	// --- Public routes ---
	api := e.Group("/api")
	api.POST("/donors", donorHandler.Register)
	api.GET("/donors/:id", donorHandler.Get)
	api.PUT("/donors/:id", donorHandler.Update)
	api.GET("/donors/:id/eligibility", donorHandler.Eligibility)
	api.GET("/donors/:id/appointments", apptHandler.ListByDonor)

	api.POST("/camps", campHandler.Create)
	api.GET("/camps", campHandler.List)
	api.GET("/camps/nearby", campHandler.Nearby)
	api.GET("/camps/:id", campHandler.Get)

	api.POST("/appointments", apptHandler.Book)
	api.DELETE("/appointments/:id", apptHandler.Cancel)

	api.POST("/tickets", ticketHandler.Create)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
