package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/brewfinder/internal/config"
	"github.com/example/brewfinder/internal/handlers"
	"github.com/example/brewfinder/internal/middleware"
	"github.com/example/brewfinder/internal/services"
	"github.com/example/brewfinder/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	st := store.NewGormStore(db)
	mailer := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	otpService := services.NewOTPService(st, mailer)
	accountService := services.NewAccountService(st, otpService, cfg.JWTSecret, cfg.TokenExpires)
	registrationService := services.NewRegistrationService(st, cfg.JWTSecret, cfg.TokenExpires)
	cafeService := services.NewCafeService(st)

	otpHandler := handlers.NewOTPHandler(otpService)
	authHandler := handlers.NewAuthHandler(accountService)
	partnerHandler := handlers.NewPartnerHandler(registrationService)
	cafeHandler := handlers.NewCafeHandler(cafeService)
	profileHandler := handlers.NewProfileHandler(accountService)

	api := app.Group("/api")

	// Passcode lifecycle
	otp := api.Group("/otp")
	otp.Post("/issue", otpHandler.Issue)
	otp.Post("/verify", otpHandler.Verify)

	// Patron auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Partner onboarding
	partners := api.Group("/partners")
	partners.Post("/register", partnerHandler.Register)

	// Cafe listing
	api.Get("/cafes", cafeHandler.List)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))
	protected.Get("/profile", profileHandler.Get)
}
