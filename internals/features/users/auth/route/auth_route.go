package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "github.com/OVECJOE/sos/internals/features/users/auth/controller"
	"github.com/OVECJOE/sos/internals/middlewares"
)

// AuthRoutes: public auth endpoints under /api/auth.
func AuthRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := router.Group("/auth")
	auth.Post("/register", middlewares.LoginRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login-google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
}
