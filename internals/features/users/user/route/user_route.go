package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "github.com/OVECJOE/sos/internals/features/users/user/controller"
)

// UserPublicRoutes: leaderboard & public profiles, no auth.
func UserPublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	router.Get("/users", ctrl.Leaderboard)
	router.Get("/users/:id", ctrl.GetUserProfile)
}

// UserUserRoutes: mounted under the authenticated /api/u group.
func UserUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	router.Get("/users/me", ctrl.Me)
}
