package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	participationController "github.com/OVECJOE/sos/internals/features/meetings/participation/controller"
)

// ParticipationUserRoutes: mounted under the authenticated /api/u group.
func ParticipationUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := participationController.NewParticipationController(db)

	router.Post("/meetings/:id/confirm", ctrl.Confirm)
	router.Post("/meetings/:id/decline", ctrl.Decline)
	router.Post("/meetings/:id/attend", ctrl.Attend)
}
