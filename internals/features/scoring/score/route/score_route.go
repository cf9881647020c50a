package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scoreController "github.com/OVECJOE/sos/internals/features/scoring/score/controller"
)

// ScoreUserRoutes: mounted under the authenticated /api/u group.
func ScoreUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := scoreController.NewScoreController(db)

	router.Post("/meetings/:id/penalize-no-shows", ctrl.PenalizeNoShows)
	router.Post("/score/recalculate", ctrl.RecalculateMyScore)
}
