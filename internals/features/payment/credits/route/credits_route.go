package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	creditsController "github.com/OVECJOE/sos/internals/features/payment/credits/controller"
)

// CreditsUserRoutes: mounted under the authenticated /api/u group.
func CreditsUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := creditsController.NewCreditsController(db)

	router.Post("/credits/checkout", ctrl.Checkout)
	router.Get("/credits/transactions", ctrl.ListTransactions)
}

// CreditsWebhookRoutes: public gateway callback, skipped by auth.
func CreditsWebhookRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := creditsController.NewCreditsController(db)

	router.Post("/credits/notification", ctrl.Notification)
}
