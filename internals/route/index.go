package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	meetingRoute "github.com/OVECJOE/sos/internals/features/meetings/meeting/route"
	participationRoute "github.com/OVECJOE/sos/internals/features/meetings/participation/route"
	creditsRoute "github.com/OVECJOE/sos/internals/features/payment/credits/route"
	scoreRoute "github.com/OVECJOE/sos/internals/features/scoring/score/route"
	authRoute "github.com/OVECJOE/sos/internals/features/users/auth/route"
	userRoute "github.com/OVECJOE/sos/internals/features/users/user/route"
	"github.com/OVECJOE/sos/internals/middlewares"
	authMiddleware "github.com/OVECJOE/sos/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api", middlewares.GlobalRateLimiter())

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(api, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := api.Group("/public")
	userRoute.UserPublicRoutes(public, db)

	// Payment gateway callback; authenticated by signature, not JWT.
	creditsRoute.CreditsWebhookRoutes(api, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := api.Group("/u", authMiddleware.AuthMiddleware())
	userRoute.UserUserRoutes(private, db)
	meetingRoute.MeetingUserRoutes(private, db)
	participationRoute.ParticipationUserRoutes(private, db)
	scoreRoute.ScoreUserRoutes(private, db)
	creditsRoute.CreditsUserRoutes(private, db)
}
