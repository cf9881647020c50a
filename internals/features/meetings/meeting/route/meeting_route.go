package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	meetingController "github.com/OVECJOE/sos/internals/features/meetings/meeting/controller"
)

// MeetingUserRoutes: mounted under the authenticated /api/u group.
func MeetingUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := meetingController.NewMeetingController(db)

	router.Post("/meetings", ctrl.CreateMeeting)
	router.Get("/meetings", ctrl.ListMeetings)
	router.Get("/meetings/:id", ctrl.GetMeetingByID)
	router.Put("/meetings/:id", ctrl.UpdateMeeting)
}
