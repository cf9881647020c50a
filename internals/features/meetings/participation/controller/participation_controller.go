package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	participationService "github.com/OVECJOE/sos/internals/features/meetings/participation/service"
	helper "github.com/OVECJOE/sos/internals/helpers"
)

type ParticipationController struct {
	DB *gorm.DB
}

func NewParticipationController(db *gorm.DB) *ParticipationController {
	return &ParticipationController{DB: db}
}

// POST /api/u/meetings/:id/confirm
func (ctrl *ParticipationController) Confirm(c *fiber.Ctx) error {
	meetingID, userID, err := ctrl.ids(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	attendee, err := participationService.ConfirmAttendance(ctrl.DB, meetingID, userID, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Attendance confirmed", attendee)
}

// POST /api/u/meetings/:id/decline
func (ctrl *ParticipationController) Decline(c *fiber.Ctx) error {
	meetingID, userID, err := ctrl.ids(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	attendee, err := participationService.DeclineAttendance(ctrl.DB, meetingID, userID, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Attendance declined", attendee)
}

// POST /api/u/meetings/:id/attend
func (ctrl *ParticipationController) Attend(c *fiber.Ctx) error {
	meetingID, userID, err := ctrl.ids(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	attendance, meetLink, err := participationService.RecordAttendance(ctrl.DB, meetingID, userID, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Attendance recorded", fiber.Map{
		"attendance": attendance,
		"redirect":   meetLink,
	})
}

func (ctrl *ParticipationController) ids(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	meetingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid meeting id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return meetingID, userID, nil
}
