package controller

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OVECJOE/sos/internals/features/meetings/meeting/dto"
	meetingModel "github.com/OVECJOE/sos/internals/features/meetings/meeting/model"
	participationModel "github.com/OVECJOE/sos/internals/features/meetings/participation/model"
	creditModel "github.com/OVECJOE/sos/internals/features/payment/credits/model"
	scoreService "github.com/OVECJOE/sos/internals/features/scoring/score/service"
	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
	helper "github.com/OVECJOE/sos/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */

type MeetingController struct {
	DB *gorm.DB
}

func NewMeetingController(db *gorm.DB) *MeetingController {
	return &MeetingController{DB: db}
}

// POST /api/u/meetings
// Costs one credit: the deduction, the meeting row, and the ledger entry
// commit in a single transaction.
func (ctrl *MeetingController) CreateMeeting(c *fiber.Ctx) error {
	organizerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.CreateMeetingRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := body.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := scoreService.ValidateSchedule(body.ScheduledStart, body.ScheduledEnd, body.ConfirmationDeadline); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	meeting := body.ToModel(organizerID, generateShareableLink())

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&userModel.UserModel{}).
			Where("user_id = ? AND user_credits >= 1", organizerID).
			Update("user_credits", gorm.Expr("user_credits - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Insufficient credits")
		}

		if err := tx.Create(meeting).Error; err != nil {
			return err
		}

		ledger := creditModel.TransactionModel{
			UserID:      organizerID,
			MeetingID:   &meeting.ID,
			Type:        creditModel.TransactionTypeMeetingCost,
			Amount:      -1,
			Description: fmt.Sprintf("Meeting created: %s", meeting.Title),
		}
		return tx.Create(&ledger).Error
	})
	if err != nil {
		log.Println("[ERROR] Failed to create meeting:", err)
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Meeting created", dto.FromModel(meeting, nil))
}

// GET /api/u/meetings?page=&per_page=&status=&organizer_id=
func (ctrl *MeetingController) ListMeetings(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ctrl.DB.Model(&meetingModel.MeetingModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("meeting_status = ?", status)
	}
	if organizer := c.Query("organizer_id"); organizer != "" {
		id, err := uuid.Parse(organizer)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid organizer_id")
		}
		q = q.Where("meeting_organizer_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count meetings")
	}

	var meetings []meetingModel.MeetingModel
	if err := q.Order("meeting_scheduled_start DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&meetings).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch meetings")
	}

	items := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		items = append(items, dto.FromModel(&meetings[i], nil))
	}

	return helper.JsonList(c, "OK", items, helper.BuildPagination(total, paging, len(items)))
}

// GET /api/u/meetings/:id — detail with attendees & attendances
func (ctrl *MeetingController) GetMeetingByID(c *fiber.Ctx) error {
	meetingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid meeting id")
	}

	var meeting meetingModel.MeetingModel
	if err := ctrl.DB.First(&meeting, "meeting_id = ?", meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Meeting not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch meeting")
	}

	organizer, _ := ctrl.organizerLite(meeting.OrganizerID)

	var attendees []participationModel.AttendeeModel
	if err := ctrl.DB.Where("attendee_meeting_id = ?", meetingID).Find(&attendees).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendees")
	}
	var attendances []participationModel.AttendanceModel
	if err := ctrl.DB.Where("attendance_meeting_id = ?", meetingID).Find(&attendances).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendances")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"meeting":     dto.FromModel(&meeting, organizer),
		"attendees":   attendees,
		"attendances": attendances,
	})
}

// PUT /api/u/meetings/:id — organizer only
func (ctrl *MeetingController) UpdateMeeting(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	meetingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid meeting id")
	}

	var meeting meetingModel.MeetingModel
	if err := ctrl.DB.First(&meeting, "meeting_id = ?", meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Meeting not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch meeting")
	}
	if meeting.OrganizerID != callerID {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the organizer can update the meeting")
	}

	var body dto.UpdateMeetingRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := body.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	changes := body.Changes()
	if len(changes) == 0 {
		return helper.JsonUpdated(c, "Nothing to update", dto.FromModel(&meeting, nil))
	}
	if err := ctrl.DB.Model(&meeting).Updates(changes).Error; err != nil {
		log.Println("[ERROR] Failed to update meeting:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update meeting")
	}

	return helper.JsonUpdated(c, "Meeting updated", dto.FromModel(&meeting, nil))
}

/* ========================================================
   Internals
======================================================== */

func (ctrl *MeetingController) organizerLite(id uuid.UUID) (*dto.OrganizerLite, error) {
	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dto.OrganizerLite{ID: user.ID, Name: user.UserName, Email: user.Email, Image: user.Image}, nil
}

func generateShareableLink() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
