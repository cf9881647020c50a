package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	meetingModel "github.com/OVECJOE/sos/internals/features/meetings/meeting/model"
	participationModel "github.com/OVECJOE/sos/internals/features/meetings/participation/model"
	scoreService "github.com/OVECJOE/sos/internals/features/scoring/score/service"
)

/* =========================================
   Confirm / Decline
========================================= */

// ConfirmAttendance creates or updates the attendee record to CONFIRMED.
// A user confirming without an existing record skips INVITED entirely.
// Re-confirming an already-confirmed record is a no-op success.
func ConfirmAttendance(db *gorm.DB, meetingID, userID uuid.UUID, now time.Time) (*participationModel.AttendeeModel, error) {
	meeting, err := findMeeting(db, meetingID)
	if err != nil {
		return nil, err
	}

	var attendee participationModel.AttendeeModel
	err = db.Where("attendee_meeting_id = ? AND attendee_user_id = ?", meetingID, userID).First(&attendee).Error
	exists := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if exists && attendee.Status == participationModel.AttendeeStatusConfirmed {
		return &attendee, nil
	}
	if !scoreService.CanConfirm(meeting, attendeeOrNil(exists, &attendee), now) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Confirmation deadline has passed")
	}

	if !exists {
		attendee = participationModel.AttendeeModel{
			MeetingID:   meetingID,
			UserID:      userID,
			Status:      participationModel.AttendeeStatusConfirmed,
			ConfirmedAt: &now,
		}
		res := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attendee_meeting_id"}, {Name: "attendee_user_id"}},
			DoNothing: true,
		}).Create(&attendee)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			return &attendee, nil
		}
		// lost a concurrent create race; fall through to the update path
		if err := db.Where("attendee_meeting_id = ? AND attendee_user_id = ?", meetingID, userID).
			First(&attendee).Error; err != nil {
			return nil, err
		}
		if attendee.Status == participationModel.AttendeeStatusConfirmed {
			return &attendee, nil
		}
	}

	if err := db.Model(&participationModel.AttendeeModel{}).
		Where("attendee_id = ?", attendee.ID).
		Updates(map[string]interface{}{
			"attendee_status":       participationModel.AttendeeStatusConfirmed,
			"attendee_confirmed_at": now,
		}).Error; err != nil {
		return nil, err
	}
	attendee.Status = participationModel.AttendeeStatusConfirmed
	attendee.ConfirmedAt = &now
	return &attendee, nil
}

// DeclineAttendance marks an existing attendee DECLINED before the deadline.
// NO_SHOW is terminal and cannot be declined away.
func DeclineAttendance(db *gorm.DB, meetingID, userID uuid.UUID, now time.Time) (*participationModel.AttendeeModel, error) {
	meeting, err := findMeeting(db, meetingID)
	if err != nil {
		return nil, err
	}
	if now.After(meeting.ConfirmationDeadline) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Confirmation deadline has passed")
	}

	var attendee participationModel.AttendeeModel
	if err := db.Where("attendee_meeting_id = ? AND attendee_user_id = ?", meetingID, userID).
		First(&attendee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "You are not invited to this meeting")
		}
		return nil, err
	}
	if attendee.Status == participationModel.AttendeeStatusNoShow {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Attendee is already marked NO_SHOW")
	}

	if err := db.Model(&participationModel.AttendeeModel{}).
		Where("attendee_id = ?", attendee.ID).
		Update("attendee_status", participationModel.AttendeeStatusDeclined).Error; err != nil {
		return nil, err
	}
	attendee.Status = participationModel.AttendeeStatusDeclined
	return &attendee, nil
}

/* =========================================
   Attend
========================================= */

// RecordAttendance upserts the single attendance row for (meeting, user).
// Only valid inside the active window and only for CONFIRMED attendees.
// Returns the attendance record and the meeting link to redirect into.
func RecordAttendance(db *gorm.DB, meetingID, userID uuid.UUID, now time.Time) (*participationModel.AttendanceModel, string, error) {
	meeting, err := findMeeting(db, meetingID)
	if err != nil {
		return nil, "", err
	}

	if !scoreService.CanRecordAttendance(meeting, now) {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Meeting not active")
	}

	var attendee participationModel.AttendeeModel
	if err := db.Where("attendee_meeting_id = ? AND attendee_user_id = ?", meetingID, userID).
		First(&attendee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fiber.NewError(fiber.StatusForbidden, "Attendance requires a confirmed RSVP")
		}
		return nil, "", err
	}
	if attendee.Status != participationModel.AttendeeStatusConfirmed {
		return nil, "", fiber.NewError(fiber.StatusForbidden, "Attendance requires a confirmed RSVP")
	}

	attendance := participationModel.AttendanceModel{
		MeetingID:  meetingID,
		UserID:     userID,
		AttendedAt: now,
		WasPresent: true,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attendance_meeting_id"}, {Name: "attendance_user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"attendance_attended_at": now,
			"attendance_was_present": true,
		}),
	}).Create(&attendance).Error; err != nil {
		return nil, "", err
	}

	// re-read so the caller gets the canonical row on the update path
	if err := db.Where("attendance_meeting_id = ? AND attendance_user_id = ?", meetingID, userID).
		First(&attendance).Error; err != nil {
		return nil, "", err
	}

	return &attendance, meeting.GoogleMeetLink, nil
}

/* =========================================
   Internals
========================================= */

func findMeeting(db *gorm.DB, meetingID uuid.UUID) (*meetingModel.MeetingModel, error) {
	var meeting meetingModel.MeetingModel
	if err := db.First(&meeting, "meeting_id = ?", meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Meeting not found")
		}
		return nil, err
	}
	return &meeting, nil
}

func attendeeOrNil(exists bool, att *participationModel.AttendeeModel) *participationModel.AttendeeModel {
	if !exists {
		return nil
	}
	return att
}
