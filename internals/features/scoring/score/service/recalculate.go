package service

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	participationModel "github.com/OVECJOE/sos/internals/features/meetings/participation/model"
	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
)

// UpdateUserSocialScore recomputes a user's score from their full history and
// persists it. This is the on-demand full-recompute path; the penalty sweep
// applies direct clamped deltas instead (see DESIGN.md for the reconciliation
// decision). A missing user is a benign no-op: ok=false, nil error.
func UpdateUserSocialScore(db *gorm.DB, userID uuid.UUID) (int, bool, error) {
	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	var totalMeetings, confirmedMeetings, attendedMeetings int64

	if err := db.Model(&participationModel.AttendeeModel{}).
		Where("attendee_user_id = ?", userID).
		Count(&totalMeetings).Error; err != nil {
		return 0, false, err
	}
	if err := db.Model(&participationModel.AttendeeModel{}).
		Where("attendee_user_id = ? AND attendee_status = ?", userID, participationModel.AttendeeStatusConfirmed).
		Count(&confirmedMeetings).Error; err != nil {
		return 0, false, err
	}
	if err := db.Model(&participationModel.AttendanceModel{}).
		Where("attendance_user_id = ?", userID).
		Count(&attendedMeetings).Error; err != nil {
		return 0, false, err
	}

	newScore := CalculateSocialScore(int(totalMeetings), int(attendedMeetings), int(confirmedMeetings))

	if err := db.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Update("user_social_score", newScore).Error; err != nil {
		return 0, false, err
	}

	log.Printf("[INFO] recalculated social score user=%s total=%d attended=%d confirmed=%d score=%d",
		userID, totalMeetings, attendedMeetings, confirmedMeetings, newScore)
	return newScore, true, nil
}
