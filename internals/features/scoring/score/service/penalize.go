package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	meetingModel "github.com/OVECJOE/sos/internals/features/meetings/meeting/model"
	participationModel "github.com/OVECJOE/sos/internals/features/meetings/participation/model"
	creditModel "github.com/OVECJOE/sos/internals/features/payment/credits/model"
	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
)

type PenalizedUser struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}

type PenalizeResult struct {
	Penalized []PenalizedUser `json:"penalized"`
	Count     int             `json:"count"`
}

// PenalizeNoShows sweeps a finished meeting: every CONFIRMED attendee without
// an attendance record loses meeting.ScorePenalty points (floor 300) and
// transitions to NO_SHOW.
//
// Rules:
//   - missing meeting → empty result, nil error (benign no-op)
//   - caller must be the organizer, and the meeting must have ended
//   - each user's (status CAS, score decrement, ledger entry) runs in one DB
//     transaction; the CAS on status CONFIRMED makes re-runs and concurrent
//     sweeps idempotent
//   - the sweep itself is best-effort across users: one user's failure does
//     not roll back penalties already applied to others
func PenalizeNoShows(db *gorm.DB, meetingID, callerID uuid.UUID, now time.Time) (PenalizeResult, error) {
	result := PenalizeResult{Penalized: []PenalizedUser{}}

	var meeting meetingModel.MeetingModel
	if err := db.First(&meeting, "meeting_id = ?", meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return result, err
	}

	if meeting.OrganizerID != callerID {
		return result, fiber.NewError(fiber.StatusForbidden, "Only the organizer can penalize no-shows")
	}
	if !CanPenalize(&meeting, now) {
		return result, fiber.NewError(fiber.StatusBadRequest, "Meeting has not ended yet")
	}

	var confirmed []participationModel.AttendeeModel
	if err := db.
		Where("attendee_meeting_id = ? AND attendee_status = ?", meetingID, participationModel.AttendeeStatusConfirmed).
		Find(&confirmed).Error; err != nil {
		return result, err
	}

	var attendances []participationModel.AttendanceModel
	if err := db.Where("attendance_meeting_id = ?", meetingID).Find(&attendances).Error; err != nil {
		return result, err
	}
	attendedUserIDs := make(map[uuid.UUID]struct{}, len(attendances))
	for _, a := range attendances {
		attendedUserIDs[a.UserID] = struct{}{}
	}

	for _, attendee := range confirmed {
		if _, ok := attendedUserIDs[attendee.UserID]; ok {
			continue
		}

		var penalizedUser *PenalizedUser
		err := db.Transaction(func(tx *gorm.DB) error {
			// CAS: transition only if still CONFIRMED. Zero rows means another
			// sweep got here first; skip without penalizing.
			res := tx.Model(&participationModel.AttendeeModel{}).
				Where("attendee_id = ? AND attendee_status = ?", attendee.ID, participationModel.AttendeeStatusConfirmed).
				Update("attendee_status", participationModel.AttendeeStatusNoShow)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}

			var user userModel.UserModel
			if err := tx.First(&user, "user_id = ?", attendee.UserID).Error; err != nil {
				return err
			}

			before := user.SocialScore
			after := ClampScore(before - meeting.ScorePenalty)
			if err := tx.Model(&userModel.UserModel{}).
				Where("user_id = ?", user.ID).
				Update("user_social_score", after).Error; err != nil {
				return err
			}

			meta, _ := sonic.Marshal(fiber.Map{
				"attendee_id":  attendee.ID,
				"score_before": before,
				"score_after":  after,
			})
			ledger := creditModel.TransactionModel{
				UserID:      user.ID,
				MeetingID:   &meeting.ID,
				Type:        creditModel.TransactionTypeScorePenalty,
				Amount:      -meeting.ScorePenalty,
				Description: fmt.Sprintf("No-show penalty: %s", meeting.Title),
				Metadata:    meta,
			}
			if err := tx.Create(&ledger).Error; err != nil {
				return err
			}

			penalizedUser = &PenalizedUser{UserID: user.ID, Name: user.UserName, Email: user.Email}
			return nil
		})
		if err != nil {
			// best-effort sweep: leave already-applied penalties intact
			log.Printf("[ERROR] penalize sweep failed for user=%s meeting=%s: %v", attendee.UserID, meetingID, err)
			continue
		}
		if penalizedUser != nil {
			result.Penalized = append(result.Penalized, *penalizedUser)
		}
	}

	result.Count = len(result.Penalized)
	return result, nil
}
