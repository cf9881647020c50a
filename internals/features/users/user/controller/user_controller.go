package controller

import (
	"errors"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	participationModel "github.com/OVECJOE/sos/internals/features/meetings/participation/model"
	scoreService "github.com/OVECJOE/sos/internals/features/scoring/score/service"
	"github.com/OVECJOE/sos/internals/features/users/user/dto"
	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
	helper "github.com/OVECJOE/sos/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/public/users?page=&per_page=&q=
// Public leaderboard, ordered by social score.
func (ctrl *UserController) Leaderboard(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ctrl.DB.Model(&userModel.UserModel{}).Where("user_is_active = ?", true)
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(user_email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []userModel.UserModel
	if err := q.Order("user_social_score DESC, user_created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for i := range users {
		u := &users[i]
		var totalMeetings int64
		if err := ctrl.DB.Model(&participationModel.AttendeeModel{}).
			Where("attendee_user_id = ?", u.ID).
			Count(&totalMeetings).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute stats")
		}
		entries = append(entries, dto.LeaderboardEntry{
			ID:            u.ID,
			UserName:      u.UserName,
			Email:         u.Email,
			Image:         u.Image,
			SocialScore:   u.SocialScore,
			ScoreRatio:    scoreService.ScoreRatio(u.SocialScore),
			TotalMeetings: int(totalMeetings),
			Rank:          paging.Offset + i + 1,
		})
	}

	return helper.JsonList(c, "OK", entries, helper.BuildPagination(total, paging, len(entries)))
}

// GET /api/public/users/:id — public profile with derived stats.
func (ctrl *UserController) GetUserProfile(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	stats, err := ctrl.computeStats(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}

	return helper.JsonOK(c, "OK", dto.UserProfileResponse{
		UserResponse: dto.ToUserResponse(&user, scoreService.ScoreRatio(user.SocialScore)),
		Stats:        stats,
	})
}

// GET /api/u/users/me — the authenticated user's own record.
func (ctrl *UserController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	stats, err := ctrl.computeStats(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}

	return helper.JsonOK(c, "OK", dto.UserProfileResponse{
		UserResponse: dto.ToUserResponse(&user, scoreService.ScoreRatio(user.SocialScore)),
		Stats:        stats,
	})
}

func (ctrl *UserController) computeStats(userID uuid.UUID) (dto.UserStats, error) {
	var totalMeetings, confirmedMeetings, attendedMeetings int64

	if err := ctrl.DB.Model(&participationModel.AttendeeModel{}).
		Where("attendee_user_id = ?", userID).
		Count(&totalMeetings).Error; err != nil {
		return dto.UserStats{}, err
	}
	if err := ctrl.DB.Model(&participationModel.AttendeeModel{}).
		Where("attendee_user_id = ? AND attendee_status = ?", userID, participationModel.AttendeeStatusConfirmed).
		Count(&confirmedMeetings).Error; err != nil {
		return dto.UserStats{}, err
	}
	if err := ctrl.DB.Model(&participationModel.AttendanceModel{}).
		Where("attendance_user_id = ?", userID).
		Count(&attendedMeetings).Error; err != nil {
		return dto.UserStats{}, err
	}

	stats := dto.UserStats{
		TotalMeetings:     int(totalMeetings),
		AttendedMeetings:  int(attendedMeetings),
		ConfirmedMeetings: int(confirmedMeetings),
	}
	if totalMeetings > 0 {
		stats.AttendanceRate = int(math.Round(float64(attendedMeetings) / float64(totalMeetings) * 100))
		stats.ConfirmationRate = int(math.Round(float64(confirmedMeetings) / float64(totalMeetings) * 100))
	}
	return stats, nil
}
