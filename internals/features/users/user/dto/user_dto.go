package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
)

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"user_name"`
	Email       string    `json:"email"`
	Image       *string   `json:"image,omitempty"`
	SocialScore int       `json:"social_score"`
	ScoreRatio  float64   `json:"score_ratio"`
	Credits     int       `json:"credits"`
	IsOrganizer bool      `json:"is_organizer"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserStats are derivable by scanning attendee/attendance history;
// the stored score is just a cache of these numbers.
type UserStats struct {
	TotalMeetings     int `json:"total_meetings"`
	AttendedMeetings  int `json:"attended_meetings"`
	ConfirmedMeetings int `json:"confirmed_meetings"`
	AttendanceRate    int `json:"attendance_rate"`
	ConfirmationRate  int `json:"confirmation_rate"`
}

type UserProfileResponse struct {
	UserResponse
	Stats UserStats `json:"stats"`
}

type LeaderboardEntry struct {
	ID            uuid.UUID `json:"id"`
	UserName      string    `json:"user_name"`
	Email         string    `json:"email"`
	Image         *string   `json:"image,omitempty"`
	SocialScore   int       `json:"social_score"`
	ScoreRatio    float64   `json:"score_ratio"`
	TotalMeetings int       `json:"total_meetings"`
	Rank          int       `json:"rank"`
}

func ToUserResponse(u *userModel.UserModel, scoreRatio float64) UserResponse {
	return UserResponse{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		Image:       u.Image,
		SocialScore: u.SocialScore,
		ScoreRatio:  scoreRatio,
		Credits:     u.Credits,
		IsOrganizer: u.IsOrganizer,
		CreatedAt:   u.CreatedAt,
	}
}
