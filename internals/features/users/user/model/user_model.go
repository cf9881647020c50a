package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Social score bounds. The stored score is a cached projection of the user's
// attendance/confirmation history and always stays inside these bounds.
const (
	SocialScoreFloor   = 300
	SocialScoreCeiling = 850
	SocialScoreDefault = 800
)

// UserModel represents the users table
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"id"`
	UserName    string    `gorm:"size:100;not null;column:user_name" json:"user_name" validate:"required,min=3,max=100"`
	Email       string    `gorm:"size:255;unique;not null;column:user_email" json:"email" validate:"required,email"`
	Password    string    `gorm:"not null;column:user_password" json:"-"`
	GoogleID    *string   `gorm:"size:255;unique;column:user_google_id" json:"google_id,omitempty"`
	Image       *string   `gorm:"type:text;column:user_image" json:"image,omitempty"`
	SocialScore int       `gorm:"not null;default:800;column:user_social_score" json:"social_score"`
	Credits     int       `gorm:"not null;default:0;column:user_credits" json:"credits"`
	IsOrganizer bool      `gorm:"not null;default:true;column:user_is_organizer" json:"is_organizer"`
	IsActive    bool      `gorm:"not null;default:true;column:user_is_active" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:user_created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;column:user_updated_at" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.SocialScore == 0 {
		u.SocialScore = SocialScoreDefault
	}
	return nil
}
