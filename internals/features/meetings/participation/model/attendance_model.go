package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: attendances
========================= */

// AttendanceModel records actual presence. One row per (meeting, user);
// joining a meeting twice updates the same row (upsert on the unique index).
type AttendanceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_id" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_meeting_user;column:attendance_meeting_id" json:"meeting_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_meeting_user;column:attendance_user_id" json:"user_id"`

	AttendedAt time.Time  `gorm:"not null;column:attendance_attended_at" json:"attended_at"`
	LeftAt     *time.Time `gorm:"column:attendance_left_at" json:"left_at,omitempty"`
	Duration   *int       `gorm:"column:attendance_duration" json:"duration,omitempty"`
	WasPresent bool       `gorm:"not null;default:true;column:attendance_was_present" json:"was_present"`
}

func (AttendanceModel) TableName() string {
	return "attendances"
}

func (a *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
