package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
========================= */

type AttendeeStatus string

const (
	AttendeeStatusInvited   AttendeeStatus = "INVITED"
	AttendeeStatusConfirmed AttendeeStatus = "CONFIRMED"
	AttendeeStatusDeclined  AttendeeStatus = "DECLINED"
	AttendeeStatusNoShow    AttendeeStatus = "NO_SHOW"
)

/* =========================
   Model: attendees
========================= */

// AttendeeModel is the (meeting, user) intent record. One row per pair.
// NO_SHOW is only ever set by the penalty sweep, never reversed by it.
type AttendeeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:attendee_id" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendees_meeting_user;column:attendee_meeting_id" json:"meeting_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendees_meeting_user;column:attendee_user_id" json:"user_id"`

	Status      AttendeeStatus `gorm:"type:varchar(20);not null;default:'INVITED';column:attendee_status" json:"status"`
	InvitedAt   time.Time      `gorm:"autoCreateTime;column:attendee_invited_at" json:"invited_at"`
	ConfirmedAt *time.Time     `gorm:"column:attendee_confirmed_at" json:"confirmed_at,omitempty"`
}

func (AttendeeModel) TableName() string {
	return "attendees"
}

func (a *AttendeeModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = AttendeeStatusInvited
	}
	return nil
}
