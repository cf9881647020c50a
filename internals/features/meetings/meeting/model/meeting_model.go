package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
========================= */

type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "SCHEDULED"
	MeetingStatusActive    MeetingStatus = "ACTIVE"
	MeetingStatusCompleted MeetingStatus = "COMPLETED"
	MeetingStatusCancelled MeetingStatus = "CANCELLED"
)

// Score penalty bounds, enforced at the creation boundary.
const (
	ScorePenaltyMin     = 5
	ScorePenaltyMax     = 100
	ScorePenaltyDefault = 25
)

/* =========================
   Model: meetings
========================= */

type MeetingModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;column:meeting_id" json:"id"`
	OrganizerID uuid.UUID `gorm:"type:uuid;not null;index;column:meeting_organizer_id" json:"organizer_id"`

	Title          string  `gorm:"size:100;not null;column:meeting_title" json:"title"`
	Description    *string `gorm:"type:text;column:meeting_description" json:"description,omitempty"`
	GoogleMeetLink string  `gorm:"type:text;not null;column:meeting_google_meet_link" json:"google_meet_link"`
	ShareableLink  string  `gorm:"size:64;unique;not null;column:meeting_shareable_link" json:"shareable_link"`

	ScheduledStart       time.Time `gorm:"not null;column:meeting_scheduled_start" json:"scheduled_start"`
	ScheduledEnd         time.Time `gorm:"not null;column:meeting_scheduled_end" json:"scheduled_end"`
	ConfirmationDeadline time.Time `gorm:"not null;column:meeting_confirmation_deadline" json:"confirmation_deadline"`

	ScorePenalty int           `gorm:"not null;default:25;column:meeting_score_penalty" json:"score_penalty"`
	Status       MeetingStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';column:meeting_status" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:meeting_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:meeting_updated_at" json:"updated_at"`
}

func (MeetingModel) TableName() string {
	return "meetings"
}

func (m *MeetingModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.ScorePenalty == 0 {
		m.ScorePenalty = ScorePenaltyDefault
	}
	return nil
}
