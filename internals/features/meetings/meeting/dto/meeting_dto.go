package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	meetingModel "github.com/OVECJOE/sos/internals/features/meetings/meeting/model"
)

var validate = validator.New()

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateMeetingRequest — creating a meeting costs one credit.
type CreateMeetingRequest struct {
	Title                string    `json:"title" validate:"required,min=3,max=100"`
	Description          *string   `json:"description,omitempty"`
	GoogleMeetLink       string    `json:"google_meet_link" validate:"required,url"`
	ScheduledStart       time.Time `json:"scheduled_start" validate:"required"`
	ScheduledEnd         time.Time `json:"scheduled_end" validate:"required"`
	ConfirmationDeadline time.Time `json:"confirmation_deadline" validate:"required"`
	ScorePenalty         *int      `json:"score_penalty,omitempty" validate:"omitempty,min=5,max=100"`
}

func (r *CreateMeetingRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.GoogleMeetLink = strings.TrimSpace(r.GoogleMeetLink)
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		r.Description = &v
	}
}

func (r *CreateMeetingRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreateMeetingRequest) ToModel(organizerID uuid.UUID, shareableLink string) *meetingModel.MeetingModel {
	m := &meetingModel.MeetingModel{
		OrganizerID:          organizerID,
		Title:                r.Title,
		Description:          r.Description,
		GoogleMeetLink:       r.GoogleMeetLink,
		ShareableLink:        shareableLink,
		ScheduledStart:       r.ScheduledStart,
		ScheduledEnd:         r.ScheduledEnd,
		ConfirmationDeadline: r.ConfirmationDeadline,
		ScorePenalty:         meetingModel.ScorePenaltyDefault,
		Status:               meetingModel.MeetingStatusScheduled,
	}
	if r.ScorePenalty != nil {
		m.ScorePenalty = *r.ScorePenalty
	}
	return m
}

// UpdateMeetingRequest — partial update (pointers distinguish omit vs null).
// Schedule fields stay immutable once the meeting has ended; controllers
// enforce that with the lifecycle gate.
type UpdateMeetingRequest struct {
	Title          *string                     `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description    *string                     `json:"description,omitempty"`
	GoogleMeetLink *string                     `json:"google_meet_link,omitempty" validate:"omitempty,url"`
	Status         *meetingModel.MeetingStatus `json:"status,omitempty" validate:"omitempty,oneof=SCHEDULED ACTIVE COMPLETED CANCELLED"`
}

func (r *UpdateMeetingRequest) Normalize() {
	if r.Title != nil {
		v := strings.TrimSpace(*r.Title)
		r.Title = &v
	}
	if r.GoogleMeetLink != nil {
		v := strings.TrimSpace(*r.GoogleMeetLink)
		r.GoogleMeetLink = &v
	}
}

func (r *UpdateMeetingRequest) Validate() error {
	return validate.Struct(r)
}

func (r *UpdateMeetingRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.Title != nil {
		changes["meeting_title"] = *r.Title
	}
	if r.Description != nil {
		changes["meeting_description"] = *r.Description
	}
	if r.GoogleMeetLink != nil {
		changes["meeting_google_meet_link"] = *r.GoogleMeetLink
	}
	if r.Status != nil {
		changes["meeting_status"] = *r.Status
	}
	return changes
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type OrganizerLite struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Image *string   `json:"image,omitempty"`
}

type MeetingResponse struct {
	ID                   uuid.UUID                 `json:"id"`
	Title                string                    `json:"title"`
	Description          *string                   `json:"description,omitempty"`
	GoogleMeetLink       string                    `json:"google_meet_link"`
	ShareableLink        string                    `json:"shareable_link"`
	ScheduledStart       time.Time                 `json:"scheduled_start"`
	ScheduledEnd         time.Time                 `json:"scheduled_end"`
	ConfirmationDeadline time.Time                 `json:"confirmation_deadline"`
	ScorePenalty         int                       `json:"score_penalty"`
	Status               meetingModel.MeetingStatus `json:"status"`
	Organizer            *OrganizerLite            `json:"organizer,omitempty"`
	CreatedAt            time.Time                 `json:"created_at"`
}

func FromModel(m *meetingModel.MeetingModel, organizer *OrganizerLite) MeetingResponse {
	return MeetingResponse{
		ID:                   m.ID,
		Title:                m.Title,
		Description:          m.Description,
		GoogleMeetLink:       m.GoogleMeetLink,
		ShareableLink:        m.ShareableLink,
		ScheduledStart:       m.ScheduledStart,
		ScheduledEnd:         m.ScheduledEnd,
		ConfirmationDeadline: m.ConfirmationDeadline,
		ScorePenalty:         m.ScorePenalty,
		Status:               m.Status,
		Organizer:            organizer,
		CreatedAt:            m.CreatedAt,
	}
}
