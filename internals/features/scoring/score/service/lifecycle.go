package service

import (
	"time"

	meetingModel "github.com/OVECJOE/sos/internals/features/meetings/meeting/model"
	participationModel "github.com/OVECJOE/sos/internals/features/meetings/participation/model"
)

// AttendanceGraceBefore is how early a confirmed attendee may check in.
const AttendanceGraceBefore = 15 * time.Minute

/* =========================================
   Lifecycle gate — stateless predicates.
   State is derived from `now` vs the meeting
   timestamps, never stored. `now` is always
   injected so the gate is testable offline.
========================================= */

// CanConfirm reports whether a user may (re-)confirm attendance.
// att is nil when no attendee record exists yet.
func CanConfirm(m *meetingModel.MeetingModel, att *participationModel.AttendeeModel, now time.Time) bool {
	if att != nil && att.Status == participationModel.AttendeeStatusConfirmed {
		return false
	}
	return !now.After(m.ConfirmationDeadline)
}

// CanRecordAttendance reports whether the meeting is inside its active window:
// 15 minutes before scheduled start through scheduled end.
func CanRecordAttendance(m *meetingModel.MeetingModel, now time.Time) bool {
	allowedStart := m.ScheduledStart.Add(-AttendanceGraceBefore)
	return !now.Before(allowedStart) && !now.After(m.ScheduledEnd)
}

// CanPenalize reports whether the no-show sweep may run. The organizer check
// lives at the call site; this is purely the time window.
func CanPenalize(m *meetingModel.MeetingModel, now time.Time) bool {
	return now.After(m.ScheduledEnd)
}

// ValidateSchedule enforces the creation-time invariants:
// scheduledStart < scheduledEnd and confirmationDeadline <= scheduledStart.
func ValidateSchedule(start, end, deadline time.Time) error {
	if !start.Before(end) {
		return ErrScheduleInverted
	}
	if deadline.After(start) {
		return ErrDeadlineAfterStart
	}
	return nil
}
