package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	meetingModel "github.com/OVECJOE/sos/internals/features/meetings/meeting/model"
	participationModel "github.com/OVECJOE/sos/internals/features/meetings/participation/model"
	creditModel "github.com/OVECJOE/sos/internals/features/payment/credits/model"
	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A second pooled connection would see a fresh empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&meetingModel.MeetingModel{},
		&participationModel.AttendeeModel{},
		&participationModel.AttendanceModel{},
		&creditModel.TransactionModel{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, score int) *userModel.UserModel {
	t.Helper()
	user := &userModel.UserModel{
		UserName:    name,
		Email:       name + "@example.com",
		Password:    "irrelevant",
		SocialScore: score,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", name, err)
	}
	return user
}

func seedEndedMeeting(t *testing.T, db *gorm.DB, organizer *userModel.UserModel, penalty int) *meetingModel.MeetingModel {
	t.Helper()
	start := time.Now().Add(-2 * time.Hour)
	meeting := &meetingModel.MeetingModel{
		OrganizerID:          organizer.ID,
		Title:                "Weekly Sync",
		GoogleMeetLink:       "https://meet.google.com/abc-defg-hij",
		ShareableLink:        uuid.NewString(),
		ScheduledStart:       start,
		ScheduledEnd:         start.Add(time.Hour),
		ConfirmationDeadline: start.Add(-time.Hour),
		ScorePenalty:         penalty,
	}
	if err := db.Create(meeting).Error; err != nil {
		t.Fatalf("Failed to create test meeting: %v", err)
	}
	return meeting
}

func seedAttendee(t *testing.T, db *gorm.DB, meeting *meetingModel.MeetingModel, user *userModel.UserModel, status participationModel.AttendeeStatus) *participationModel.AttendeeModel {
	t.Helper()
	att := &participationModel.AttendeeModel{
		MeetingID: meeting.ID,
		UserID:    user.ID,
		Status:    status,
	}
	if err := db.Create(att).Error; err != nil {
		t.Fatalf("Failed to create test attendee: %v", err)
	}
	return att
}

func seedAttendance(t *testing.T, db *gorm.DB, meeting *meetingModel.MeetingModel, user *userModel.UserModel) {
	t.Helper()
	rec := &participationModel.AttendanceModel{
		MeetingID:  meeting.ID,
		UserID:     user.ID,
		AttendedAt: meeting.ScheduledStart,
		WasPresent: true,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("Failed to create test attendance: %v", err)
	}
}

func userScore(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", id).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	return user.SocialScore
}

func attendeeStatus(t *testing.T, db *gorm.DB, meetingID, userID uuid.UUID) participationModel.AttendeeStatus {
	t.Helper()
	var att participationModel.AttendeeModel
	if err := db.First(&att, "attendee_meeting_id = ? AND attendee_user_id = ?", meetingID, userID).Error; err != nil {
		t.Fatalf("Failed to reload attendee: %v", err)
	}
	return att.Status
}

func TestPenalizeNoShowsSweep(t *testing.T) {
	db := newTestDB(t)

	organizer := seedUser(t, db, "organizer", 800)
	present := seedUser(t, db, "present", 800)
	absent := seedUser(t, db, "absent", 800)
	undecided := seedUser(t, db, "undecided", 800)

	meeting := seedEndedMeeting(t, db, organizer, 25)
	seedAttendee(t, db, meeting, present, participationModel.AttendeeStatusConfirmed)
	seedAttendee(t, db, meeting, absent, participationModel.AttendeeStatusConfirmed)
	seedAttendee(t, db, meeting, undecided, participationModel.AttendeeStatusInvited)
	seedAttendance(t, db, meeting, present)

	result, err := PenalizeNoShows(db, meeting.ID, organizer.ID, time.Now())
	if err != nil {
		t.Fatalf("PenalizeNoShows failed: %v", err)
	}

	if result.Count != 1 || len(result.Penalized) != 1 {
		t.Fatalf("Expected exactly one penalized user, got count=%d len=%d", result.Count, len(result.Penalized))
	}
	if result.Penalized[0].UserID != absent.ID {
		t.Errorf("Penalized the wrong user: %s", result.Penalized[0].UserID)
	}

	if got := userScore(t, db, absent.ID); got != 775 {
		t.Errorf("Absent user score = %d, want 775", got)
	}
	if got := userScore(t, db, present.ID); got != 800 {
		t.Errorf("Present user score = %d, want 800 (untouched)", got)
	}
	if got := userScore(t, db, undecided.ID); got != 800 {
		t.Errorf("Invited-only user score = %d, want 800 (untouched)", got)
	}

	if got := attendeeStatus(t, db, meeting.ID, absent.ID); got != participationModel.AttendeeStatusNoShow {
		t.Errorf("Absent attendee status = %s, want NO_SHOW", got)
	}
	if got := attendeeStatus(t, db, meeting.ID, present.ID); got != participationModel.AttendeeStatusConfirmed {
		t.Errorf("Present attendee status = %s, want CONFIRMED", got)
	}
	if got := attendeeStatus(t, db, meeting.ID, undecided.ID); got != participationModel.AttendeeStatusInvited {
		t.Errorf("Invited attendee status = %s, want INVITED", got)
	}

	var ledger []creditModel.TransactionModel
	if err := db.Where("transaction_type = ?", creditModel.TransactionTypeScorePenalty).Find(&ledger).Error; err != nil {
		t.Fatalf("Failed to load ledger: %v", err)
	}
	if len(ledger) != 1 {
		t.Fatalf("Expected one SCORE_PENALTY ledger entry, got %d", len(ledger))
	}
	if ledger[0].UserID != absent.ID || ledger[0].Amount != -25 {
		t.Errorf("Ledger entry user=%s amount=%d, want user=%s amount=-25",
			ledger[0].UserID, ledger[0].Amount, absent.ID)
	}
	if ledger[0].MeetingID == nil || *ledger[0].MeetingID != meeting.ID {
		t.Errorf("Ledger entry not linked to the meeting")
	}
}

func TestPenalizeNoShowsIdempotent(t *testing.T) {
	db := newTestDB(t)

	organizer := seedUser(t, db, "organizer", 800)
	absent := seedUser(t, db, "absent", 800)
	meeting := seedEndedMeeting(t, db, organizer, 25)
	seedAttendee(t, db, meeting, absent, participationModel.AttendeeStatusConfirmed)

	if _, err := PenalizeNoShows(db, meeting.ID, organizer.ID, time.Now()); err != nil {
		t.Fatalf("First sweep failed: %v", err)
	}
	second, err := PenalizeNoShows(db, meeting.ID, organizer.ID, time.Now())
	if err != nil {
		t.Fatalf("Second sweep failed: %v", err)
	}

	if second.Count != 0 {
		t.Errorf("Second sweep penalized %d users, want 0", second.Count)
	}
	if got := userScore(t, db, absent.ID); got != 775 {
		t.Errorf("Score after double sweep = %d, want 775 (penalty applied once)", got)
	}

	var count int64
	if err := db.Model(&creditModel.TransactionModel{}).
		Where("transaction_type = ?", creditModel.TransactionTypeScorePenalty).
		Count(&count).Error; err != nil {
		t.Fatalf("Failed to count ledger entries: %v", err)
	}
	if count != 1 {
		t.Errorf("Ledger has %d SCORE_PENALTY entries, want 1", count)
	}
}

func TestPenalizeNoShowsScoreFloor(t *testing.T) {
	db := newTestDB(t)

	organizer := seedUser(t, db, "organizer", 800)
	absent := seedUser(t, db, "absent", 310)
	meeting := seedEndedMeeting(t, db, organizer, 25)
	seedAttendee(t, db, meeting, absent, participationModel.AttendeeStatusConfirmed)

	if _, err := PenalizeNoShows(db, meeting.ID, organizer.ID, time.Now()); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if got := userScore(t, db, absent.ID); got != 300 {
		t.Errorf("Score = %d, want floor 300", got)
	}
}

func TestPenalizeNoShowsForbidden(t *testing.T) {
	db := newTestDB(t)

	organizer := seedUser(t, db, "organizer", 800)
	stranger := seedUser(t, db, "stranger", 800)
	absent := seedUser(t, db, "absent", 800)
	meeting := seedEndedMeeting(t, db, organizer, 25)
	seedAttendee(t, db, meeting, absent, participationModel.AttendeeStatusConfirmed)

	_, err := PenalizeNoShows(db, meeting.ID, stranger.ID, time.Now())
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Fatalf("Expected 403 for non-organizer, got %v", err)
	}

	if got := userScore(t, db, absent.ID); got != 800 {
		t.Errorf("Score changed by a forbidden sweep: %d", got)
	}
	if got := attendeeStatus(t, db, meeting.ID, absent.ID); got != participationModel.AttendeeStatusConfirmed {
		t.Errorf("Status changed by a forbidden sweep: %s", got)
	}
}

func TestPenalizeNoShowsBeforeMeetingEnds(t *testing.T) {
	db := newTestDB(t)

	organizer := seedUser(t, db, "organizer", 800)
	meeting := seedEndedMeeting(t, db, organizer, 25)

	_, err := PenalizeNoShows(db, meeting.ID, organizer.ID, meeting.ScheduledEnd.Add(-time.Minute))
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusBadRequest {
		t.Fatalf("Expected 400 before the meeting ends, got %v", err)
	}
}

func TestPenalizeNoShowsMissingMeeting(t *testing.T) {
	db := newTestDB(t)
	caller := seedUser(t, db, "caller", 800)

	result, err := PenalizeNoShows(db, uuid.New(), caller.ID, time.Now())
	if err != nil {
		t.Fatalf("Missing meeting should be a no-op, got error: %v", err)
	}
	if result.Count != 0 || len(result.Penalized) != 0 {
		t.Errorf("Missing meeting penalized someone: %+v", result)
	}
}
