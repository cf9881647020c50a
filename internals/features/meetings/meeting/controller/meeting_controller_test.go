package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
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

// newTestApp wires the controller behind a stub auth layer that injects the
// given user id, the way the JWT middleware does in production.
func newTestApp(db *gorm.DB, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	})
	ctrl := NewMeetingController(db)
	app.Post("/meetings", ctrl.CreateMeeting)
	app.Get("/meetings/:id", ctrl.GetMeetingByID)
	app.Put("/meetings/:id", ctrl.UpdateMeeting)
	return app
}

func createUser(t *testing.T, db *gorm.DB, name string, credits int) *userModel.UserModel {
	t.Helper()
	user := &userModel.UserModel{
		UserName: name,
		Email:    name + "@example.com",
		Password: "irrelevant",
		Credits:  credits,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", name, err)
	}
	return user
}

func createMeetingBody() map[string]interface{} {
	start := time.Now().Add(24 * time.Hour).UTC()
	return map[string]interface{}{
		"title":                 "Weekly Sync",
		"google_meet_link":      "https://meet.google.com/abc-defg-hij",
		"scheduled_start":       start.Format(time.RFC3339),
		"scheduled_end":         start.Add(time.Hour).Format(time.RFC3339),
		"confirmation_deadline": start.Add(-2 * time.Hour).Format(time.RFC3339),
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func TestCreateMeetingSpendsOneCredit(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, "organizer", 5)
	app := newTestApp(db, organizer.ID)

	resp := postJSON(t, app, "/meetings", createMeetingBody())
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Status = %d, want 201", resp.StatusCode)
	}

	var fresh userModel.UserModel
	if err := db.First(&fresh, "user_id = ?", organizer.ID).Error; err != nil {
		t.Fatalf("Failed to reload organizer: %v", err)
	}
	if fresh.Credits != 4 {
		t.Errorf("Credits = %d, want 4", fresh.Credits)
	}

	var meetingCount int64
	db.Model(&meetingModel.MeetingModel{}).Count(&meetingCount)
	if meetingCount != 1 {
		t.Errorf("Meeting count = %d, want 1", meetingCount)
	}

	var ledger creditModel.TransactionModel
	if err := db.First(&ledger, "transaction_type = ?", creditModel.TransactionTypeMeetingCost).Error; err != nil {
		t.Fatalf("MEETING_COST ledger entry missing: %v", err)
	}
	if ledger.Amount != -1 || ledger.UserID != organizer.ID {
		t.Errorf("Ledger entry amount=%d user=%s, want -1/%s", ledger.Amount, ledger.UserID, organizer.ID)
	}
}

func TestCreateMeetingInsufficientCredits(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, "broke", 0)
	app := newTestApp(db, organizer.ID)

	resp := postJSON(t, app, "/meetings", createMeetingBody())
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", resp.StatusCode)
	}

	// nothing committed
	var meetingCount, ledgerCount int64
	db.Model(&meetingModel.MeetingModel{}).Count(&meetingCount)
	db.Model(&creditModel.TransactionModel{}).Count(&ledgerCount)
	if meetingCount != 0 || ledgerCount != 0 {
		t.Errorf("Rolled-back create left rows behind: meetings=%d ledger=%d", meetingCount, ledgerCount)
	}
}

func TestCreateMeetingRejectsBadSchedule(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, "organizer", 5)
	app := newTestApp(db, organizer.ID)

	// end before start
	body := createMeetingBody()
	body["scheduled_end"] = body["scheduled_start"]
	resp := postJSON(t, app, "/meetings", body)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Inverted schedule: status = %d, want 400", resp.StatusCode)
	}

	// deadline after start
	body = createMeetingBody()
	start, _ := time.Parse(time.RFC3339, body["scheduled_start"].(string))
	body["confirmation_deadline"] = start.Add(time.Minute).Format(time.RFC3339)
	resp = postJSON(t, app, "/meetings", body)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Late deadline: status = %d, want 400", resp.StatusCode)
	}

	// schedule errors must not burn a credit
	var fresh userModel.UserModel
	if err := db.First(&fresh, "user_id = ?", organizer.ID).Error; err != nil {
		t.Fatalf("Failed to reload organizer: %v", err)
	}
	if fresh.Credits != 5 {
		t.Errorf("Credits = %d after rejected creates, want 5", fresh.Credits)
	}
}

func TestUpdateMeetingOrganizerOnly(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, "organizer", 5)
	stranger := createUser(t, db, "stranger", 5)

	app := newTestApp(db, organizer.ID)
	resp := postJSON(t, app, "/meetings", createMeetingBody())
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Create failed with status %d", resp.StatusCode)
	}
	var meeting meetingModel.MeetingModel
	if err := db.First(&meeting).Error; err != nil {
		t.Fatalf("Failed to load created meeting: %v", err)
	}

	update := map[string]interface{}{"title": "Renamed Sync"}
	raw, _ := json.Marshal(update)

	strangerApp := newTestApp(db, stranger.ID)
	req := httptest.NewRequest(http.MethodPut, "/meetings/"+meeting.ID.String(), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := strangerApp.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("Stranger update: status = %d, want 403", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPut, "/meetings/"+meeting.ID.String(), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Organizer update: status = %d, want 200", resp.StatusCode)
	}

	if err := db.First(&meeting, "meeting_id = ?", meeting.ID).Error; err != nil {
		t.Fatalf("Failed to reload meeting: %v", err)
	}
	if meeting.Title != "Renamed Sync" {
		t.Errorf("Title = %q, want %q", meeting.Title, "Renamed Sync")
	}
}
