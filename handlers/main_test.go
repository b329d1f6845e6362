package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kamaubrian/peer_tutor/database"
	"github.com/kamaubrian/peer_tutor/models"
	"github.com/kamaubrian/peer_tutor/routes"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestApp wires the full route surface against a fresh in-memory
// database, mirroring how cmd/api/main.go assembles the app.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.TutorProfile{},
		&models.Booking{},
		&models.Review{},
	))
	database.DB = db

	app := fiber.New()
	routes.UserRoutes(app)
	routes.TutorRoutes(app)
	routes.BookingRoutes(app)
	routes.ReviewRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, raw
}

func decodeJSON(t *testing.T, raw []byte, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out))
}

func createUser(t *testing.T, name, email, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Role: role}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createApprovedProfile(t *testing.T, tutorID uuid.UUID, year int, gpa float64, modules []string) models.TutorProfile {
	t.Helper()
	profile := models.TutorProfile{
		TutorID:     tutorID,
		Year:        year,
		GPA:         gpa,
		ModuleCodes: modules,
		Status:      models.ProfileApproved,
	}
	require.NoError(t, database.DB.Create(&profile).Error)
	return profile
}

func createBooking(t *testing.T, studentID, tutorID uuid.UUID, moduleCode, status string) models.Booking {
	t.Helper()
	booking := models.Booking{
		StudentID:   studentID,
		TutorID:     tutorID,
		ModuleCode:  moduleCode,
		SessionDate: time.Now().Add(24 * time.Hour),
		Status:      status,
	}
	if status == models.BookingCompleted {
		booking.CompletedByStudent = true
		booking.CompletedByTutor = true
	}
	require.NoError(t, database.DB.Create(&booking).Error)
	return booking
}

func createReview(t *testing.T, booking models.Booking, rating int) models.Review {
	t.Helper()
	review := models.Review{
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		TutorID:   booking.TutorID,
		Rating:    rating,
	}
	require.NoError(t, database.DB.Create(&review).Error)
	return review
}
