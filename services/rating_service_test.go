package services_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/kamaubrian/peer_tutor/models"
	"github.com/kamaubrian/peer_tutor/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Booking{}, &models.Review{}))
	return db
}

func seedReviews(t *testing.T, db *gorm.DB, tutorID uuid.UUID, ratings []int) {
	t.Helper()
	studentID := uuid.New()
	for _, rating := range ratings {
		booking := models.Booking{
			StudentID:          studentID,
			TutorID:            tutorID,
			ModuleCode:         "CS101",
			SessionDate:        time.Now(),
			Status:             models.BookingCompleted,
			CompletedByStudent: true,
			CompletedByTutor:   true,
		}
		require.NoError(t, db.Create(&booking).Error)
		require.NoError(t, db.Create(&models.Review{
			BookingID: booking.ID,
			StudentID: studentID,
			TutorID:   tutorID,
			Rating:    rating,
		}).Error)
	}
}

func TestGetTutorStats(t *testing.T) {
	t.Run("Mean", func(t *testing.T) {
		db := newTestDB(t)
		tutorID := uuid.New()
		seedReviews(t, db, tutorID, []int{5, 4, 3})

		stats, err := services.GetTutorStats(db, tutorID)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, stats.AvgRating, 0.001)
		assert.EqualValues(t, 3, stats.ReviewCount)
	})

	t.Run("RoundsToTwoDecimals", func(t *testing.T) {
		db := newTestDB(t)
		tutorID := uuid.New()
		seedReviews(t, db, tutorID, []int{3, 3, 4})

		stats, err := services.GetTutorStats(db, tutorID)
		require.NoError(t, err)
		assert.InDelta(t, 3.33, stats.AvgRating, 0.001)
	})

	t.Run("NoReviews", func(t *testing.T) {
		db := newTestDB(t)

		stats, err := services.GetTutorStats(db, uuid.New())
		require.NoError(t, err)
		assert.Zero(t, stats.AvgRating)
		assert.Zero(t, stats.ReviewCount)
	})
}

func TestGetAllTutorStats(t *testing.T) {
	db := newTestDB(t)
	tutorA := uuid.New()
	tutorB := uuid.New()
	seedReviews(t, db, tutorA, []int{5, 4})
	seedReviews(t, db, tutorB, []int{2})

	stats, err := services.GetAllTutorStats(db)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.InDelta(t, 4.5, stats[tutorA].AvgRating, 0.001)
	assert.EqualValues(t, 2, stats[tutorA].ReviewCount)
	assert.InDelta(t, 2.0, stats[tutorB].AvgRating, 0.001)
	assert.EqualValues(t, 1, stats[tutorB].ReviewCount)

	_, ok := stats[uuid.New()]
	assert.False(t, ok)
}
