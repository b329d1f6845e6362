package services

import (
	"math"

	"github.com/google/uuid"
	"github.com/kamaubrian/peer_tutor/models"
	"gorm.io/gorm"
)

// TutorStats is the read-side rating rollup for one tutor. It is computed
// from the review store on every call, never persisted.
type TutorStats struct {
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

// GetTutorStats returns the mean rating (rounded to two decimals) and the
// review count for a tutor, (0, 0) when no reviews exist.
func GetTutorStats(db *gorm.DB, tutorID uuid.UUID) (TutorStats, error) {
	var row struct {
		Avg   *float64
		Total int64
	}
	err := db.Model(&models.Review{}).
		Where("tutor_id = ?", tutorID).
		Select("avg(rating) as avg, count(*) as total").
		Scan(&row).Error
	if err != nil {
		return TutorStats{}, err
	}
	if row.Avg == nil || row.Total == 0 {
		return TutorStats{}, nil
	}
	return TutorStats{AvgRating: round2(*row.Avg), ReviewCount: row.Total}, nil
}

// GetAllTutorStats computes stats for every tutor with at least one review,
// keyed by tutor user id. Tutors absent from the map have no reviews.
func GetAllTutorStats(db *gorm.DB) (map[uuid.UUID]TutorStats, error) {
	var rows []struct {
		TutorID uuid.UUID
		Avg     float64
		Total   int64
	}
	err := db.Model(&models.Review{}).
		Select("tutor_id, avg(rating) as avg, count(*) as total").
		Group("tutor_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[uuid.UUID]TutorStats, len(rows))
	for _, r := range rows {
		stats[r.TutorID] = TutorStats{AvgRating: round2(r.Avg), ReviewCount: r.Total}
	}
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
