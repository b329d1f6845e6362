package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProfilePending  = "pending"
	ProfileApproved = "approved"
	ProfileRejected = "rejected"
)

type TutorProfile struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TutorID      uuid.UUID `gorm:"type:uuid;not null;unique" json:"tutor_id"`
	Year         int       `gorm:"not null" json:"year"`
	GPA          float64   `gorm:"type:numeric(3,2);not null" json:"gpa"`
	ModuleCodes  []string  `gorm:"serializer:json;not null" json:"module_codes"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Availability string    `gorm:"type:text" json:"availability"`
	Status       string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	Tutor User `gorm:"foreignkey:TutorID" json:"tutor"`

	// Filled from the review store at query time, never persisted.
	AvgRating   float64 `gorm:"-" json:"avg_rating"`
	ReviewCount int64   `gorm:"-" json:"review_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *TutorProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TeachesModule reports whether code (already normalized) is in the
// profile's module set.
func (p *TutorProfile) TeachesModule(code string) bool {
	for _, m := range p.ModuleCodes {
		if m == code {
			return true
		}
	}
	return false
}
