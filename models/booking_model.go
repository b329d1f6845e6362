package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
)

type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	TutorID     uuid.UUID `gorm:"type:uuid;not null" json:"tutor_id"`
	ModuleCode  string    `gorm:"size:20;not null" json:"module_code"`
	SessionDate time.Time `gorm:"not null" json:"session_date"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Remarks     string    `gorm:"type:text" json:"remarks"`

	CompletedByStudent bool `gorm:"not null;default:false" json:"completed_by_student"`
	CompletedByTutor   bool `gorm:"not null;default:false" json:"completed_by_tutor"`

	Student User `gorm:"foreignkey:StudentID" json:"student"`
	Tutor   User `gorm:"foreignkey:TutorID" json:"tutor"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
