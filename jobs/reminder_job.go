package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/kamaubrian/peer_tutor/database"
	"github.com/kamaubrian/peer_tutor/models"
	"github.com/kamaubrian/peer_tutor/notifications"
)

// SendSessionReminders emails both parties of accepted bookings whose
// session starts in roughly an hour. Runs every 5 minutes, so the window is
// 5 minutes wide to avoid double sends.
func SendSessionReminders() {
	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcoming []models.Booking
	err := database.DB.
		Preload("Student").
		Preload("Tutor").
		Where("status = ? AND session_date BETWEEN ? AND ?", models.BookingAccepted, lowerBound, upperBound).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	for _, booking := range upcoming {
		if booking.Student.ID == uuid.Nil || booking.Tutor.ID == uuid.Nil {
			continue
		}
		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		subject := "Reminder: Your Session Starts in 1 Hour!"
		body := fmt.Sprintf(
			"<h1>Session Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your %s session is scheduled to start at %s.</p>",
			booking.ModuleCode,
			booking.SessionDate.Format(time.Kitchen),
		)

		go notifications.SendEmail(booking.Student.Name, booking.Student.Email, subject, body)
		go notifications.SendEmail(booking.Tutor.Name, booking.Tutor.Email, subject, body)
	}
}
