package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kamaubrian/peer_tutor/database"
	"github.com/kamaubrian/peer_tutor/models"
	"github.com/kamaubrian/peer_tutor/notifications"
	"github.com/kamaubrian/peer_tutor/utils"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	Student     string `json:"student" validate:"required,uuid"`
	Tutor       string `json:"tutor" validate:"required,uuid"`
	ModuleCode  string `json:"module_code" validate:"required"`
	SessionDate string `json:"session_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Remarks     string `json:"remarks"`
}

type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type CompleteBookingRequest struct {
	Role string `json:"role" validate:"required,oneof=student tutor"`
}

func CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	studentID, _ := uuid.Parse(req.Student)
	tutorID, _ := uuid.Parse(req.Tutor)
	sessionDate, _ := time.Parse(time.RFC3339, req.SessionDate)

	// Both parties must resolve; either one missing is the same outward
	// signal, so orphan bookings cannot be created.
	var count int64
	if err := database.DB.Model(&models.User{}).
		Where("id IN ?", []uuid.UUID{studentID, tutorID}).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	wanted := int64(2)
	if studentID == tutorID {
		wanted = 1
	}
	if count < wanted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Student or tutor does not exist"})
	}

	booking := models.Booking{
		StudentID:   studentID,
		TutorID:     tutorID,
		ModuleCode:  utils.NormalizeModuleCode(req.ModuleCode),
		SessionDate: sessionDate,
		Status:      models.BookingPending,
		Remarks:     req.Remarks,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	if err := database.DB.Preload("Student").Preload("Tutor").First(&booking, "id = ?", booking.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	go notifications.SendEmail(booking.Tutor.Name, booking.Tutor.Email, "You Have a New Tutoring Request!",
		fmt.Sprintf("<h1>New Request</h1><p>%s has requested a %s session on %s. Log in to accept or reject it.</p>",
			booking.Student.Name, booking.ModuleCode, booking.SessionDate.Format("Jan 2, 2006 at 3:04 PM")))

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// ListBookings filters by studentId and/or tutorId, newest first. Bookings
// whose student or tutor has been deleted are silently dropped.
func ListBookings(c *fiber.Ctx) error {
	query := database.DB.Preload("Student").Preload("Tutor").Order("created_at desc")

	if studentID := c.Query("studentId"); studentID != "" {
		id, err := uuid.Parse(studentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid studentId"})
		}
		query = query.Where("student_id = ?", id)
	}
	if tutorID := c.Query("tutorId"); tutorID != "" {
		id, err := uuid.Parse(tutorID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutorId"})
		}
		query = query.Where("tutor_id = ?", id)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	cleaned := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Student.ID == uuid.Nil || b.Tutor.ID == uuid.Nil {
			continue
		}
		cleaned = append(cleaned, b)
	}
	return c.JSON(cleaned)
}

func GetBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var booking models.Booking
	if err := database.DB.Preload("Student").Preload("Tutor").First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if booking.Student.ID == uuid.Nil || booking.Tutor.ID == uuid.Nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking is invalid (user deleted)"})
	}
	return c.JSON(booking)
}

// UpdateBookingStatus lets the tutor accept or reject a request. Only a
// pending booking may be transitioned; rejected and completed are terminal.
func UpdateBookingStatus(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req BookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	var booking models.Booking
	if err := database.DB.Preload("Student").Preload("Tutor").First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if booking.Student.ID == uuid.Nil || booking.Tutor.ID == uuid.Nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking is invalid (user deleted)"})
	}
	if booking.Status != models.BookingPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only pending bookings can be accepted or rejected"})
	}

	booking.Status = req.Status
	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}

	subject := "Your Tutoring Request Was Accepted"
	body := fmt.Sprintf("<h1>Request Accepted</h1><p>%s accepted your %s session. See you there!</p>", booking.Tutor.Name, booking.ModuleCode)
	if req.Status == models.BookingRejected {
		subject = "Update on Your Tutoring Request"
		body = fmt.Sprintf("<h1>Request Declined</h1><p>%s is unable to take your %s session this time.</p>", booking.Tutor.Name, booking.ModuleCode)
	}
	go notifications.SendEmail(booking.Student.Name, booking.Student.Email, subject, body)

	return c.JSON(booking)
}

// CompleteBooking records one party's confirmation. The two confirmations
// arrive independently and in no particular order; when both flags are set
// the booking becomes completed. Re-confirming by the same role is a no-op.
// Each flag is flipped by a single atomic UPDATE, never a load-mutate-store
// of the whole record, so concurrent confirmations cannot overwrite each
// other's flag.
func CompleteBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req CompleteBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "role must be 'student' or 'tutor'"})
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if booking.Status != models.BookingAccepted && booking.Status != models.BookingCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only accepted bookings can be completed"})
	}

	flagColumn := "completed_by_student"
	if req.Role == models.RoleTutor {
		flagColumn = "completed_by_tutor"
	}
	if err := database.DB.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update(flagColumn, true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete booking"})
	}

	// Promote to completed only once both flags are in; the WHERE clause
	// makes the promotion atomic under concurrent confirmations.
	if err := database.DB.Model(&models.Booking{}).
		Where("id = ? AND completed_by_student = ? AND completed_by_tutor = ?", bookingID, true, true).
		Update("status", models.BookingCompleted).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete booking"})
	}

	if err := database.DB.Preload("Student").Preload("Tutor").First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if booking.Student.ID == uuid.Nil || booking.Tutor.ID == uuid.Nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking is invalid (user deleted)"})
	}

	if booking.Status == models.BookingCompleted {
		go notifications.SendEmail(booking.Student.Name, booking.Student.Email, "Session Completed",
			fmt.Sprintf("<h1>All Done!</h1><p>Your %s session with %s is complete. Leave a review to help other students.</p>",
				booking.ModuleCode, booking.Tutor.Name))
	}

	return c.JSON(booking)
}

// CancelBooking hard-deletes a booking that has not completed.
func CancelBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if booking.Status == models.BookingCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot cancel completed booking"})
	}

	if err := database.DB.Delete(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}
	return c.JSON(fiber.Map{"message": "Booking cancelled"})
}
