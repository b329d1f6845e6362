package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kamaubrian/peer_tutor/database"
	"github.com/kamaubrian/peer_tutor/models"
	"github.com/kamaubrian/peer_tutor/notifications"
	"github.com/kamaubrian/peer_tutor/services"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   string  `json:"comment"`
	StudentID *string `json:"student_id" validate:"omitempty,uuid"`
}

// CreateReview files the student's rating for a completed booking. Tutor
// and student ids are copied from the booking at write time; the unique
// index on booking_id enforces one review per booking.
func CreateReview(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	bookingID, _ := uuid.Parse(req.BookingID)

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if booking.Status != models.BookingCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Session not completed"})
	}

	if req.StudentID != nil {
		studentID, _ := uuid.Parse(*req.StudentID)
		if studentID != booking.StudentID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to review this booking"})
		}
	}

	review := models.Review{
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		TutorID:   booking.TutorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := database.DB.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Review already submitted for this booking"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	if err := database.DB.Preload("Student").Preload("Tutor").First(&review, "id = ?", review.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	go notifications.SendEmail(review.Tutor.Name, review.Tutor.Email, "You Received a New Review",
		fmt.Sprintf("<h1>New Review</h1><p>%s rated your %s session %d/5.</p>", review.Student.Name, booking.ModuleCode, review.Rating))

	return c.Status(fiber.StatusCreated).JSON(review)
}

// ListReviews filters by tutorId, studentId or bookingId. A bookingId
// lookup returns rows as-is — the caller needs to know a review exists even
// when its users are gone — while the other listings drop orphans.
func ListReviews(c *fiber.Ctx) error {
	query := database.DB.Preload("Student").Preload("Tutor").Order("created_at desc")

	byBooking := false
	if tutorID := c.Query("tutorId"); tutorID != "" {
		id, err := uuid.Parse(tutorID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutorId"})
		}
		query = query.Where("tutor_id = ?", id)
	}
	if studentID := c.Query("studentId"); studentID != "" {
		id, err := uuid.Parse(studentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid studentId"})
		}
		query = query.Where("student_id = ?", id)
	}
	if bookingID := c.Query("bookingId"); bookingID != "" {
		id, err := uuid.Parse(bookingID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid bookingId"})
		}
		query = query.Where("booking_id = ?", id)
		byBooking = true
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	if byBooking {
		return c.JSON(reviews)
	}

	cleaned := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.Student.ID == uuid.Nil || r.Tutor.ID == uuid.Nil {
			continue
		}
		cleaned = append(cleaned, r)
	}
	return c.JSON(cleaned)
}

// GetReviewStats exposes the aggregation layer: mean rating rounded to two
// decimals plus review count for one tutor, zeros when unreviewed.
func GetReviewStats(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Query("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutorId"})
	}

	stats, err := services.GetTutorStats(database.DB, tutorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(stats)
}
