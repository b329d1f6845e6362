package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/kamaubrian/peer_tutor/configs"
	"github.com/kamaubrian/peer_tutor/database"
	"github.com/kamaubrian/peer_tutor/models"
	"github.com/kamaubrian/peer_tutor/notifications"
	"github.com/kamaubrian/peer_tutor/services"
	"github.com/kamaubrian/peer_tutor/utils"
	"gorm.io/gorm"
)

type TutorApplicationRequest struct {
	Tutor        string   `json:"tutor" validate:"required,uuid"`
	Year         int      `json:"year" validate:"required,min=1,max=3"`
	GPA          *float64 `json:"gpa" validate:"required,gte=0,lte=4"`
	ModuleCodes  []string `json:"module_codes" validate:"required,min=1"`
	Bio          string   `json:"bio"`
	Availability string   `json:"availability"`
}

type ModerateApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// ApplyToBeATutor creates the applicant's tutor profile. With the
// auto-approve policy on (the default) the profile is approved immediately
// and the user's role flips to tutor in the same transaction; otherwise it
// stays pending until moderated.
func ApplyToBeATutor(c *fiber.Ctx) error {
	var req TutorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	moduleCodes := utils.NormalizeModuleCodes(req.ModuleCodes)
	if len(moduleCodes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Select at least one module"})
	}

	tutorID, _ := uuid.Parse(req.Tutor)

	var user models.User
	if err := database.DB.First(&user, "id = ?", tutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	status := models.ProfilePending
	if config.ConfigBool("TUTOR_AUTO_APPROVE", true) {
		status = models.ProfileApproved
	}

	profile := models.TutorProfile{
		TutorID:      tutorID,
		Year:         req.Year,
		GPA:          *req.GPA,
		ModuleCodes:  moduleCodes,
		Bio:          req.Bio,
		Availability: req.Availability,
		Status:       status,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		if status == models.ProfileApproved {
			user.Role = models.RoleTutor
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Tutor profile already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create tutor profile"})
	}

	profile.Tutor = user

	message := "Application submitted and awaiting moderation"
	if status == models.ProfileApproved {
		message = "Tutor approved automatically"
		go notifications.SendEmail(user.Name, user.Email, "You Are Now a Tutor!",
			"<h1>Congratulations!</h1><p>Your tutor profile has been approved. Students can now find you and request sessions.</p>")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       message,
		"tutor_profile": profile,
		"user":          user,
	})
}

// ModerateApplication resolves a pending application. Approval flips the
// owning user's role to tutor.
func ModerateApplication(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor profile id"})
	}

	var req ModerateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var profile models.TutorProfile
	if err := database.DB.Preload("Tutor").First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if profile.Status != models.ProfilePending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Application has already been moderated"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		profile.Status = req.Status
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		if req.Status == models.ProfileApproved {
			if err := tx.Model(&models.User{}).Where("id = ?", profile.TutorID).
				Update("role", models.RoleTutor).Error; err != nil {
				return err
			}
			profile.Tutor.Role = models.RoleTutor
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application status"})
	}

	switch req.Status {
	case models.ProfileApproved:
		go notifications.SendEmail(profile.Tutor.Name, profile.Tutor.Email,
			"Your Tutor Application has been Approved!",
			"<h1>Congratulations!</h1><p>Your application to become a tutor has been approved. Students can now book sessions with you.</p>")
	case models.ProfileRejected:
		go notifications.SendEmail(profile.Tutor.Name, profile.Tutor.Email,
			"Update on Your Tutor Application",
			"<h1>Application Update</h1><p>We regret to inform you that your tutor application was not approved at this time.</p>")
	}

	return c.JSON(profile)
}

func GetTutorProfile(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor profile id"})
	}
	return findTutorProfile(c, "id = ?", profileID)
}

func GetTutorProfileByUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}
	return findTutorProfile(c, "tutor_id = ?", userID)
}

// findTutorProfile loads one profile joined with its owning user. A profile
// whose user has been deleted is treated as absent.
func findTutorProfile(c *fiber.Ctx, query string, arg interface{}) error {
	var profile models.TutorProfile
	if err := database.DB.Preload("Tutor").First(&profile, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if profile.Tutor.ID == uuid.Nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	stats, err := services.GetTutorStats(database.DB, profile.TutorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	profile.AvgRating = stats.AvgRating
	profile.ReviewCount = stats.ReviewCount

	return c.JSON(profile)
}

// ListTutors returns approved profiles joined with their users and
// annotated with rating aggregates, newest first. Profiles whose user has
// been deleted are dropped.
func ListTutors(c *fiber.Ctx) error {
	query := database.DB.Preload("Tutor").
		Where("status = ?", models.ProfileApproved).
		Order("created_at desc")

	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year"})
		}
		query = query.Where("year = ?", year)
	}

	var profiles []models.TutorProfile
	if err := query.Find(&profiles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tutors"})
	}

	stats, err := services.GetAllTutorStats(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	moduleCode := utils.NormalizeModuleCode(c.Query("moduleCode"))

	results := make([]models.TutorProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.Tutor.ID == uuid.Nil {
			continue
		}
		if moduleCode != "" && !p.TeachesModule(moduleCode) {
			continue
		}
		if s, ok := stats[p.TutorID]; ok {
			p.AvgRating = s.AvgRating
			p.ReviewCount = s.ReviewCount
		}
		results = append(results, p)
	}

	return c.JSON(results)
}
