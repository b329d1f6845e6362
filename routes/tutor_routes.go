package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamaubrian/peer_tutor/handlers"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tutors := api.Group("/tutors")
	tutors.Get("", handlers.ListTutors)
	// by-user must be registered ahead of the :id route
	tutors.Get("/by-user/:userId", handlers.GetTutorProfileByUser)
	tutors.Get("/:id", handlers.GetTutorProfile)
	tutors.Post("", handlers.ApplyToBeATutor)
	tutors.Patch("/:id/status", handlers.ModerateApplication)
}
