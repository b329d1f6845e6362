package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamaubrian/peer_tutor/handlers"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reviews := api.Group("/reviews")
	// stats must be registered ahead of any parametric sibling
	reviews.Get("/stats", handlers.GetReviewStats)
	reviews.Get("", handlers.ListReviews)
	reviews.Post("", handlers.CreateReview)
}
