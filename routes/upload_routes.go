package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamaubrian/peer_tutor/handlers"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/uploads/signature", handlers.GenerateUploadSignature)
}
