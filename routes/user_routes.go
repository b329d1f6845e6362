package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamaubrian/peer_tutor/handlers"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Get("", handlers.ListUsers)
	users.Get("/:id", handlers.GetUser)
	users.Post("", handlers.CreateUser)
}
