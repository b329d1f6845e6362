package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamaubrian/peer_tutor/handlers"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings")
	bookings.Get("", handlers.ListBookings)
	bookings.Get("/:id", handlers.GetBooking)
	bookings.Post("", handlers.CreateBooking)
	bookings.Patch("/:id/status", handlers.UpdateBookingStatus)
	bookings.Patch("/:id/complete", handlers.CompleteBooking)
	bookings.Delete("/:id", handlers.CancelBooking)
}
