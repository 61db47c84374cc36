package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.Auth.JWTSecret, repo.User, log))

		// GET /api/bookings     - list / single (?id=) / upcoming (?notifications=true)
		// POST /api/bookings    - create booking, flips vehicle to Rented
		// PATCH /api/bookings   - patch dates, customer linkage, policies
		// DELETE /api/bookings  - remove booking, release vehicle (?id=)
		r.Get("/api/bookings", bookingHandler.GetBookings)
		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Patch("/api/bookings", bookingHandler.UpdateBooking)
		r.Delete("/api/bookings", bookingHandler.DeleteBooking)
	})
}
