package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVehicle(
	r chi.Router,
	vehicleHandler *adaptor.VehicleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.Auth.JWTSecret, repo.User, log))

		r.Get("/api/vehicles", vehicleHandler.GetVehicles)
		r.Post("/api/vehicles", vehicleHandler.CreateVehicle)
		r.Patch("/api/vehicles", vehicleHandler.UpdateVehicle)
		r.Delete("/api/vehicles", vehicleHandler.DeleteVehicle)
	})
}
