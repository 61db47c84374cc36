package adaptor

import (
	"errors"
	"net/http"

	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

// Handler bundles the HTTP handlers for wiring.
type Handler struct {
	Booking  *BookingHandler
	Vehicle  *VehicleHandler
	Customer *CustomerHandler
	Review   *ReviewHandler
	Public   *PublicHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Booking:  NewBookingHandler(service.Booking, config.Jobs.ReminderWindowDays, log),
		Vehicle:  NewVehicleHandler(service.Vehicle, log),
		Customer: NewCustomerHandler(service.Customer, log),
		Review:   NewReviewHandler(service.Review, log),
		Public:   NewPublicHandler(service.Waitlist, service.Donation, service.Webhook, log),
	}
}

// handleServiceError maps the service sentinels onto HTTP statuses. Anything
// unclassified is a 500 with a generic body.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrVehicleUnavailable):
		log.Warn(operation+" failed - vehicle unavailable", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrBadSignature):
		log.Warn(operation+" failed - bad signature", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid signature")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
