package adaptor

import (
	"encoding/json"
	"net/http"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type VehicleHandler struct {
	service usecase.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log.With(zap.String("handler", "vehicle")),
	}
}

// GetVehicles handles GET /api/vehicles (protected). ?id=<uuid> returns a
// single vehicle.
func (h *VehicleHandler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		vehicle, err := h.service.GetVehicleByID(r.Context(), userID, id)
		if err != nil {
			handleServiceError(h.log, w, err, "get vehicle")
			return
		}
		utils.ResponseSuccess(w, "success", vehicle)
		return
	}

	vehicles, err := h.service.GetVehicles(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", vehicles)
}

// CreateVehicle handles POST /api/vehicles (protected)
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	vehicle, err := h.service.CreateVehicle(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create vehicle")
		return
	}

	utils.ResponseCreated(w, "success", vehicle)
}

// UpdateVehicle handles PATCH /api/vehicles (protected)
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	vehicle, err := h.service.UpdateVehicle(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", vehicle)
}

// DeleteVehicle handles DELETE /api/vehicles?id=<uuid> (protected)
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	if err := h.service.DeleteVehicle(r.Context(), userID, id); err != nil {
		handleServiceError(h.log, w, err, "delete vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
