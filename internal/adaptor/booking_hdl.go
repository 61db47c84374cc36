package adaptor

import (
	"encoding/json"
	"net/http"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service    usecase.BookingService
	windowDays int
	log        *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, windowDays int, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:    service,
		windowDays: windowDays,
		log:        log.With(zap.String("handler", "booking")),
	}
}

// GetBookings handles GET /api/bookings (protected).
//
// Without query parameters it lists the caller's bookings, newest first.
// ?id=<uuid> returns a single booking with its vehicle and customer joined.
// ?notifications=true returns bookings starting inside the reminder window.
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()

	if id := query.Get("id"); id != "" {
		booking, err := h.service.GetBookingByID(r.Context(), userID, id)
		if err != nil {
			handleServiceError(h.log, w, err, "get booking")
			return
		}
		utils.ResponseSuccess(w, "success", booking)
		return
	}

	if query.Get("notifications") == "true" {
		bookings, err := h.service.GetUpcomingBookings(r.Context(), userID, h.windowDays)
		if err != nil {
			handleServiceError(h.log, w, err, "get upcoming bookings")
			return
		}
		utils.ResponseSuccess(w, "success", bookings)
		return
	}

	bookings, err := h.service.GetBookings(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// UpdateBooking handles PATCH /api/bookings (protected)
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// DeleteBooking handles DELETE /api/bookings?id=<uuid> (protected)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := h.service.DeleteBooking(r.Context(), userID, id); err != nil {
		handleServiceError(h.log, w, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
