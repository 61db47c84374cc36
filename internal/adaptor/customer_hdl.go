package adaptor

import (
	"encoding/json"
	"net/http"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type CustomerHandler struct {
	service usecase.CustomerService
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log.With(zap.String("handler", "customer")),
	}
}

// GetCustomers handles GET /api/customers (protected). The list carries the
// lifetime spend and booking count aggregates; ?id=<uuid> returns one
// customer.
func (h *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		customer, err := h.service.GetCustomerByID(r.Context(), userID, id)
		if err != nil {
			handleServiceError(h.log, w, err, "get customer")
			return
		}
		utils.ResponseSuccess(w, "success", customer)
		return
	}

	customers, err := h.service.GetCustomers(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get customers")
		return
	}

	utils.ResponseSuccess(w, "success", customers)
}

// CreateCustomer handles POST /api/customers (protected)
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create customer")
		return
	}

	utils.ResponseCreated(w, "success", customer)
}

// UpdateCustomer handles PATCH /api/customers (protected)
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update customer")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// DeleteCustomer handles DELETE /api/customers?id=<uuid> (protected)
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), userID, id); err != nil {
		handleServiceError(h.log, w, err, "delete customer")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
