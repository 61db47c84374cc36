package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

// maxWebhookBody bounds how much of a webhook payload is read.
const maxWebhookBody = 1 << 20

// PublicHandler serves the unauthenticated surface: waitlist signup,
// donation checkout and the identity provider webhook.
type PublicHandler struct {
	waitlist usecase.WaitlistService
	donation usecase.DonationService
	webhook  usecase.WebhookService
	log      *zap.Logger
}

func NewPublicHandler(waitlist usecase.WaitlistService, donation usecase.DonationService, webhook usecase.WebhookService, log *zap.Logger) *PublicHandler {
	return &PublicHandler{
		waitlist: waitlist,
		donation: donation,
		webhook:  webhook,
		log:      log.With(zap.String("handler", "public")),
	}
}

// JoinWaitlist handles POST /api/waitlist (public)
func (h *PublicHandler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	var req request.JoinWaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	entry, err := h.waitlist.Join(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "join waitlist")
		return
	}

	utils.ResponseCreated(w, "success", entry)
}

// GetWaitlist handles GET /api/waitlist (protected)
func (h *PublicHandler) GetWaitlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.waitlist.GetEntries(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get waitlist")
		return
	}

	utils.ResponseSuccess(w, "success", entries)
}

// CreateDonation handles POST /api/donate (public)
func (h *PublicHandler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req request.DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	checkout, err := h.donation.CreateCheckout(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create donation checkout")
		return
	}

	utils.ResponseCreated(w, "success", checkout)
}

// HandleWebhook handles POST /api/webhooks (public, signature-verified)
func (h *PublicHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	headers := usecase.WebhookHeaders{
		ID:        r.Header.Get("svix-id"),
		Timestamp: r.Header.Get("svix-timestamp"),
		Signature: r.Header.Get("svix-signature"),
	}

	if err := h.webhook.HandleEvent(r.Context(), headers, payload); err != nil {
		handleServiceError(h.log, w, err, "handle webhook")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
