package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePublic(
	r chi.Router,
	publicHandler *adaptor.PublicHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Signups and donations come from the marketing site, webhooks from the
	// identity provider; none of them carry a session token.
	r.Post("/api/waitlist", publicHandler.JoinWaitlist)
	r.Post("/api/donate", publicHandler.CreateDonation)
	r.Post("/api/webhooks", publicHandler.HandleWebhook)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.Auth.JWTSecret, repo.User, log))

		r.Get("/api/waitlist", publicHandler.GetWaitlist)
	})
}
