package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// The review list feeds the public landing page.
	r.Get("/api/reviews", reviewHandler.GetReviews)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.Auth.JWTSecret, repo.User, log))

		r.Post("/api/reviews", reviewHandler.CreateReview)
		r.Patch("/api/reviews", reviewHandler.UpdateReview)
		r.Delete("/api/reviews", reviewHandler.DeleteReview)
	})
}
