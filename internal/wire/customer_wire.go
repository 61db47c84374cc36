package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCustomer(
	r chi.Router,
	customerHandler *adaptor.CustomerHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.Auth.JWTSecret, repo.User, log))

		r.Get("/api/customers", customerHandler.GetCustomers)
		r.Post("/api/customers", customerHandler.CreateCustomer)
		r.Patch("/api/customers", customerHandler.UpdateCustomer)
		r.Delete("/api/customers", customerHandler.DeleteCustomer)
	})
}
