package wire

import (
	"net/http"

	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/internal/usecase"
	"car-rental/pkg/database"
	"car-rental/pkg/mailer"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
	Jobs   usecase.JobService
}

// Wiring builds repositories, services, handlers and the router.
func Wiring(db *database.DB, config *utils.Config, logger *zap.Logger) *App {
	repo := repository.NewRepository(db, logger)
	txm := repository.NewTxManager(db, logger)
	sender := mailer.NewSendGridMailer(config.Email, logger)

	service := usecase.NewService(repo, txm, sender, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
		Jobs:   service.Job,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireBooking(r, handler.Booking, repo, config, logger)
	wireVehicle(r, handler.Vehicle, repo, config, logger)
	wireCustomer(r, handler.Customer, repo, config, logger)
	wireReview(r, handler.Review, repo, config, logger)
	wirePublic(r, handler.Public, repo, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
