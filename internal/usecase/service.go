package usecase

import (
	"car-rental/internal/data/repository"
	"car-rental/pkg/mailer"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Vehicle  VehicleService
	Customer CustomerService
	Booking  BookingService
	Review   ReviewService
	Waitlist WaitlistService
	Donation DonationService
	Webhook  WebhookService
	Job      JobService
}

func NewService(repo *repository.Repository, txm *repository.TxManager, sender mailer.Sender, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Vehicle:  NewVehicleService(repo, log),
		Customer: NewCustomerService(repo, log),
		Booking:  NewBookingService(repo, txm, log),
		Review:   NewReviewService(repo, log),
		Waitlist: NewWaitlistService(repo, sender, config, log),
		Donation: NewDonationService(config, log),
		Webhook:  NewWebhookService(repo, config, log),
		Job:      NewJobService(repo, txm, sender, config, log),
	}
}
