package usecase

import (
	"context"
	"fmt"
	"math"

	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/utils"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"go.uber.org/zap"
)

type DonationService interface {
	CreateCheckout(ctx context.Context, req *request.DonationRequest) (*response.DonationResponse, error)
}

type donationService struct {
	config *utils.Config
	log    *zap.Logger
}

func NewDonationService(config *utils.Config, log *zap.Logger) DonationService {
	stripe.Key = config.Stripe.SecretKey
	return &donationService{
		config: config,
		log:    log.With(zap.String("service", "donation")),
	}
}

func (s *donationService) CreateCheckout(ctx context.Context, req *request.DonationRequest) (*response.DonationResponse, error) {
	description := req.Description
	if description == "" {
		description = "Donation"
	}

	// Stripe amounts are in the currency's smallest unit.
	amount := int64(math.Round(req.Amount * 100))

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.config.Stripe.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.config.Stripe.SuccessURL),
		CancelURL:  stripe.String(s.config.Stripe.CancelURL),
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		s.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.Float64("amount", req.Amount),
		)
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.log.Info("Checkout session created",
		zap.String("session_id", sess.ID),
		zap.Float64("amount", req.Amount),
	)

	return &response.DonationResponse{
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}
