package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	GetCustomers(ctx context.Context, userID uuid.UUID) ([]response.CustomerResponse, error)
	GetCustomerByID(ctx context.Context, userID uuid.UUID, customerID string) (*response.CustomerResponse, error)
	CreateCustomer(ctx context.Context, userID uuid.UUID, req *request.CreateCustomerRequest) (*response.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, userID uuid.UUID, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, userID uuid.UUID, customerID string) error
}

type customerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCustomerService(repo *repository.Repository, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) GetCustomers(ctx context.Context, userID uuid.UUID) ([]response.CustomerResponse, error) {
	customers, err := s.repo.Customer.FindByUserIDWithAggregates(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get customers",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get customers: %w", err)
	}

	responses := make([]response.CustomerResponse, len(customers))
	for i, customer := range customers {
		responses[i] = response.CustomerAggregateToResponse(customer)
	}

	return responses, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, userID uuid.UUID, customerID string) (*response.CustomerResponse, error) {
	customer, err := s.findOwnedCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}

	resp := response.CustomerToResponse(customer)

	// Lifetime spend is never stored; derive it from the ledger on read.
	bookings, err := s.repo.Booking.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("get customer bookings: %w", err)
	}
	for _, booking := range bookings {
		resp.LifetimeSpend += booking.TotalAmount
	}

	return &resp, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, userID uuid.UUID, req *request.CreateCustomerRequest) (*response.CustomerResponse, error) {
	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    entity.CustomerStatusActive,
	}

	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: customer with email %s already exists", ErrConflict, req.Email)
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.log.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("user_id", userID.String()),
	)

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, userID uuid.UUID, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error) {
	customer, err := s.findOwnedCustomer(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Status != nil {
		customer.Status = entity.CustomerStatus(*req.Status)
	}
	customer.UpdatedAt = time.Now()

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: customer email already in use", ErrConflict)
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, userID uuid.UUID, customerID string) error {
	customer, err := s.findOwnedCustomer(ctx, userID, customerID)
	if err != nil {
		return err
	}

	bookings, err := s.repo.Booking.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return fmt.Errorf("get customer bookings: %w", err)
	}
	if len(bookings) > 0 {
		return fmt.Errorf("%w: customer %s has bookings", ErrConflict, customer.ID.String())
	}

	if err := s.repo.Customer.Delete(ctx, customer.ID); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	return nil
}

func (s *customerService) findOwnedCustomer(ctx context.Context, userID uuid.UUID, customerID string) (*entity.Customer, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer id %q", ErrValidation, customerID)
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil || customer.UserID != userID {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
	}

	return customer, nil
}
