package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TxRunner runs a function against the repository bundle inside one
// database transaction. Satisfied by repository.TxManager; tests substitute
// an in-memory runner.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(r *repository.Repository) error) error
}

type BookingService interface {
	GetBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error)
	GetBookingByID(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingDetailResponse, error)
	GetUpcomingBookings(ctx context.Context, userID uuid.UUID, windowDays int) ([]response.BookingResponse, error)
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, userID uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, userID uuid.UUID, bookingID string) error
}

type bookingService struct {
	repo *repository.Repository
	txm  TxRunner
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, txm TxRunner, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		txm:  txm,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking, RentalDays(booking.StartDate, booking.EndDate))
	}

	return responses, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingDetailResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id %q", ErrValidation, bookingID)
	}

	detail, err := s.repo.Booking.FindDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if detail == nil || detail.UserID != userID {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	resp := response.BookingDetailToResponse(detail, RentalDays(detail.StartDate, detail.EndDate))
	return &resp, nil
}

func (s *bookingService) GetUpcomingBookings(ctx context.Context, userID uuid.UUID, windowDays int) ([]response.BookingResponse, error) {
	now := time.Now()
	to := now.AddDate(0, 0, windowDays)

	bookings, err := s.repo.Booking.FindStartingBetween(ctx, userID, now, to)
	if err != nil {
		return nil, fmt.Errorf("get upcoming bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking, RentalDays(booking.StartDate, booking.EndDate))
	}

	return responses, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid vehicle id %q", ErrValidation, req.VehicleID)
	}

	startDate, endDate, err := parseBookingDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid customer id %q", ErrValidation, req.CustomerID)
		}
		customerID = &id
	}

	var booking *entity.Booking
	err = s.txm.WithTx(ctx, func(r *repository.Repository) error {
		vehicle, err := r.Vehicle.FindByID(ctx, vehicleID)
		if err != nil {
			return fmt.Errorf("find vehicle: %w", err)
		}
		if vehicle == nil || vehicle.OwnerID != userID {
			return fmt.Errorf("%w: vehicle %s", ErrNotFound, req.VehicleID)
		}

		if customerID != nil {
			customer, err := r.Customer.FindByID(ctx, *customerID)
			if err != nil {
				return fmt.Errorf("find customer: %w", err)
			}
			if customer == nil || customer.UserID != userID {
				return fmt.Errorf("%w: customer %s", ErrNotFound, req.CustomerID)
			}
		}

		// All booking events move vehicle status through ApplyBookingEvent;
		// the conditional UPDATE below repeats the same check in SQL so
		// only one of two racing requests sees the row move.
		if err := ApplyBookingEvent(vehicle, VehicleEvent{Kind: EventBookingCreated}); err != nil {
			return err
		}
		rented, err := r.Vehicle.Rent(ctx, vehicle.ID)
		if err != nil {
			return fmt.Errorf("rent vehicle: %w", err)
		}
		if !rented {
			return fmt.Errorf("%w: vehicle %s is no longer available", ErrVehicleUnavailable, vehicle.ID.String())
		}

		days := RentalDays(startDate, endDate)
		addOns := BookingAddOns{
			Insurance: req.AddOns.Insurance,
			GPS:       req.AddOns.GPS,
			ChildSeat: req.AddOns.ChildSeat,
		}

		now := time.Now()
		booking = &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:          userID,
			VehicleID:       vehicle.ID,
			CustomerID:      customerID,
			StartDate:       startDate,
			EndDate:         endDate,
			TotalAmount:     TotalAmount(days, vehicle.DailyRate, addOns),
			Status:          entity.BookingStatusDefault,
			PickupLocation:  req.PickupLocation,
			DropoffLocation: req.DropoffLocation,
			SpecialRequests: req.SpecialRequests,
			Insurance:       req.Insurance,
			MileagePolicy:   req.MileagePolicy,
			FuelPolicy:      req.FuelPolicy,
			InsuranceAddOn:  req.AddOns.Insurance,
			GPSAddOn:        req.AddOns.GPS,
			ChildSeatAddOn:  req.AddOns.ChildSeat,
			TempName:        req.TempName,
			TempEmail:       req.TempEmail,
			TempPhone:       req.TempPhone,
		}

		if err := r.Booking.Create(ctx, booking); err != nil {
			if repository.IsUniqueViolation(err) {
				return fmt.Errorf("%w: duplicate booking", ErrConflict)
			}
			return fmt.Errorf("create booking: %w", err)
		}

		if customerID != nil {
			if err := syncCustomerStats(ctx, r, s.log, *customerID); err != nil {
				return fmt.Errorf("sync customer stats: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("vehicle_id", booking.VehicleID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking, RentalDays(booking.StartDate, booking.EndDate))
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, userID uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	bookingID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id %q", ErrValidation, req.ID)
	}

	var booking *entity.Booking
	err = s.txm.WithTx(ctx, func(r *repository.Repository) error {
		var err error
		booking, err = r.Booking.FindByID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("find booking: %w", err)
		}
		if booking == nil || booking.UserID != userID {
			return fmt.Errorf("%w: booking %s", ErrNotFound, req.ID)
		}

		previousCustomerID := booking.CustomerID

		if req.CustomerID != nil {
			id, err := uuid.Parse(*req.CustomerID)
			if err != nil {
				return fmt.Errorf("%w: invalid customer id %q", ErrValidation, *req.CustomerID)
			}
			customer, err := r.Customer.FindByID(ctx, id)
			if err != nil {
				return fmt.Errorf("find customer: %w", err)
			}
			if customer == nil || customer.UserID != userID {
				return fmt.Errorf("%w: customer %s", ErrNotFound, *req.CustomerID)
			}
			booking.CustomerID = &id
		}

		startStr, endStr := utils.FormatDate(booking.StartDate), utils.FormatDate(booking.EndDate)
		if req.StartDate != nil {
			startStr = *req.StartDate
		}
		if req.EndDate != nil {
			endStr = *req.EndDate
		}
		if req.StartDate != nil || req.EndDate != nil {
			booking.StartDate, booking.EndDate, err = parseBookingDates(startStr, endStr)
			if err != nil {
				return err
			}
		}

		if req.Status != nil {
			booking.Status = *req.Status
		}
		if req.PickupLocation != nil {
			booking.PickupLocation = *req.PickupLocation
		}
		if req.DropoffLocation != nil {
			booking.DropoffLocation = *req.DropoffLocation
		}
		if req.SpecialRequests != nil {
			booking.SpecialRequests = req.SpecialRequests
		}
		if req.Insurance != nil {
			booking.Insurance = req.Insurance
		}
		if req.MileagePolicy != nil {
			booking.MileagePolicy = req.MileagePolicy
		}
		if req.FuelPolicy != nil {
			booking.FuelPolicy = req.FuelPolicy
		}
		if req.AddOns != nil {
			booking.InsuranceAddOn = req.AddOns.Insurance
			booking.GPSAddOn = req.AddOns.GPS
			booking.ChildSeatAddOn = req.AddOns.ChildSeat
		}
		if req.TempName != nil {
			booking.TempName = req.TempName
		}
		if req.TempEmail != nil {
			booking.TempEmail = req.TempEmail
		}
		if req.TempPhone != nil {
			booking.TempPhone = req.TempPhone
		}

		// Reprice from the vehicle's current rate. The stored total is
		// never trusted after dates or add-ons change.
		vehicle, err := r.Vehicle.FindByID(ctx, booking.VehicleID)
		if err != nil {
			return fmt.Errorf("find vehicle: %w", err)
		}
		if vehicle == nil {
			return fmt.Errorf("%w: vehicle %s", ErrNotFound, booking.VehicleID.String())
		}

		days := RentalDays(booking.StartDate, booking.EndDate)
		booking.TotalAmount = TotalAmount(days, vehicle.DailyRate, BookingAddOns{
			Insurance: booking.InsuranceAddOn,
			GPS:       booking.GPSAddOn,
			ChildSeat: booking.ChildSeatAddOn,
		})
		booking.UpdatedAt = time.Now()

		if err := r.Booking.Update(ctx, booking); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		// Both customers are resynced when the booking moves between them.
		if previousCustomerID != nil {
			if err := syncCustomerStats(ctx, r, s.log, *previousCustomerID); err != nil {
				return fmt.Errorf("sync customer stats: %w", err)
			}
		}
		if booking.CustomerID != nil && (previousCustomerID == nil || *booking.CustomerID != *previousCustomerID) {
			if err := syncCustomerStats(ctx, r, s.log, *booking.CustomerID); err != nil {
				return fmt.Errorf("sync customer stats: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking, RentalDays(booking.StartDate, booking.EndDate))
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, userID uuid.UUID, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: invalid booking id %q", ErrValidation, bookingID)
	}

	return s.txm.WithTx(ctx, func(r *repository.Repository) error {
		booking, err := r.Booking.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find booking: %w", err)
		}
		if booking == nil || booking.UserID != userID {
			return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}

		if err := r.Booking.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}

		// The vehicle is released only when no other booking still holds
		// it; ApplyBookingEvent decides, the conditional UPDATE executes.
		others, err := r.Booking.CountOthersByVehicleID(ctx, booking.VehicleID, id)
		if err != nil {
			return fmt.Errorf("count vehicle bookings: %w", err)
		}
		vehicle, err := r.Vehicle.FindByID(ctx, booking.VehicleID)
		if err != nil {
			return fmt.Errorf("find vehicle: %w", err)
		}
		if vehicle != nil {
			before := vehicle.Status
			ev := VehicleEvent{Kind: EventBookingDeleted, OtherActiveBookings: others > 0}
			if err := ApplyBookingEvent(vehicle, ev); err != nil {
				return err
			}
			if vehicle.Status != before {
				if _, err := r.Vehicle.Release(ctx, booking.VehicleID); err != nil {
					return fmt.Errorf("release vehicle: %w", err)
				}
			}
		}

		if booking.CustomerID != nil {
			if err := syncCustomerStats(ctx, r, s.log, *booking.CustomerID); err != nil {
				return fmt.Errorf("sync customer stats: %w", err)
			}
		}

		s.log.Info("Booking deleted",
			zap.String("booking_id", bookingID),
			zap.String("vehicle_id", booking.VehicleID.String()),
			zap.Int64("remaining_vehicle_bookings", others),
		)
		return nil
	})
}

func parseBookingDates(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date %q", ErrValidation, startStr)
	}
	end, err := utils.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date %q", ErrValidation, endStr)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date before start date", ErrValidation)
	}
	return start, end, nil
}
