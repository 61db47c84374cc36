package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
)

const (
	vipBookingThreshold    = 5
	vipRentalDaysThreshold = 30
)

// CustomerStats is the result of recomputing a customer's standing from
// their full booking history.
type CustomerStats struct {
	Status          entity.CustomerStatus
	TotalBookings   int
	TotalRentalDays int
}

// RecomputeCustomerStats derives a customer's stats from scratch. A customer
// above either VIP threshold is VIP; anyone else with bookings is Active,
// including a VIP whose bookings were deleted out from under the thresholds.
// A customer with zero bookings keeps their current status, so Inactive is
// only ever set by hand.
func RecomputeCustomerStats(current entity.CustomerStatus, bookings []*entity.Booking) CustomerStats {
	stats := CustomerStats{
		Status:        current,
		TotalBookings: len(bookings),
	}
	for _, b := range bookings {
		stats.TotalRentalDays += RentalDays(b.StartDate, b.EndDate)
	}

	switch {
	case stats.TotalBookings >= vipBookingThreshold || stats.TotalRentalDays >= vipRentalDaysThreshold:
		stats.Status = entity.CustomerStatusVIP
	case stats.TotalBookings > 0:
		stats.Status = entity.CustomerStatusActive
	}
	return stats
}

// syncCustomerStats recomputes and persists a customer's stats, writing
// only when something actually changed. Safe to call repeatedly.
func syncCustomerStats(ctx context.Context, r *repository.Repository, log *zap.Logger, customerID uuid.UUID) error {
	customer, err := r.Customer.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		// Booking without a registered customer; nothing to sync.
		return nil
	}

	bookings, err := r.Booking.FindByCustomerID(ctx, customerID)
	if err != nil {
		return err
	}

	stats := RecomputeCustomerStats(customer.Status, bookings)
	if stats.Status == customer.Status && stats.TotalBookings == customer.TotalBookings {
		return nil
	}

	log.Info("customer stats changed",
		zap.String("customer_id", customerID.String()),
		zap.String("status", string(stats.Status)),
		zap.Int("total_bookings", stats.TotalBookings),
	)
	return r.Customer.UpdateStats(ctx, customerID, stats.Status, stats.TotalBookings)
}
