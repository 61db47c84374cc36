package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/pkg/mailer"
	"car-rental/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobService owns the scheduled background work: the nightly vehicle-status
// reconciliation sweep and the upcoming-booking reminder scan.
type JobService interface {
	Start() error
	Stop()

	ReconcileVehicleStatuses(ctx context.Context) error
	SendBookingReminders(ctx context.Context) error
}

type jobService struct {
	repo       *repository.Repository
	txm        TxRunner
	sender     mailer.Sender
	windowDays int
	cron       *cron.Cron
	log        *zap.Logger
}

func NewJobService(repo *repository.Repository, txm TxRunner, sender mailer.Sender, config *utils.Config, log *zap.Logger) JobService {
	return &jobService{
		repo:       repo,
		txm:        txm,
		sender:     sender,
		windowDays: config.Jobs.ReminderWindowDays,
		cron:       cron.New(),
		log:        log.With(zap.String("service", "job")),
	}
}

func (s *jobService) Start() error {
	// Reconciliation at 03:00, reminders at 08:00.
	if _, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.ReconcileVehicleStatuses(context.Background()); err != nil {
			s.log.Error("Vehicle reconciliation sweep failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule reconciliation sweep: %w", err)
	}

	if _, err := s.cron.AddFunc("0 8 * * *", func() {
		if err := s.SendBookingReminders(context.Background()); err != nil {
			s.log.Error("Booking reminder scan failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule reminder scan: %w", err)
	}

	s.cron.Start()
	s.log.Info("Background jobs scheduled", zap.Int("reminder_window_days", s.windowDays))
	return nil
}

func (s *jobService) Stop() {
	s.cron.Stop()
}

// ReconcileVehicleStatuses repairs drift between vehicle statuses and the
// booking ledger: a Rented vehicle with no booking goes back to Available,
// an Available vehicle that still has a booking goes back to Rented.
func (s *jobService) ReconcileVehicleStatuses(ctx context.Context) error {
	return s.txm.WithTx(ctx, func(r *repository.Repository) error {
		stale, err := r.Vehicle.FindRentedWithoutActiveBooking(ctx)
		if err != nil {
			return fmt.Errorf("find stale rented vehicles: %w", err)
		}
		for _, id := range stale {
			if err := r.Vehicle.SetStatus(ctx, id, entity.VehicleStatusAvailable); err != nil {
				return fmt.Errorf("release stale vehicle: %w", err)
			}
			s.log.Warn("Reconciled vehicle back to Available", zap.String("vehicle_id", id.String()))
		}

		missed, err := r.Vehicle.FindAvailableWithActiveBooking(ctx)
		if err != nil {
			return fmt.Errorf("find missed rented vehicles: %w", err)
		}
		for _, id := range missed {
			if err := r.Vehicle.SetStatus(ctx, id, entity.VehicleStatusRented); err != nil {
				return fmt.Errorf("mark missed vehicle rented: %w", err)
			}
			s.log.Warn("Reconciled vehicle back to Rented", zap.String("vehicle_id", id.String()))
		}

		if len(stale)+len(missed) > 0 {
			s.log.Info("Vehicle reconciliation sweep finished",
				zap.Int("released", len(stale)),
				zap.Int("re_rented", len(missed)),
			)
		}
		return nil
	})
}

// SendBookingReminders mails the contact on every booking starting inside
// the reminder window. A failed send is logged and does not stop the scan.
func (s *jobService) SendBookingReminders(ctx context.Context) error {
	now := time.Now()
	to := now.AddDate(0, 0, s.windowDays)

	reminders, err := s.repo.Booking.FindUpcomingReminders(ctx, now, to)
	if err != nil {
		return fmt.Errorf("find upcoming reminders: %w", err)
	}

	sent := 0
	for _, reminder := range reminders {
		if reminder.Email == "" {
			continue
		}

		subject := fmt.Sprintf("Your rental starts %s", utils.FormatDate(reminder.StartDate))
		plain := fmt.Sprintf("Reminder: your booking for the %s runs %s to %s.",
			reminder.Vehicle, utils.FormatDate(reminder.StartDate), utils.FormatDate(reminder.EndDate))
		html := fmt.Sprintf("<p>Reminder: your booking for the <strong>%s</strong> runs %s to %s.</p>",
			reminder.Vehicle, utils.FormatDate(reminder.StartDate), utils.FormatDate(reminder.EndDate))

		if err := s.sender.Send(reminder.Name, reminder.Email, subject, plain, html); err != nil {
			s.log.Warn("Failed to send booking reminder",
				zap.Error(err),
				zap.String("booking_id", reminder.BookingID.String()),
			)
			continue
		}
		sent++
	}

	s.log.Info("Booking reminder scan finished",
		zap.Int("candidates", len(reminders)),
		zap.Int("sent", sent),
	)
	return nil
}
