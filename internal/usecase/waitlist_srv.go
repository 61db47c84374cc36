package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/mailer"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WaitlistService interface {
	Join(ctx context.Context, req *request.JoinWaitlistRequest) (*response.WaitlistEntryResponse, error)
	GetEntries(ctx context.Context) ([]response.WaitlistEntryResponse, error)
}

type waitlistService struct {
	repo   *repository.Repository
	sender mailer.Sender
	config *utils.Config
	log    *zap.Logger
}

func NewWaitlistService(repo *repository.Repository, sender mailer.Sender, config *utils.Config, log *zap.Logger) WaitlistService {
	return &waitlistService{
		repo:   repo,
		sender: sender,
		config: config,
		log:    log.With(zap.String("service", "waitlist")),
	}
}

func (s *waitlistService) Join(ctx context.Context, req *request.JoinWaitlistRequest) (*response.WaitlistEntryResponse, error) {
	exists, err := s.repo.Waitlist.ExistsByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("check waitlist: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email or phone already on the waitlist", ErrConflict)
	}

	entry := &entity.WaitlistEntry{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}

	if err := s.repo.Waitlist.Create(ctx, entry); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email or phone already on the waitlist", ErrConflict)
		}
		return nil, fmt.Errorf("join waitlist: %w", err)
	}

	s.log.Info("Waitlist entry created",
		zap.String("entry_id", entry.ID.String()),
		zap.String("email", entry.Email),
	)

	s.notifyOwner(entry)

	resp := response.WaitlistEntryToResponse(entry)
	return &resp, nil
}

func (s *waitlistService) GetEntries(ctx context.Context) ([]response.WaitlistEntryResponse, error) {
	entries, err := s.repo.Waitlist.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get waitlist entries: %w", err)
	}

	responses := make([]response.WaitlistEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = response.WaitlistEntryToResponse(entry)
	}

	return responses, nil
}

// notifyOwner emails the site owner about a new signup. The signup itself
// already committed, so a mail failure is logged and swallowed.
func (s *waitlistService) notifyOwner(entry *entity.WaitlistEntry) {
	if s.config.Email.OwnerEmail == "" {
		return
	}

	subject := "New waitlist signup"
	plain := fmt.Sprintf("%s %s joined the waitlist.\nEmail: %s\nPhone: %s",
		entry.FirstName, entry.LastName, entry.Email, entry.Phone)
	html := fmt.Sprintf("<p><strong>%s %s</strong> joined the waitlist.</p><p>Email: %s<br>Phone: %s</p>",
		entry.FirstName, entry.LastName, entry.Email, entry.Phone)

	if err := s.sender.Send("", s.config.Email.OwnerEmail, subject, plain, html); err != nil {
		s.log.Warn("Failed to send waitlist notification",
			zap.Error(err),
			zap.String("entry_id", entry.ID.String()),
		)
	}
}
