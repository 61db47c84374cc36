package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// webhookTolerance bounds how stale a signed timestamp may be before the
// event is rejected as a possible replay.
const webhookTolerance = 5 * time.Minute

// WebhookHeaders carries the svix signature headers from the provider.
type WebhookHeaders struct {
	ID        string
	Timestamp string
	Signature string
}

// webhookEvent is the provider's envelope: an event type plus the account
// snapshot it applies to.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

type WebhookService interface {
	HandleEvent(ctx context.Context, headers WebhookHeaders, payload []byte) error
}

type webhookService struct {
	repo   *repository.Repository
	secret []byte
	log    *zap.Logger
}

func NewWebhookService(repo *repository.Repository, config *utils.Config, log *zap.Logger) WebhookService {
	return &webhookService{
		repo:   repo,
		secret: decodeSigningSecret(config.Webhook.SigningSecret),
		log:    log.With(zap.String("service", "webhook")),
	}
}

func (s *webhookService) HandleEvent(ctx context.Context, headers WebhookHeaders, payload []byte) error {
	if err := s.verify(headers, payload); err != nil {
		s.log.Warn("Webhook signature rejected",
			zap.Error(err),
			zap.String("message_id", headers.ID),
		)
		return err
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: malformed webhook payload", ErrValidation)
	}
	if event.Data.ID == "" {
		return fmt.Errorf("%w: webhook event without account id", ErrValidation)
	}

	s.log.Info("Webhook event received",
		zap.String("type", event.Type),
		zap.String("external_id", event.Data.ID),
	)

	switch event.Type {
	case "user.created", "user.updated":
		return s.upsertUser(ctx, &event)
	case "user.deleted":
		return s.repo.User.DeleteByExternalID(ctx, event.Data.ID)
	default:
		// Unknown event types are acknowledged so the provider stops
		// retrying them.
		s.log.Info("Ignoring webhook event", zap.String("type", event.Type))
		return nil
	}
}

func (s *webhookService) upsertUser(ctx context.Context, event *webhookEvent) error {
	email := ""
	if len(event.Data.EmailAddresses) > 0 {
		email = event.Data.EmailAddresses[0].EmailAddress
	}

	existing, err := s.repo.User.FindByExternalID(ctx, event.Data.ID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	now := time.Now()
	if existing == nil {
		user := &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			ExternalID: event.Data.ID,
			Email:      email,
			FirstName:  event.Data.FirstName,
			LastName:   event.Data.LastName,
		}
		if err := s.repo.User.Create(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				// A concurrent delivery of the same event won the insert.
				return nil
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	}

	existing.Email = email
	existing.FirstName = event.Data.FirstName
	existing.LastName = event.Data.LastName
	existing.UpdatedAt = now
	return s.repo.User.Update(ctx, existing)
}

// verify checks the svix signature scheme: HMAC-SHA256 over
// "{id}.{timestamp}.{payload}" with the shared secret, compared against any
// of the space-separated "v1,<base64>" entries in the signature header.
func (s *webhookService) verify(headers WebhookHeaders, payload []byte) error {
	if headers.ID == "" || headers.Timestamp == "" || headers.Signature == "" {
		return fmt.Errorf("%w: missing signature headers", ErrBadSignature)
	}

	ts, err := strconv.ParseInt(headers.Timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed timestamp", ErrBadSignature)
	}
	age := time.Since(time.Unix(ts, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", ErrBadSignature)
	}

	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s.%s.%s", headers.ID, headers.Timestamp, payload)
	expected := mac.Sum(nil)

	for _, part := range strings.Split(headers.Signature, " ") {
		version, sig, found := strings.Cut(part, ",")
		if !found || version != "v1" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}

	return fmt.Errorf("%w: no matching signature", ErrBadSignature)
}

// decodeSigningSecret strips the provider's "whsec_" prefix and base64
// decodes the remainder. A plain secret is used as-is.
func decodeSigningSecret(secret string) []byte {
	trimmed := strings.TrimPrefix(secret, "whsec_")
	if decoded, err := base64.StdEncoding.DecodeString(trimmed); err == nil && trimmed != secret {
		return decoded
	}
	return []byte(trimmed)
}
