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

type ReviewService interface {
	GetReviews(ctx context.Context) ([]response.ReviewResponse, error)
	CreateReview(ctx context.Context, reviewerID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewerID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewerID uuid.UUID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetReviews(ctx context.Context) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get reviews", zap.Error(err))
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	responses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = response.ReviewWithNamesToResponse(review)
	}

	return responses, nil
}

func (s *reviewService) CreateReview(ctx context.Context, reviewerID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid vehicle id %q", ErrValidation, req.VehicleID)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, req.VehicleID)
	}

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		VehicleID:  vehicleID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Review:     req.Review,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: vehicle already reviewed", ErrConflict)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("vehicle_id", vehicleID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewerID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	review, err := s.findOwnReview(ctx, reviewerID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Review != nil {
		review.Review = req.Review
	}
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewerID uuid.UUID, reviewID string) error {
	review, err := s.findOwnReview(ctx, reviewerID, reviewID)
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	return nil
}

func (s *reviewService) findOwnReview(ctx context.Context, reviewerID uuid.UUID, reviewID string) (*entity.Review, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid review id %q", ErrValidation, reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.ReviewerID != reviewerID {
		return nil, fmt.Errorf("%w: review %s", ErrNotFound, reviewID)
	}

	return review, nil
}
