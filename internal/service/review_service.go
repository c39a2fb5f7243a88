package service

import (
	"context"

	"github.com/spec-kit/tour-service/internal/domain"
	"github.com/spec-kit/tour-service/internal/events"
	"github.com/spec-kit/tour-service/internal/repository"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

// ReviewService layers validation and author resolution over reviews.
type ReviewService struct {
	reviews    repository.ReviewRepository
	dispatcher events.Dispatcher
}

// NewReviewService builds the service.
func NewReviewService(reviews repository.ReviewRepository, dispatcher events.Dispatcher) *ReviewService {
	return &ReviewService{reviews: reviews, dispatcher: dispatcher}
}

// ReviewCreateInput carries the fields accepted on creation.
type ReviewCreateInput struct {
	Review string
	Rating int
	TourID string
	UserID string
}

// List returns all reviews with their author's display fields resolved.
func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reviews, nil
}

// Create validates the input and persists the review; the tour and user
// references are enforced at the store. The returned review carries the
// resolved author fields.
func (s *ReviewService) Create(ctx context.Context, input ReviewCreateInput) (*domain.Review, error) {
	var problems []string
	if input.Review == "" {
		problems = append(problems, "Review can not be empty")
	}
	if input.Rating < 1 || input.Rating > 5 {
		problems = append(problems, "Rating must be between 1 and 5")
	}
	if input.TourID == "" {
		problems = append(problems, "Review must belong to a tour")
	}
	if input.UserID == "" {
		problems = append(problems, "Review must belong to a user")
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidationError(problems...)
	}

	review := &domain.Review{
		Review: input.Review,
		Rating: input.Rating,
		TourID: input.TourID,
		UserID: input.UserID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.MapError(err)
	}

	// re-read through the join so the response carries the author fields
	created, err := s.reviews.GetByID(ctx, review.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        created.ID,
			Type:      events.EventReviewCreated,
			SubjectID: created.UserID,
			Timestamp: created.CreatedAt,
			Payload:   events.ReviewCreatedPayload{TourID: created.TourID, Rating: created.Rating},
		})
	}
	return created, nil
}
