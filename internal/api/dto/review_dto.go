package dto

import (
	"time"

	"github.com/spec-kit/tour-service/internal/domain"
)

// CreateReviewRequest payload.
type CreateReviewRequest struct {
	Review string `json:"review"`
	Rating int    `json:"rating"`
	Tour   string `json:"tour"`
	User   string `json:"user"`
}

// ReviewAuthorResponse carries the joined author display fields.
type ReviewAuthorResponse struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// ReviewResponse always embeds the author, never a bare user id alone.
type ReviewResponse struct {
	ID        string               `json:"id"`
	Review    string               `json:"review"`
	Rating    int                  `json:"rating"`
	Tour      string               `json:"tour"`
	User      ReviewAuthorResponse `json:"user"`
	CreatedAt time.Time            `json:"created_at"`
}

// NewReviewResponse maps the domain review.
func NewReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:     review.ID,
		Review: review.Review,
		Rating: review.Rating,
		Tour:   review.TourID,
		User: ReviewAuthorResponse{
			Name:  review.Author.Name,
			Photo: review.Author.Photo,
		},
		CreatedAt: review.CreatedAt,
	}
}
