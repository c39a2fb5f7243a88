package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/tour-service/internal/api/dto"
	"github.com/spec-kit/tour-service/internal/service"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

// ReviewsHandler manages review endpoints.
type ReviewsHandler struct {
	service *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviewService *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{service: reviewService}
}

// List handles GET /reviews. Every item embeds the author's name and photo.
func (h *ReviewsHandler) List(c *fiber.Ctx) error {
	reviews, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.NewReviewResponse(&reviews[i]))
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(items),
		"data":    fiber.Map{"reviews": items},
	})
}

// Create handles POST /reviews.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Tour != "" {
		if _, err := uuid.Parse(req.Tour); err != nil {
			return apperrors.NewCastError("tour", req.Tour)
		}
	}
	if req.User != "" {
		if _, err := uuid.Parse(req.User); err != nil {
			return apperrors.NewCastError("user", req.User)
		}
	}

	review, err := h.service.Create(c.Context(), service.ReviewCreateInput{
		Review: req.Review,
		Rating: req.Rating,
		TourID: req.Tour,
		UserID: req.User,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"review": dto.NewReviewResponse(review)},
	})
}
