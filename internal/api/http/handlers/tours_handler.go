package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/tour-service/internal/api/dto"
	"github.com/spec-kit/tour-service/internal/service"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

// ToursHandler manages tour endpoints.
type ToursHandler struct {
	service *service.TourService
}

// NewToursHandler constructs handler.
func NewToursHandler(tourService *service.TourService) *ToursHandler {
	return &ToursHandler{service: tourService}
}

// List handles GET /tours with the full query features pipeline.
func (h *ToursHandler) List(c *fiber.Ctx) error {
	return h.list(c, queryValues(c))
}

// TopCheap handles GET /tours/top-5-cheap by pre-setting the listing
// parameters before running the normal pipeline.
func (h *ToursHandler) TopCheap(c *fiber.Ctx) error {
	params := queryValues(c)
	params.Set("limit", "5")
	params.Set("sort", "-ratings_average,price")
	params.Set("fields", "name,price,ratings_average,summary,difficulty")
	return h.list(c, params)
}

func (h *ToursHandler) list(c *fiber.Ctx, params url.Values) error {
	tours, fields, err := h.service.List(c.Context(), params)
	if err != nil {
		return err
	}
	items := make([]dto.TourResponse, 0, len(tours))
	for i := range tours {
		items = append(items, dto.NewTourResponse(&tours[i]))
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(items),
		"data":    fiber.Map{"tours": dto.Project(items, fields)},
	})
}

// Get handles GET /tours/:id.
func (h *ToursHandler) Get(c *fiber.Ctx) error {
	id, err := tourID(c)
	if err != nil {
		return err
	}
	tour, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"tour": dto.NewTourResponse(tour)},
	})
}

// Create handles POST /tours.
func (h *ToursHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTourRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	tour, err := h.service.Create(c.Context(), service.TourCreateInput{
		Name:         req.Name,
		Duration:     req.Duration,
		MaxGroupSize: req.MaxGroupSize,
		Difficulty:   req.Difficulty,
		Price:        req.Price,
		Summary:      req.Summary,
		Description:  req.Description,
		ImageCover:   req.ImageCover,
		StartDates:   req.StartDates,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"tour": dto.NewTourResponse(tour)},
	})
}

// Update handles PUT /tours/:id.
func (h *ToursHandler) Update(c *fiber.Ctx) error {
	id, err := tourID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTourRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	tour, err := h.service.Update(c.Context(), id, service.TourUpdateInput{
		Name:         req.Name,
		Duration:     req.Duration,
		MaxGroupSize: req.MaxGroupSize,
		Difficulty:   req.Difficulty,
		Price:        req.Price,
		Summary:      req.Summary,
		Description:  req.Description,
		ImageCover:   req.ImageCover,
		StartDates:   req.StartDates,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"tour": dto.NewTourResponse(tour)},
	})
}

// Delete handles DELETE /tours/:id.
func (h *ToursHandler) Delete(c *fiber.Ctx) error {
	id, err := tourID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Stats handles GET /tours/tour-stats.
func (h *ToursHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TourStatsResponse, 0, len(stats))
	for _, row := range stats {
		items = append(items, dto.TourStatsResponse{
			Difficulty:  row.Difficulty,
			NumTours:    row.NumTours,
			AvgRating:   row.AvgRating,
			AvgQuantity: row.AvgQuantity,
			AvgPrice:    row.AvgPrice,
			MinPrice:    row.MinPrice,
			MaxPrice:    row.MaxPrice,
		})
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"stats": items},
	})
}

// MonthlyPlan handles GET /tours/monthly-plan/:year.
func (h *ToursHandler) MonthlyPlan(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil || year < 1 || year > time.Now().Year()+100 {
		return apperrors.NewCastError("year", c.Params("year"))
	}

	plan, err := h.service.MonthlyPlan(c.Context(), year)
	if err != nil {
		return err
	}
	items := make([]dto.MonthlyPlanResponse, 0, len(plan))
	for _, entry := range plan {
		items = append(items, dto.MonthlyPlanResponse{
			Month:     entry.Month,
			TourCount: entry.TourCount,
			Tours:     entry.Tours,
		})
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"plan": items},
	})
}

func tourID(c *fiber.Ctx) (string, error) {
	raw := c.Params("id")
	if _, err := uuid.Parse(raw); err != nil {
		return "", apperrors.NewCastError("id", raw)
	}
	return raw, nil
}

// queryValues copies the request query string into url.Values for the
// features builder.
func queryValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Request().URI().QueryArgs().VisitAll(func(key, val []byte) {
		values.Add(string(key), string(val))
	})
	return values
}
