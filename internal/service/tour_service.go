package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tour-service/internal/domain"
	"github.com/spec-kit/tour-service/internal/repository"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

// TourService layers validation and query shaping over the tour repository.
type TourService struct {
	tours repository.TourRepository
}

// NewTourService builds the service.
func NewTourService(tours repository.TourRepository) *TourService {
	return &TourService{tours: tours}
}

// TourCreateInput carries the fields accepted on creation.
type TourCreateInput struct {
	Name         string
	Duration     int
	MaxGroupSize int
	Difficulty   domain.Difficulty
	Price        float64
	Summary      string
	Description  string
	ImageCover   string
	StartDates   []time.Time
}

// TourUpdateInput carries the optional fields accepted on update.
type TourUpdateInput struct {
	Name         *string
	Duration     *int
	MaxGroupSize *int
	Difficulty   *domain.Difficulty
	Price        *float64
	Summary      *string
	Description  *string
	ImageCover   *string
	StartDates   []time.Time
}

// List runs the query features pipeline over tours and returns the items
// together with the requested response projection.
func (s *TourService) List(ctx context.Context, params url.Values) ([]domain.Tour, []string, error) {
	features := repository.NewTourFeatures().Apply(params)
	tours, err := s.tours.List(ctx, features)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return tours, features.SelectedFields(), nil
}

// Get fetches one tour by id.
func (s *TourService) Get(ctx context.Context, id string) (*domain.Tour, error) {
	tour, err := s.tours.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("tour")
		}
		return nil, apperrors.MapError(err)
	}
	return tour, nil
}

// Create validates required fields and persists a new tour.
func (s *TourService) Create(ctx context.Context, input TourCreateInput) (*domain.Tour, error) {
	var problems []string
	if input.Name == "" {
		problems = append(problems, "A tour must have a name")
	}
	if input.Duration <= 0 {
		problems = append(problems, "A tour must have a duration")
	}
	if input.MaxGroupSize <= 0 {
		problems = append(problems, "A tour must have a group size")
	}
	if !domain.ValidDifficulty(input.Difficulty) {
		problems = append(problems, "Difficulty is either: easy, medium, difficult")
	}
	if input.Price <= 0 {
		problems = append(problems, "A tour must have a price")
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidationError(problems...)
	}

	tour := &domain.Tour{
		Name:           input.Name,
		Duration:       input.Duration,
		MaxGroupSize:   input.MaxGroupSize,
		Difficulty:     input.Difficulty,
		Price:          input.Price,
		Summary:        input.Summary,
		Description:    input.Description,
		ImageCover:     input.ImageCover,
		StartDates:     input.StartDates,
		RatingsAverage: 4.5,
	}
	if err := s.tours.Create(ctx, tour); err != nil {
		return nil, apperrors.MapError(err)
	}
	return tour, nil
}

// Update applies the provided fields and re-runs validation.
func (s *TourService) Update(ctx context.Context, id string, input TourUpdateInput) (*domain.Tour, error) {
	tour, err := s.tours.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("tour")
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		tour.Name = *input.Name
	}
	if input.Duration != nil {
		tour.Duration = *input.Duration
	}
	if input.MaxGroupSize != nil {
		tour.MaxGroupSize = *input.MaxGroupSize
	}
	if input.Difficulty != nil {
		if !domain.ValidDifficulty(*input.Difficulty) {
			return nil, apperrors.NewValidationError("Difficulty is either: easy, medium, difficult")
		}
		tour.Difficulty = *input.Difficulty
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperrors.NewValidationError("A tour must have a price")
		}
		tour.Price = *input.Price
	}
	if input.Summary != nil {
		tour.Summary = *input.Summary
	}
	if input.Description != nil {
		tour.Description = *input.Description
	}
	if input.ImageCover != nil {
		tour.ImageCover = *input.ImageCover
	}
	if input.StartDates != nil {
		tour.StartDates = input.StartDates
	}

	if err := s.tours.Update(ctx, tour); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("tour")
		}
		return nil, apperrors.MapError(err)
	}
	return tour, nil
}

// Delete removes a tour and, through the schema, its reviews.
func (s *TourService) Delete(ctx context.Context, id string) error {
	if err := s.tours.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("tour")
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Stats returns the per-difficulty aggregate view.
func (s *TourService) Stats(ctx context.Context) ([]domain.TourStats, error) {
	stats, err := s.tours.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

// MonthlyPlan returns per-month start-date counts for the given year.
func (s *TourService) MonthlyPlan(ctx context.Context, year int) ([]domain.MonthlyPlanEntry, error) {
	plan, err := s.tours.MonthlyPlan(ctx, year)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return plan, nil
}
