package dto

import (
	"encoding/json"
	"time"

	"github.com/spec-kit/tour-service/internal/domain"
)

// CreateTourRequest payload. JSON keys match the filter/sort/fields
// vocabulary of the listing query parameters.
type CreateTourRequest struct {
	Name         string            `json:"name"`
	Duration     int               `json:"duration"`
	MaxGroupSize int               `json:"max_group_size"`
	Difficulty   domain.Difficulty `json:"difficulty"`
	Price        float64           `json:"price"`
	Summary      string            `json:"summary"`
	Description  string            `json:"description"`
	ImageCover   string            `json:"image_cover"`
	StartDates   []time.Time       `json:"start_dates"`
}

// UpdateTourRequest allows partial updates.
type UpdateTourRequest struct {
	Name         *string            `json:"name,omitempty"`
	Duration     *int               `json:"duration,omitempty"`
	MaxGroupSize *int               `json:"max_group_size,omitempty"`
	Difficulty   *domain.Difficulty `json:"difficulty,omitempty"`
	Price        *float64           `json:"price,omitempty"`
	Summary      *string            `json:"summary,omitempty"`
	Description  *string            `json:"description,omitempty"`
	ImageCover   *string            `json:"image_cover,omitempty"`
	StartDates   []time.Time        `json:"start_dates,omitempty"`
}

// TourResponse is the full tour representation.
type TourResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Duration        int               `json:"duration"`
	MaxGroupSize    int               `json:"max_group_size"`
	Difficulty      domain.Difficulty `json:"difficulty"`
	RatingsAverage  float64           `json:"ratings_average"`
	RatingsQuantity int               `json:"ratings_quantity"`
	Price           float64           `json:"price"`
	Summary         string            `json:"summary"`
	Description     string            `json:"description"`
	ImageCover      string            `json:"image_cover"`
	StartDates      []time.Time       `json:"start_dates"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewTourResponse maps the domain tour.
func NewTourResponse(tour *domain.Tour) TourResponse {
	return TourResponse{
		ID:              tour.ID,
		Name:            tour.Name,
		Duration:        tour.Duration,
		MaxGroupSize:    tour.MaxGroupSize,
		Difficulty:      tour.Difficulty,
		RatingsAverage:  tour.RatingsAverage,
		RatingsQuantity: tour.RatingsQuantity,
		Price:           tour.Price,
		Summary:         tour.Summary,
		Description:     tour.Description,
		ImageCover:      tour.ImageCover,
		StartDates:      tour.StartDates,
		CreatedAt:       tour.CreatedAt,
		UpdatedAt:       tour.UpdatedAt,
	}
}

// TourStatsResponse is one per-difficulty aggregate row.
type TourStatsResponse struct {
	Difficulty  domain.Difficulty `json:"difficulty"`
	NumTours    int               `json:"num_tours"`
	AvgRating   float64           `json:"avg_rating"`
	AvgQuantity float64           `json:"avg_quantity"`
	AvgPrice    float64           `json:"avg_price"`
	MinPrice    float64           `json:"min_price"`
	MaxPrice    float64           `json:"max_price"`
}

// MonthlyPlanResponse is one month of the yearly plan.
type MonthlyPlanResponse struct {
	Month     int      `json:"month"`
	TourCount int      `json:"tour_count"`
	Tours     []string `json:"tours"`
}

// Project reduces each item to the selected JSON fields. A nil selection
// returns the items unchanged; "id" is always kept.
func Project[T any](items []T, fields []string) any {
	if fields == nil {
		return items
	}
	keep := make(map[string]struct{}, len(fields)+1)
	keep["id"] = struct{}{}
	for _, field := range fields {
		keep[field] = struct{}{}
	}

	projected := make([]map[string]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			continue
		}
		var asMap map[string]json.RawMessage
		if err := json.Unmarshal(raw, &asMap); err != nil {
			continue
		}
		for key := range asMap {
			if _, ok := keep[key]; !ok {
				delete(asMap, key)
			}
		}
		projected = append(projected, asMap)
	}
	return projected
}
