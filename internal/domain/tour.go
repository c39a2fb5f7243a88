package domain

import "time"

// Difficulty enumerates tour difficulty levels.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// ValidDifficulty reports whether the value is a known difficulty.
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}

// Tour is the aggregate for bookable tours. Reviews reference tours but are
// owned by their own aggregate.
type Tour struct {
	ID              string
	Name            string
	Duration        int
	MaxGroupSize    int
	Difficulty      Difficulty
	RatingsAverage  float64
	RatingsQuantity int
	Price           float64
	Summary         string
	Description     string
	ImageCover      string
	StartDates      []time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TourStats is a per-difficulty aggregate over tours.
type TourStats struct {
	Difficulty  Difficulty
	NumTours    int
	AvgRating   float64
	AvgQuantity float64
	AvgPrice    float64
	MinPrice    float64
	MaxPrice    float64
}

// MonthlyPlanEntry summarizes tours starting in one month of a year.
type MonthlyPlanEntry struct {
	Month     int
	TourCount int
	Tours     []string
}
