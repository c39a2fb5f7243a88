package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tour-service/internal/domain"
)

// tourColumns is the whitelist exposed to the query features builder. Order
// matches the scan order below.
var tourColumns = []string{
	"id", "name", "duration", "max_group_size", "difficulty",
	"ratings_average", "ratings_quantity", "price", "summary",
	"description", "image_cover", "start_dates", "created_at", "updated_at",
}

// NewTourFeatures returns a features builder bound to the tours table.
func NewTourFeatures() *QueryFeatures {
	return NewQueryFeatures("tours", tourColumns...)
}

// TourRepository encapsulates tour persistence.
type TourRepository interface {
	Create(ctx context.Context, tour *domain.Tour) error
	Update(ctx context.Context, tour *domain.Tour) error
	GetByID(ctx context.Context, id string) (*domain.Tour, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, features *QueryFeatures) ([]domain.Tour, error)
	Stats(ctx context.Context) ([]domain.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]domain.MonthlyPlanEntry, error)
}

type tourRepository struct {
	pool *pgxpool.Pool
}

// NewTourRepository returns a Postgres-backed implementation.
func NewTourRepository(pool *pgxpool.Pool) TourRepository {
	return &tourRepository{pool: pool}
}

func (r *tourRepository) Create(ctx context.Context, tour *domain.Tour) error {
	const query = `
        INSERT INTO tours (name, duration, max_group_size, difficulty, ratings_average,
                           ratings_quantity, price, summary, description, image_cover, start_dates)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, ratings_average, ratings_quantity, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		tour.Name,
		tour.Duration,
		tour.MaxGroupSize,
		tour.Difficulty,
		tour.RatingsAverage,
		tour.RatingsQuantity,
		tour.Price,
		tour.Summary,
		tour.Description,
		tour.ImageCover,
		tour.StartDates,
	).Scan(&tour.ID, &tour.RatingsAverage, &tour.RatingsQuantity, &tour.CreatedAt, &tour.UpdatedAt)
}

func (r *tourRepository) Update(ctx context.Context, tour *domain.Tour) error {
	const query = `
        UPDATE tours SET name=$1, duration=$2, max_group_size=$3, difficulty=$4,
            ratings_average=$5, ratings_quantity=$6, price=$7, summary=$8,
            description=$9, image_cover=$10, start_dates=$11, updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.pool.Exec(ctx, query,
		tour.Name,
		tour.Duration,
		tour.MaxGroupSize,
		tour.Difficulty,
		tour.RatingsAverage,
		tour.RatingsQuantity,
		tour.Price,
		tour.Summary,
		tour.Description,
		tour.ImageCover,
		tour.StartDates,
		tour.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tourRepository) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	const query = `
        SELECT id, name, duration, max_group_size, difficulty, ratings_average,
               ratings_quantity, price, summary, description, image_cover,
               start_dates, created_at, updated_at
        FROM tours WHERE id=$1`

	var tour domain.Tour
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tour.ID,
		&tour.Name,
		&tour.Duration,
		&tour.MaxGroupSize,
		&tour.Difficulty,
		&tour.RatingsAverage,
		&tour.RatingsQuantity,
		&tour.Price,
		&tour.Summary,
		&tour.Description,
		&tour.ImageCover,
		&tour.StartDates,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &tour, nil
}

// Delete hard-deletes a tour; the schema cascades to its reviews.
func (r *tourRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tours WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tourRepository) List(ctx context.Context, features *QueryFeatures) ([]domain.Tour, error) {
	if features == nil {
		features = NewTourFeatures()
	}
	query, args := features.Build()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Tour
	for rows.Next() {
		var tour domain.Tour
		if err := rows.Scan(
			&tour.ID,
			&tour.Name,
			&tour.Duration,
			&tour.MaxGroupSize,
			&tour.Difficulty,
			&tour.RatingsAverage,
			&tour.RatingsQuantity,
			&tour.Price,
			&tour.Summary,
			&tour.Description,
			&tour.ImageCover,
			&tour.StartDates,
			&tour.CreatedAt,
			&tour.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tour)
	}
	return result, rows.Err()
}

// Stats computes per-difficulty aggregates over well-rated tours.
func (r *tourRepository) Stats(ctx context.Context) ([]domain.TourStats, error) {
	const query = `
        SELECT difficulty, COUNT(*)::int, AVG(ratings_average), AVG(ratings_quantity),
               AVG(price), MIN(price), MAX(price)
        FROM tours
        WHERE ratings_average >= 4.5
        GROUP BY difficulty
        ORDER BY AVG(price)`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TourStats
	for rows.Next() {
		var stats domain.TourStats
		if err := rows.Scan(
			&stats.Difficulty,
			&stats.NumTours,
			&stats.AvgRating,
			&stats.AvgQuantity,
			&stats.AvgPrice,
			&stats.MinPrice,
			&stats.MaxPrice,
		); err != nil {
			return nil, err
		}
		result = append(result, stats)
	}
	return result, rows.Err()
}

// MonthlyPlan groups tour start dates within the year by month.
func (r *tourRepository) MonthlyPlan(ctx context.Context, year int) ([]domain.MonthlyPlanEntry, error) {
	const query = `
        SELECT EXTRACT(MONTH FROM d)::int AS month, COUNT(*)::int AS tour_count, ARRAY_AGG(name)
        FROM tours, UNNEST(start_dates) AS d
        WHERE d >= make_date($1, 1, 1) AND d < make_date($1 + 1, 1, 1)
        GROUP BY month
        ORDER BY tour_count DESC, month`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MonthlyPlanEntry
	for rows.Next() {
		var entry domain.MonthlyPlanEntry
		if err := rows.Scan(&entry.Month, &entry.TourCount, &entry.Tours); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
