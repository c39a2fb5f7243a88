package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tour-service/internal/domain"
)

// ReviewRepository encapsulates review persistence. Every read resolves the
// authoring user's name and photo through an explicit join.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository returns a Postgres-backed implementation.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (review, rating, tour_id, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		review.Review,
		review.Rating,
		review.TourID,
		review.UserID,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

const reviewSelect = `
        SELECT r.id, r.review, r.rating, r.tour_id, r.user_id,
               u.name, u.photo, r.created_at, r.updated_at
        FROM reviews r
        JOIN users u ON u.id = r.user_id`

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := reviewSelect + ` WHERE r.id=$1`

	var review domain.Review
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.Review,
		&review.Rating,
		&review.TourID,
		&review.UserID,
		&review.Author.Name,
		&review.Author.Photo,
		&review.CreatedAt,
		&review.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	query := reviewSelect + ` ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.Review,
			&review.Rating,
			&review.TourID,
			&review.UserID,
			&review.Author.Name,
			&review.Author.Photo,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}
