package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vibecatcher/event-service/internal/domain"
)

// ReviewRepository defines persistence access for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Review, error)
	SetAdminResponse(ctx context.Context, id, response string) error
	Delete(ctx context.Context, id string) error
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
        INSERT INTO reviews (event_id, user_id, username, review_text, rating, sentiment)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		review.EventID,
		review.UserID,
		review.Username,
		review.ReviewText,
		review.Rating,
		review.Sentiment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	const query = `
        SELECT id, event_id, user_id, username, review_text, rating, sentiment,
               admin_response, created_at, updated_at
        FROM reviews WHERE id=$1`

	var review domain.Review
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.EventID,
		&review.UserID,
		&review.Username,
		&review.ReviewText,
		&review.Rating,
		&review.Sentiment,
		&review.AdminResponse,
		&review.CreatedAt,
		&review.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Review, error) {
	const query = `
        SELECT id, event_id, user_id, username, review_text, rating, sentiment,
               admin_response, created_at, updated_at
        FROM reviews WHERE event_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.EventID,
			&review.UserID,
			&review.Username,
			&review.ReviewText,
			&review.Rating,
			&review.Sentiment,
			&review.AdminResponse,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) SetAdminResponse(ctx context.Context, id, response string) error {
	const query = `UPDATE reviews SET admin_response=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, response, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
