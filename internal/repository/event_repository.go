package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vibecatcher/event-service/internal/domain"
)

// EventWithStats pairs an event with its review aggregates for listings.
type EventWithStats struct {
	Event domain.Event
	Stats domain.EventStats
}

// EventRepository defines persistence access for event listings.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListWithStats(ctx context.Context) ([]EventWithStats, error)
	DecrementTickets(ctx context.Context, id string, quantity int) error
	IncrementTickets(ctx context.Context, id string, quantity int) error
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a Postgres-backed implementation.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (title, location, description, date, time, category,
                            is_paid, price, tickets_available, registration_deadline,
                            max_registrations, status, image_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Location,
		event.Description,
		event.Date,
		event.Time,
		event.Category,
		event.IsPaid,
		event.Price,
		event.TicketsAvailable,
		event.RegistrationDeadline,
		event.MaxRegistrations,
		event.Status,
		event.ImageURL,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events
        SET title=$1, location=$2, description=$3, date=$4, time=$5, category=$6,
            is_paid=$7, price=$8, tickets_available=$9, registration_deadline=$10,
            max_registrations=$11, status=$12, image_url=$13, updated_at=NOW()
        WHERE id=$14`

	cmd, err := r.pool.Exec(ctx, query,
		event.Title,
		event.Location,
		event.Description,
		event.Date,
		event.Time,
		event.Category,
		event.IsPaid,
		event.Price,
		event.TicketsAvailable,
		event.RegistrationDeadline,
		event.MaxRegistrations,
		event.Status,
		event.ImageURL,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `
        SELECT id, title, location, description, date, time, category,
               is_paid, price, tickets_available, registration_deadline,
               max_registrations, status, image_url, created_at, updated_at
        FROM events WHERE id=$1`

	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Location,
		&event.Description,
		&event.Date,
		&event.Time,
		&event.Category,
		&event.IsPaid,
		&event.Price,
		&event.TicketsAvailable,
		&event.RegistrationDeadline,
		&event.MaxRegistrations,
		&event.Status,
		&event.ImageURL,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListWithStats returns all events newest first, each with review count,
// average rating and percent-positive sentiment computed in SQL.
func (r *eventRepository) ListWithStats(ctx context.Context) ([]EventWithStats, error) {
	const query = `
        SELECT e.id, e.title, e.location, e.description, e.date, e.time, e.category,
               e.is_paid, e.price, e.tickets_available, e.registration_deadline,
               e.max_registrations, e.status, e.image_url, e.created_at, e.updated_at,
               COUNT(r.id) AS review_count,
               COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0) AS avg_rating,
               COALESCE(ROUND(100.0 * COUNT(r.id) FILTER (WHERE r.sentiment = 'positive') / NULLIF(COUNT(r.id), 0)), 0) AS sentiment_score
        FROM events e
        LEFT JOIN reviews r ON r.event_id = e.id
        GROUP BY e.id
        ORDER BY e.date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []EventWithStats
	for rows.Next() {
		var item EventWithStats
		if err := rows.Scan(
			&item.Event.ID,
			&item.Event.Title,
			&item.Event.Location,
			&item.Event.Description,
			&item.Event.Date,
			&item.Event.Time,
			&item.Event.Category,
			&item.Event.IsPaid,
			&item.Event.Price,
			&item.Event.TicketsAvailable,
			&item.Event.RegistrationDeadline,
			&item.Event.MaxRegistrations,
			&item.Event.Status,
			&item.Event.ImageURL,
			&item.Event.CreatedAt,
			&item.Event.UpdatedAt,
			&item.Stats.ReviewCount,
			&item.Stats.AvgRating,
			&item.Stats.SentimentScore,
		); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// DecrementTickets atomically reserves tickets; fails with pgx.ErrNoRows
// when not enough remain.
func (r *eventRepository) DecrementTickets(ctx context.Context, id string, quantity int) error {
	const query = `
        UPDATE events SET tickets_available = tickets_available - $1, updated_at=NOW()
        WHERE id=$2 AND tickets_available >= $1`

	cmd, err := r.pool.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IncrementTickets returns reserved tickets to the pool, compensating a
// reservation whose registration could not be stored.
func (r *eventRepository) IncrementTickets(ctx context.Context, id string, quantity int) error {
	const query = `
        UPDATE events SET tickets_available = tickets_available + $1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
