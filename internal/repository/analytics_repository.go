package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsTotals aggregates platform-wide counters for the admin dashboard.
type AnalyticsTotals struct {
	TotalEvents        int     `json:"totalEvents"`
	TotalRegistrations int     `json:"totalRegistrations"`
	TotalTicketsSold   int     `json:"totalTicketsSold"`
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalReviews       int     `json:"totalReviews"`
	AverageRating      float64 `json:"averageRating"`
}

// SentimentBreakdown counts reviews per sentiment label.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// EventRegistrationCount is one row of the registrations-per-event report.
type EventRegistrationCount struct {
	EventID       string  `json:"eventId"`
	EventTitle    string  `json:"eventTitle"`
	Registrations int     `json:"registrations"`
	TicketsSold   int     `json:"ticketsSold"`
	Revenue       float64 `json:"revenue"`
}

// AnalyticsRepository exposes read-only aggregate queries.
type AnalyticsRepository interface {
	Totals(ctx context.Context) (*AnalyticsTotals, error)
	SentimentBreakdown(ctx context.Context) (*SentimentBreakdown, error)
	RegistrationsByEvent(ctx context.Context) ([]EventRegistrationCount, error)
}

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository returns a Postgres-backed implementation.
func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) Totals(ctx context.Context) (*AnalyticsTotals, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM events),
            (SELECT COUNT(*) FROM registrations),
            (SELECT COALESCE(SUM(ticket_quantity), 0) FROM registrations),
            (SELECT COALESCE(SUM(total_amount), 0)
               FROM registrations WHERE payment_status = 'completed'),
            (SELECT COUNT(*) FROM reviews),
            (SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0) FROM reviews)`

	totals := &AnalyticsTotals{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&totals.TotalEvents,
		&totals.TotalRegistrations,
		&totals.TotalTicketsSold,
		&totals.TotalRevenue,
		&totals.TotalReviews,
		&totals.AverageRating,
	)
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *analyticsRepository) SentimentBreakdown(ctx context.Context) (*SentimentBreakdown, error) {
	const query = `
        SELECT
            COUNT(*) FILTER (WHERE sentiment = 'positive'),
            COUNT(*) FILTER (WHERE sentiment = 'negative'),
            COUNT(*) FILTER (WHERE sentiment = 'neutral')
        FROM reviews`

	breakdown := &SentimentBreakdown{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&breakdown.Positive,
		&breakdown.Negative,
		&breakdown.Neutral,
	)
	if err != nil {
		return nil, err
	}
	return breakdown, nil
}

func (r *analyticsRepository) RegistrationsByEvent(ctx context.Context) ([]EventRegistrationCount, error) {
	const query = `
        SELECT e.id, e.title,
               COUNT(r.id),
               COALESCE(SUM(r.ticket_quantity), 0),
               COALESCE(SUM(r.total_amount) FILTER (WHERE r.payment_status = 'completed'), 0)
        FROM events e
        LEFT JOIN registrations r ON r.event_id = e.id
        GROUP BY e.id, e.title
        ORDER BY COUNT(r.id) DESC, e.title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []EventRegistrationCount
	for rows.Next() {
		var row EventRegistrationCount
		if err := rows.Scan(&row.EventID, &row.EventTitle, &row.Registrations, &row.TicketsSold, &row.Revenue); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
