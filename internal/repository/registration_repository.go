package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vibecatcher/event-service/internal/domain"
)

// RegistrationRepository defines persistence access for event registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	SetCheckIn(ctx context.Context, id string, at time.Time) error
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository returns a Postgres-backed implementation.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

const registrationColumns = `
        id, event_id, user_id, full_name, email, phone, address, city, state,
        zip_code, special_requirements, ticket_quantity, registration_date,
        payment_status, total_amount, payment_method, payment_date,
        transaction_id, confirmation_code, check_in_status, check_in_time,
        created_at, updated_at`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	const query = `
        INSERT INTO registrations (event_id, user_id, full_name, email, phone,
                                   address, city, state, zip_code, special_requirements,
                                   ticket_quantity, registration_date, payment_status,
                                   total_amount, confirmation_code)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		reg.EventID,
		reg.UserID,
		reg.FullName,
		reg.Email,
		reg.Phone,
		reg.Address,
		reg.City,
		reg.State,
		reg.ZipCode,
		reg.SpecialRequirements,
		reg.TicketQuantity,
		reg.RegistrationDate,
		reg.PaymentStatus,
		reg.TotalAmount,
		reg.ConfirmationCode,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id=$1`

	reg, err := scanRegistration(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, eventID)
}

func (r *registrationRepository) list(ctx context.Context, query string, arg any) ([]domain.Registration, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(ticket_quantity), 0) FROM registrations WHERE event_id=$1`, eventID,
	).Scan(&count)
	return count, err
}

func (r *registrationRepository) SetCheckIn(ctx context.Context, id string, at time.Time) error {
	const query = `
        UPDATE registrations SET check_in_status=TRUE, check_in_time=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanRegistration(row pgx.Row) (*domain.Registration, error) {
	var reg domain.Registration
	if err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.FullName,
		&reg.Email,
		&reg.Phone,
		&reg.Address,
		&reg.City,
		&reg.State,
		&reg.ZipCode,
		&reg.SpecialRequirements,
		&reg.TicketQuantity,
		&reg.RegistrationDate,
		&reg.PaymentStatus,
		&reg.TotalAmount,
		&reg.PaymentMethod,
		&reg.PaymentDate,
		&reg.TransactionID,
		&reg.ConfirmationCode,
		&reg.CheckInStatus,
		&reg.CheckInTime,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reg, nil
}
