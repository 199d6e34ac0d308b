package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"guestgate/internal/domain"
)

const guestColumns = "id, name, email, token, event_id, created_at, sent_at, checked_in_at"

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{
		DB: db,
	}
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (name, email, token, event_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, g.Name, g.Email, g.Token, g.EventID, g.CreatedAt).Scan(&g.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateToken
		}
		return err
	}
	return nil
}

func (r *guestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`
	return r.scanGuest(r.DB.QueryRowContext(ctx, query, id))
}

func (r *guestRepository) GetByToken(ctx context.Context, token string) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE token = $1`
	return r.scanGuest(r.DB.QueryRowContext(ctx, query, token))
}

func (r *guestRepository) List(ctx context.Context, eventID *int64) ([]*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests ORDER BY created_at DESC, id DESC`
	args := []any{}
	if eventID != nil {
		query = `SELECT ` + guestColumns + ` FROM guests WHERE event_id = $1 ORDER BY created_at DESC, id DESC`
		args = append(args, *eventID)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g := &domain.Guest{}
		var sentNull, checkedNull sql.NullTime
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &g.Token, &g.EventID, &g.CreatedAt, &sentNull, &checkedNull); err != nil {
			return nil, err
		}
		applyNullTimes(g, sentNull, checkedNull)
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE guests SET sent_at = $2 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Checkin is the one mutation needing coordination: the NULL guard and
// the write are a single statement, so concurrent redemptions of one
// token serialize in the database and at most one matches.
func (r *guestRepository) Checkin(ctx context.Context, token string, at time.Time) (*domain.Guest, error) {
	query := `
		UPDATE guests SET checked_in_at = $2
		WHERE token = $1 AND checked_in_at IS NULL
		RETURNING ` + guestColumns
	return r.scanGuest(r.DB.QueryRowContext(ctx, query, token, at))
}

func (r *guestRepository) scanGuest(row *sql.Row) (*domain.Guest, error) {
	g := &domain.Guest{}
	var sentNull, checkedNull sql.NullTime
	err := row.Scan(&g.ID, &g.Name, &g.Email, &g.Token, &g.EventID, &g.CreatedAt, &sentNull, &checkedNull)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	applyNullTimes(g, sentNull, checkedNull)
	return g, nil
}

func applyNullTimes(g *domain.Guest, sentNull, checkedNull sql.NullTime) {
	if sentNull.Valid {
		g.SentAt = &sentNull.Time
	}
	if checkedNull.Valid {
		g.CheckedInAt = &checkedNull.Time
	}
}
