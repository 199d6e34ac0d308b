package postgres

import (
	"context"
	"database/sql"
	"errors"

	"guestgate/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, date, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var date sql.NullTime
	if e.Date != nil {
		date = sql.NullTime{Time: *e.Date, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query, e.Name, date, e.CreatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `
		SELECT id, name, date, created_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var dateNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &dateNull, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if dateNull.Valid {
		e.Date = &dateNull.Time
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, name, date, created_at
		FROM events
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var dateNull sql.NullTime
		if err := rows.Scan(&e.ID, &e.Name, &dateNull, &e.CreatedAt); err != nil {
			return nil, err
		}
		if dateNull.Valid {
			e.Date = &dateNull.Time
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
