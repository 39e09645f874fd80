package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jasonwuio/clubhub-backend/internal/pkg/apperror"
)

// Repository defines methods for accessing event data.
type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter Filter) ([]*Event, int, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new event repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, e *Event) error {
	metadata, err := json.Marshal(metadataOrEmpty(e.Metadata))
	if err != nil {
		return fmt.Errorf("marshal metadata failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("events").
		Columns(
			"club_id", "title", "description", "poster_url", "start_date", "end_date",
			"location", "link", "fee", "status", "metadata",
		).
		Values(
			e.ClubID, e.Title, e.Description, e.PosterURL, e.StartDate, e.EndDate,
			e.Location, e.Link, e.Fee, e.Status, metadata,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create event query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return apperror.Storage(err, "failed to create event")
	}
	return nil
}

const eventColumns = "id, club_id, title, description, poster_url, start_date, end_date, location, link, fee, status, metadata, created_at, updated_at"

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	var metadataJSON []byte
	if err := row.Scan(
		&e.ID,
		&e.ClubID,
		&e.Title,
		&e.Description,
		&e.PosterURL,
		&e.StartDate,
		&e.EndDate,
		&e.Location,
		&e.Link,
		&e.Fee,
		&e.Status,
		&metadataJSON,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &e.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata failed: %w", err)
		}
	}
	return &e, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE id = $1"

	e, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperror.Storage(err, "failed to get event")
	}
	return e, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Event, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"id", "club_id", "title", "description", "poster_url", "start_date", "end_date",
		"location", "link", "fee", "status", "metadata", "created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).From("events")

	if filter.ClubID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"club_id": filter.ClubID})
	}
	if filter.Status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": filter.Status})
	}

	queryBuilder = queryBuilder.OrderBy("start_date ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list events query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperror.Storage(err, "failed to list events")
	}
	defer rows.Close()

	var events []*Event
	var total int

	for rows.Next() {
		var e Event
		var metadataJSON []byte
		if err := rows.Scan(
			&e.ID, &e.ClubID, &e.Title, &e.Description, &e.PosterURL, &e.StartDate,
			&e.EndDate, &e.Location, &e.Link, &e.Fee, &e.Status, &metadataJSON,
			&e.CreatedAt, &e.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan event failed: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &e.Metadata); err != nil {
				return nil, 0, fmt.Errorf("unmarshal metadata failed: %w", err)
			}
		}
		events = append(events, &e)
	}

	return events, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Event) error {
	metadata, err := json.Marshal(metadataOrEmpty(e.Metadata))
	if err != nil {
		return fmt.Errorf("marshal metadata failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("events").
		Set("title", e.Title).
		Set("description", e.Description).
		Set("poster_url", e.PosterURL).
		Set("start_date", e.StartDate).
		Set("end_date", e.EndDate).
		Set("location", e.Location).
		Set("link", e.Link).
		Set("fee", e.Fee).
		Set("status", e.Status).
		Set("metadata", metadata).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update event query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return apperror.Storage(err, "failed to update event")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return apperror.Storage(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM announcements WHERE event_id = $1", id); err != nil {
		return apperror.Storage(err, "failed to delete event announcements")
	}

	ct, err := tx.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return apperror.Storage(err, "failed to delete event")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Storage(err, "failed to commit event delete")
	}
	return nil
}

func metadataOrEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
