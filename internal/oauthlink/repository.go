package oauthlink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jasonwuio/clubhub-backend/internal/pkg/apperror"
)

type Repository interface {
	Upsert(ctx context.Context, link *Link) error
	GetByProviderAccount(ctx context.Context, provider, providerUserID string) (*Link, error)
	GetByUserProvider(ctx context.Context, userID, provider string) (*Link, error)
	ListByUser(ctx context.Context, userID string) ([]Link, error)
	Delete(ctx context.Context, userID, provider string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const linkColumns = "id, user_id, provider, provider_user_id, access_token, refresh_token, token_expiry, metadata, created_at, updated_at"

func (r *pgxRepository) Upsert(ctx context.Context, link *Link) error {
	meta, err := json.Marshal(metadataOrEmpty(link.Metadata))
	if err != nil {
		return fmt.Errorf("marshal oauth metadata: %w", err)
	}

	// One row per (user, provider); reconnecting refreshes tokens in place.
	query := `
		INSERT INTO oauth_links (user_id, provider, provider_user_id, access_token, refresh_token, token_expiry, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			provider_user_id = EXCLUDED.provider_user_id,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expiry = EXCLUDED.token_expiry,
			metadata = EXCLUDED.metadata,
			updated_at = now()
		RETURNING id, created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		link.UserID, link.Provider, link.ProviderUserID,
		link.AccessToken, link.RefreshToken, link.TokenExpiry, meta,
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		// The (provider, provider_user_id) constraint catches a concurrent
		// link of the same account by another user.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrLinkedToOtherUser
		}
		return apperror.Storage(err, "upsert oauth link")
	}
	return nil
}

func (r *pgxRepository) GetByProviderAccount(ctx context.Context, provider, providerUserID string) (*Link, error) {
	return r.getOne(ctx, squirrel.Eq{"provider": provider, "provider_user_id": providerUserID})
}

func (r *pgxRepository) GetByUserProvider(ctx context.Context, userID, provider string) (*Link, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID, "provider": provider})
}

func (r *pgxRepository) getOne(ctx context.Context, pred squirrel.Eq) (*Link, error) {
	query, args, err := r.sb.
		Select(linkColumns).
		From("oauth_links").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build oauth link query: %w", err)
	}

	link, err := scanLink(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperror.Storage(err, "get oauth link")
	}
	return link, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]Link, error) {
	query, args, err := r.sb.
		Select(linkColumns).
		From("oauth_links").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("provider").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build oauth link list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.Storage(err, "list oauth links")
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, apperror.Storage(err, "scan oauth link")
		}
		links = append(links, *link)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage(err, "iterate oauth links")
	}
	return links, nil
}

func (r *pgxRepository) Delete(ctx context.Context, userID, provider string) error {
	query, args, err := r.sb.
		Delete("oauth_links").
		Where(squirrel.Eq{"user_id": userID, "provider": provider}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build oauth link delete query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return apperror.Storage(err, "delete oauth link")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLink(row pgx.Row) (*Link, error) {
	var link Link
	var meta []byte
	err := row.Scan(
		&link.ID, &link.UserID, &link.Provider, &link.ProviderUserID,
		&link.AccessToken, &link.RefreshToken, &link.TokenExpiry, &meta,
		&link.CreatedAt, &link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &link.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal oauth metadata: %w", err)
		}
	}
	return &link, nil
}

func metadataOrEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
