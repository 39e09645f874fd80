package club

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

// Repository defines methods for accessing club and join-request data.
type Repository interface {
	// Club methods
	Create(ctx context.Context, c *Club) error
	GetByID(ctx context.Context, id string) (*Club, error)
	List(ctx context.Context, filter Filter) ([]*Club, int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Club, error)
	Update(ctx context.Context, c *Club) error
	Delete(ctx context.Context, id string) error
	// Request methods
	CreateRequest(ctx context.Context, req *Request) error
	GetRequest(ctx context.Context, id string) (*Request, error)
	ListRequestsByClub(ctx context.Context, clubID string) ([]*Request, error)
	ListRequestsByUser(ctx context.Context, userID string) ([]*Request, error)
	ResolveRequest(ctx context.Context, req *Request) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new club repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// ------------------------
//      Club methods
// ------------------------

func (r *pgxRepository) Create(ctx context.Context, c *Club) error {
	members, err := json.Marshal(c.Members)
	if err != nil {
		return fmt.Errorf("marshal members failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("clubs").
		Columns("name", "description", "owner_id", "members", "logo_url", "category").
		Values(c.Name, c.Description, c.OwnerID, members, c.LogoURL, c.Category).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create club query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return apperror.Storage(err, "failed to create club")
	}
	return nil
}

const clubColumns = "id, name, description, owner_id, members, logo_url, category, created_at, updated_at"

func scanClub(row pgx.Row) (*Club, error) {
	var c Club
	var membersJSON []byte
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.OwnerID,
		&membersJSON,
		&c.LogoURL,
		&c.Category,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(membersJSON, &c.Members); err != nil {
		return nil, fmt.Errorf("unmarshal members failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Club, error) {
	query := "SELECT " + clubColumns + " FROM clubs WHERE id = $1"

	c, err := scanClub(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperror.Storage(err, "failed to get club")
	}
	return c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Club, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"id", "name", "description", "owner_id", "members", "logo_url", "category",
		"created_at", "updated_at", "count(*) OVER() AS total_count",
	).From("clubs")

	if filter.Category != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"category": filter.Category})
	}

	queryBuilder = queryBuilder.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list clubs query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperror.Storage(err, "failed to list clubs")
	}
	defer rows.Close()

	var clubs []*Club
	var total int

	for rows.Next() {
		var c Club
		var membersJSON []byte
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.OwnerID, &membersJSON,
			&c.LogoURL, &c.Category, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan club failed: %w", err)
		}
		if err := json.Unmarshal(membersJSON, &c.Members); err != nil {
			return nil, 0, fmt.Errorf("unmarshal members failed: %w", err)
		}
		clubs = append(clubs, &c)
	}

	return clubs, total, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Club, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(
		"id", "name", "description", "owner_id", "members", "logo_url", "category",
		"created_at", "updated_at",
	).
		From("clubs").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list clubs by owner query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.Storage(err, "failed to list owned clubs")
	}
	defer rows.Close()

	var clubs []*Club
	for rows.Next() {
		var c Club
		var membersJSON []byte
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.OwnerID, &membersJSON,
			&c.LogoURL, &c.Category, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan club failed: %w", err)
		}
		if err := json.Unmarshal(membersJSON, &c.Members); err != nil {
			return nil, fmt.Errorf("unmarshal members failed: %w", err)
		}
		clubs = append(clubs, &c)
	}

	return clubs, nil
}

// Update persists the club including a full-value replace of the members
// ledger. The JSONB column is never mutated in place.
func (r *pgxRepository) Update(ctx context.Context, c *Club) error {
	members, err := json.Marshal(c.Members)
	if err != nil {
		return fmt.Errorf("marshal members failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("clubs").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("members", members).
		Set("logo_url", c.LogoURL).
		Set("category", c.Category).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update club query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return apperror.Storage(err, "failed to update club")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the club and everything scoped under it in one transaction:
// announcements of the club's events, the events, and the join requests.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return apperror.Storage(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	statements := []string{
		"DELETE FROM announcements WHERE event_id IN (SELECT id FROM events WHERE club_id = $1)",
		"DELETE FROM events WHERE club_id = $1",
		"DELETE FROM club_requests WHERE club_id = $1",
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return apperror.Storage(err, "failed to delete club resources")
		}
	}

	ct, err := tx.Exec(ctx, "DELETE FROM clubs WHERE id = $1", id)
	if err != nil {
		return apperror.Storage(err, "failed to delete club")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Storage(err, "failed to commit club delete")
	}
	return nil
}

// ------------------------
//     Request methods
// ------------------------

func (r *pgxRepository) CreateRequest(ctx context.Context, req *Request) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("club_requests").
		Columns("club_id", "user_id", "status", "message", "requested_role").
		Values(req.ClubID, req.UserID, req.Status, req.Message, req.RequestedRole).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// Partial unique index on (club_id, user_id) WHERE status = 'pending'
			if pgErr.Code == pgerrcode.UniqueViolation {
				return ErrPendingRequestExists
			}
			if pgErr.Code == pgerrcode.ForeignKeyViolation {
				return ErrNotFound
			}
		}
		return apperror.Storage(err, "failed to create join request")
	}
	return nil
}

const requestColumns = "id, club_id, user_id, status, message, requested_role, admin_response, created_at, updated_at"

func scanRequest(row pgx.Row) (*Request, error) {
	var req Request
	if err := row.Scan(
		&req.ID,
		&req.ClubID,
		&req.UserID,
		&req.Status,
		&req.Message,
		&req.RequestedRole,
		&req.AdminResponse,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *pgxRepository) GetRequest(ctx context.Context, id string) (*Request, error) {
	query := "SELECT " + requestColumns + " FROM club_requests WHERE id = $1"

	req, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, apperror.Storage(err, "failed to get join request")
	}
	return req, nil
}

func (r *pgxRepository) ListRequestsByClub(ctx context.Context, clubID string) ([]*Request, error) {
	return r.listRequests(ctx, squirrel.Eq{"club_id": clubID})
}

func (r *pgxRepository) ListRequestsByUser(ctx context.Context, userID string) ([]*Request, error) {
	return r.listRequests(ctx, squirrel.Eq{"user_id": userID})
}

func (r *pgxRepository) listRequests(ctx context.Context, where squirrel.Eq) ([]*Request, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(
		"id", "club_id", "user_id", "status", "message", "requested_role",
		"admin_response", "created_at", "updated_at",
	).
		From("club_requests").
		Where(where).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.Storage(err, "failed to list join requests")
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(
			&req.ID, &req.ClubID, &req.UserID, &req.Status, &req.Message,
			&req.RequestedRole, &req.AdminResponse, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan request failed: %w", err)
		}
		requests = append(requests, &req)
	}

	return requests, nil
}

// ResolveRequest persists the terminal status of a request and, on accept,
// appends the requester to the club's member ledger. The status write is a
// compare-and-swap against 'pending', so of two concurrent resolutions of
// the same request exactly one commits; the loser sees ErrRequestResolved
// no matter what the service read before calling in. Status and ledger
// share one transaction, so a failed ledger write can never leave a
// resolved status behind.
func (r *pgxRepository) ResolveRequest(ctx context.Context, req *Request) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return apperror.Storage(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		"UPDATE club_requests SET status = $1, admin_response = $2, updated_at = now() WHERE id = $3 AND status = $4",
		req.Status, req.AdminResponse, req.ID, StatusPending,
	)
	if err != nil {
		return apperror.Storage(err, "failed to update join request")
	}
	if ct.RowsAffected() == 0 {
		// The row is either gone or already resolved by a concurrent call.
		var status RequestStatus
		err := tx.QueryRow(ctx, "SELECT status FROM club_requests WHERE id = $1", req.ID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRequestNotFound
		}
		if err != nil {
			return apperror.Storage(err, "failed to get join request")
		}
		return ErrRequestResolved
	}

	if req.Status == StatusAccepted {
		var membersJSON []byte
		err := tx.QueryRow(ctx,
			"SELECT members FROM clubs WHERE id = $1 FOR UPDATE",
			req.ClubID,
		).Scan(&membersJSON)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return apperror.Storage(err, "failed to lock club row")
		}

		var members Members
		if err := json.Unmarshal(membersJSON, &members); err != nil {
			return fmt.Errorf("unmarshal members failed: %w", err)
		}

		// Idempotent append: the user may already be in the ledger, e.g.
		// as the owner seeded at creation time.
		members, added := members.Add(req.UserID, RoleMember)
		if added {
			updated, err := json.Marshal(members)
			if err != nil {
				return fmt.Errorf("marshal members failed: %w", err)
			}
			if _, err := tx.Exec(ctx,
				"UPDATE clubs SET members = $1, updated_at = now() WHERE id = $2",
				updated, req.ClubID,
			); err != nil {
				return apperror.Storage(err, "failed to update club members")
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Storage(err, "failed to commit request resolution")
	}
	return nil
}
