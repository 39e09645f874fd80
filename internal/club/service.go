package club

import (
	"context"
	"strings"

	"github.com/jasonwuio/clubhub-backend/internal/authz"
	"github.com/jasonwuio/clubhub-backend/internal/user"
)

// CreateRequest defines the fields for creating a club.
type CreateRequest struct {
	Name        string
	Description *string
	Category    *string
	LogoURL     *string
}

// UpdateRequest defines the club fields the owner may change. The members
// ledger is deliberately absent: it is only ever mutated by club creation
// and accepted join requests.
type UpdateRequest struct {
	Name        *string
	Description *string
	Category    *string
	LogoURL     *string
}

// JoinRequest defines the fields a prospective member submits.
type JoinRequest struct {
	Message       *string
	RequestedRole *string
}

// ResolveRequest defines the owner's resolution of a join request.
type ResolveRequest struct {
	Status        RequestStatus
	AdminResponse *string
}

// Service defines business logic for clubs, the membership ledger, and the
// join-request lifecycle.
type Service interface {
	// Club methods
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Club, error)
	GetByID(ctx context.Context, id string) (*Club, error)
	List(ctx context.Context, filter Filter) ([]*Club, int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Club, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Club, error)
	Delete(ctx context.Context, id string, actorID string) error
	// Join-request methods
	Join(ctx context.Context, clubID, userID string, req JoinRequest) (*Request, error)
	ListRequests(ctx context.Context, clubID, actorID string) ([]*Request, error)
	GetRequest(ctx context.Context, requestID, actorID string) (*Request, error)
	ListUserRequests(ctx context.Context, userID string) ([]*Request, error)
	Resolve(ctx context.Context, requestID string, req ResolveRequest, actorID string) (*Request, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

// NewService creates a new club service.
func NewService(repo Repository, userService user.Service) Service {
	return &service{repo: repo, userService: userService}
}

// ------------------------
//      Club methods
// ------------------------

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Club, error) {
	owner, err := s.userService.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsAdmin {
		return nil, ErrAdminOnly
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	c := &Club{
		Name:        name,
		Description: req.Description,
		OwnerID:     ownerID,
		Category:    req.Category,
		LogoURL:     req.LogoURL,
		// The ledger always starts with exactly the owner.
		Members: Members{{UserID: ownerID, Role: RoleOwner}},
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Club, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Club, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*Club, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Club, error) {
	// Existence first, then ownership.
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutateClub(actorID, c.OwnerID) {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		c.Name = name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Category != nil {
		c.Category = req.Category
	}
	if req.LogoURL != nil {
		c.LogoURL = req.LogoURL
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanMutateClub(actorID, c.OwnerID) {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

// ------------------------
//   Join-request methods
// ------------------------

// Join creates a pending membership request. Any authenticated user may
// request to join any club, so the failures here are validation, not
// authorization.
func (s *service) Join(ctx context.Context, clubID, userID string, req JoinRequest) (*Request, error) {
	c, err := s.repo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}

	if c.Members.Has(userID) {
		return nil, ErrAlreadyMember
	}

	existing, err := s.repo.ListRequestsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, prev := range existing {
		if prev.ClubID == clubID && prev.Status == StatusPending {
			return nil, ErrPendingRequestExists
		}
	}

	r := &Request{
		ClubID:        clubID,
		UserID:        userID,
		Status:        StatusPending,
		Message:       req.Message,
		RequestedRole: req.RequestedRole,
	}

	// The partial unique index backs the pre-check up under concurrency;
	// the repo maps a violation to ErrPendingRequestExists.
	if err := s.repo.CreateRequest(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) ListRequests(ctx context.Context, clubID, actorID string) ([]*Request, error) {
	c, err := s.repo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutateClub(actorID, c.OwnerID) {
		return nil, ErrNotOwner
	}
	return s.repo.ListRequestsByClub(ctx, clubID)
}

func (s *service) GetRequest(ctx context.Context, requestID, actorID string) (*Request, error) {
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutateClub(actorID, c.OwnerID) {
		return nil, ErrNotOwner
	}
	return req, nil
}

func (s *service) ListUserRequests(ctx context.Context, userID string) ([]*Request, error) {
	return s.repo.ListRequestsByUser(ctx, userID)
}

// Resolve transitions a pending request to accepted or rejected. The
// transition is terminal; accepted requests add the requester to the
// membership ledger atomically with the status write.
func (s *service) Resolve(ctx context.Context, requestID string, req ResolveRequest, actorID string) (*Request, error) {
	if req.Status != StatusAccepted && req.Status != StatusRejected {
		return nil, ErrInvalidStatus
	}

	r, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, r.ClubID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutateClub(actorID, c.OwnerID) {
		return nil, ErrNotOwner
	}

	if r.Status.Terminal() {
		return nil, ErrRequestResolved
	}

	r.Status = req.Status
	r.AdminResponse = req.AdminResponse

	if err := s.repo.ResolveRequest(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
