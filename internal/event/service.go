package event

import (
	"context"
	"strings"
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/authz"
	"github.com/jasonwuio/clubhub-backend/internal/club"
	"github.com/jasonwuio/clubhub-backend/internal/user"
)

// CreateRequest defines the fields for creating an event.
type CreateRequest struct {
	ClubID      string
	Title       string
	Description *string
	PosterURL   *string
	StartDate   time.Time
	EndDate     time.Time
	Location    *string
	Link        *string
	Fee         float64
	Metadata    map[string]any
}

// UpdateRequest defines the event fields that can be changed.
type UpdateRequest struct {
	Title       *string
	Description *string
	PosterURL   *string
	StartDate   *time.Time
	EndDate     *time.Time
	Location    *string
	Link        *string
	Fee         *float64
	Metadata    map[string]any
}

// Service defines business logic for events.
type Service interface {
	Create(ctx context.Context, req CreateRequest, actorID string) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter Filter) ([]*Event, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Event, error)
	Delete(ctx context.Context, id string, actorID string) error
}

type service struct {
	repo        Repository
	clubService club.Service
	userService user.Service

	now func() time.Time
}

// NewService creates a new event service.
func NewService(repo Repository, clubService club.Service, userService user.Service) Service {
	return &service{
		repo:        repo,
		clubService: clubService,
		userService: userService,
		now:         time.Now,
	}
}

// actor resolves the acting user into the guard's view of it.
func (s *service) actor(ctx context.Context, actorID string) (authz.Actor, error) {
	u, err := s.userService.GetByID(ctx, actorID)
	if err != nil {
		return authz.Actor{}, err
	}
	return authz.Actor{ID: u.ID, IsAdmin: u.IsAdmin}, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest, actorID string) (*Event, error) {
	// Existence first, then ownership.
	c, err := s.clubService.GetByID(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutateClubResource(actor, c.OwnerID) {
		return nil, ErrNotOwner
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidTimeRange
	}
	if req.Fee < 0 {
		return nil, ErrNegativeFee
	}

	start := req.StartDate.UTC()
	end := req.EndDate.UTC()

	e := &Event{
		ClubID:      req.ClubID,
		Title:       req.Title,
		Description: req.Description,
		PosterURL:   req.PosterURL,
		StartDate:   start,
		EndDate:     end,
		Location:    req.Location,
		Link:        req.Link,
		Fee:         req.Fee,
		Status:      DeriveStatus(s.now(), start, end),
		Metadata:    req.Metadata,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Event, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c, err := s.clubService.GetByID(ctx, e.ClubID)
	if err != nil {
		return nil, err
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutateClubResource(actor, c.OwnerID) {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = req.Description
	}
	if req.PosterURL != nil {
		e.PosterURL = req.PosterURL
	}
	if req.StartDate != nil {
		e.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		e.EndDate = req.EndDate.UTC()
	}
	if e.EndDate.Before(e.StartDate) {
		return nil, ErrInvalidTimeRange
	}
	if req.Location != nil {
		e.Location = req.Location
	}
	if req.Link != nil {
		e.Link = req.Link
	}
	if req.Fee != nil {
		if *req.Fee < 0 {
			return nil, ErrNegativeFee
		}
		e.Fee = *req.Fee
	}
	if req.Metadata != nil {
		e.Metadata = req.Metadata
	}

	// Recomputed on every update, not only when dates change, so a stale
	// status never survives a write.
	e.Status = DeriveStatus(s.now(), e.StartDate, e.EndDate)

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	c, err := s.clubService.GetByID(ctx, e.ClubID)
	if err != nil {
		return err
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}
	if !authz.CanMutateClubResource(actor, c.OwnerID) {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, id)
}
