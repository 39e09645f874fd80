package announcement

import (
	"context"
	"strings"

	"github.com/jasonwuio/clubhub-backend/internal/authz"
	"github.com/jasonwuio/clubhub-backend/internal/club"
	"github.com/jasonwuio/clubhub-backend/internal/event"
	"github.com/jasonwuio/clubhub-backend/internal/user"
)

type CreateRequest struct {
	EventID string
	Title   string
	Content string
}

type UpdateRequest struct {
	Title   *string
	Content *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actorID string) (*Announcement, error)
	GetByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, filter Filter) ([]*Announcement, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Announcement, error)
	Delete(ctx context.Context, id string, actorID string) error
}

type service struct {
	repo         Repository
	eventService event.Service
	clubService  club.Service
	userService  user.Service
}

func NewService(repo Repository, eventService event.Service, clubService club.Service, userService user.Service) Service {
	return &service{
		repo:         repo,
		eventService: eventService,
		clubService:  clubService,
		userService:  userService,
	}
}

// authorize resolves the announcement's event up to its club and checks the
// actor may mutate resources of that club.
func (s *service) authorize(ctx context.Context, eventID, actorID string) error {
	e, err := s.eventService.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	c, err := s.clubService.GetByID(ctx, e.ClubID)
	if err != nil {
		return err
	}

	u, err := s.userService.GetByID(ctx, actorID)
	if err != nil {
		return err
	}

	if !authz.CanMutateClubResource(authz.Actor{ID: u.ID, IsAdmin: u.IsAdmin}, c.OwnerID) {
		return ErrNotOwner
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest, actorID string) (*Announcement, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}

	if err := s.authorize(ctx, req.EventID, actorID); err != nil {
		return nil, err
	}

	a := &Announcement{
		EventID: req.EventID,
		Title:   req.Title,
		Content: req.Content,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Announcement, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, a.EventID, actorID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		a.Title = *req.Title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, ErrContentRequired
		}
		a.Content = *req.Content
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, a.EventID, actorID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
