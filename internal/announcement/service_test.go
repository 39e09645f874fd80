package announcement

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonwuio/clubhub-backend/internal/club"
	"github.com/jasonwuio/clubhub-backend/internal/event"
	"github.com/jasonwuio/clubhub-backend/internal/user"
)

type fakeRepository struct {
	items  map[string]*Announcement
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: map[string]*Announcement{}}
}

func (f *fakeRepository) Create(ctx context.Context, a *Announcement) error {
	f.nextID++
	a.ID = fmt.Sprintf("ann-%d", f.nextID)
	clone := *a
	f.items[a.ID] = &clone
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*Announcement, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeRepository) List(ctx context.Context, filter Filter) ([]*Announcement, int, error) {
	var out []*Announcement
	for _, a := range f.items {
		if filter.EventID != "" && a.EventID != filter.EventID {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeRepository) Update(ctx context.Context, a *Announcement) error {
	if _, ok := f.items[a.ID]; !ok {
		return ErrNotFound
	}
	clone := *a
	f.items[a.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// The announcement service only reads from its neighbors, so the fakes
// implement GetByID and panic on everything else.

type fakeEventService struct {
	events map[string]*event.Event
}

func (f *fakeEventService) GetByID(ctx context.Context, id string) (*event.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, event.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventService) Create(ctx context.Context, req event.CreateRequest, actorID string) (*event.Event, error) {
	panic("not used")
}
func (f *fakeEventService) List(ctx context.Context, filter event.Filter) ([]*event.Event, int, error) {
	panic("not used")
}
func (f *fakeEventService) Update(ctx context.Context, id string, req event.UpdateRequest, actorID string) (*event.Event, error) {
	panic("not used")
}
func (f *fakeEventService) Delete(ctx context.Context, id string, actorID string) error {
	panic("not used")
}

type fakeClubService struct {
	clubs map[string]*club.Club
}

func (f *fakeClubService) GetByID(ctx context.Context, id string) (*club.Club, error) {
	c, ok := f.clubs[id]
	if !ok {
		return nil, club.ErrNotFound
	}
	return c, nil
}

func (f *fakeClubService) Create(ctx context.Context, ownerID string, req club.CreateRequest) (*club.Club, error) {
	panic("not used")
}
func (f *fakeClubService) List(ctx context.Context, filter club.Filter) ([]*club.Club, int, error) {
	panic("not used")
}
func (f *fakeClubService) ListByOwner(ctx context.Context, ownerID string) ([]*club.Club, error) {
	panic("not used")
}
func (f *fakeClubService) Update(ctx context.Context, id string, req club.UpdateRequest, actorID string) (*club.Club, error) {
	panic("not used")
}
func (f *fakeClubService) Delete(ctx context.Context, id string, actorID string) error {
	panic("not used")
}
func (f *fakeClubService) Join(ctx context.Context, clubID, userID string, req club.JoinRequest) (*club.Request, error) {
	panic("not used")
}
func (f *fakeClubService) ListRequests(ctx context.Context, clubID, actorID string) ([]*club.Request, error) {
	panic("not used")
}
func (f *fakeClubService) GetRequest(ctx context.Context, requestID, actorID string) (*club.Request, error) {
	panic("not used")
}
func (f *fakeClubService) ListUserRequests(ctx context.Context, userID string) ([]*club.Request, error) {
	panic("not used")
}
func (f *fakeClubService) Resolve(ctx context.Context, requestID string, req club.ResolveRequest, actorID string) (*club.Request, error) {
	panic("not used")
}

type fakeUserService struct {
	users map[string]*user.User
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserService) Register(ctx context.Context, email, password, name, role string) (*user.User, error) {
	panic("not used")
}
func (f *fakeUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	panic("not used")
}
func (f *fakeUserService) List(ctx context.Context, filter user.Filter) ([]*user.User, int, error) {
	panic("not used")
}
func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateRequest) (*user.User, error) {
	panic("not used")
}
func (f *fakeUserService) Delete(ctx context.Context, id string) error {
	panic("not used")
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	now := time.Now()

	events := &fakeEventService{events: map[string]*event.Event{
		"event-1": {ID: "event-1", ClubID: "club-1", Title: "Meetup", StartDate: now, EndDate: now.Add(time.Hour)},
	}}
	clubs := &fakeClubService{clubs: map[string]*club.Club{
		"club-1": {ID: "club-1", Name: "Go Club", OwnerID: "owner"},
	}}
	users := &fakeUserService{users: map[string]*user.User{
		"owner":    {ID: "owner"},
		"admin":    {ID: "admin", IsAdmin: true},
		"stranger": {ID: "stranger"},
	}}

	return NewService(repo, events, clubs, users), repo
}

func TestCreateAnnouncement(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("owner creates via the event's club", func(t *testing.T) {
		a, err := svc.Create(ctx, CreateRequest{EventID: "event-1", Title: "News", Content: "Body"}, "owner")
		require.NoError(t, err)
		assert.Equal(t, "event-1", a.EventID)
	})

	t.Run("platform admin overrides ownership", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{EventID: "event-1", Title: "Admin News", Content: "Body"}, "admin")
		assert.NoError(t, err)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{EventID: "event-1", Title: "Nope", Content: "Body"}, "stranger")
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("unknown event reports not found", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{EventID: "missing", Title: "X", Content: "Body"}, "owner")
		assert.ErrorIs(t, err, event.ErrNotFound)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{EventID: "event-1", Title: " ", Content: "Body"}, "owner")
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("blank content rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{EventID: "event-1", Title: "X", Content: ""}, "owner")
		assert.ErrorIs(t, err, ErrContentRequired)
	})
}

func TestUpdateAnnouncement(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateRequest{EventID: "event-1", Title: "Original", Content: "Body"}, "owner")
	require.NoError(t, err)

	t.Run("non-owner forbidden", func(t *testing.T) {
		title := "Hacked"
		_, err := svc.Update(ctx, a.ID, UpdateRequest{Title: &title}, "stranger")
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("partial update", func(t *testing.T) {
		title := "Revised"
		updated, err := svc.Update(ctx, a.ID, UpdateRequest{Title: &title}, "owner")
		require.NoError(t, err)
		assert.Equal(t, "Revised", updated.Title)
		assert.Equal(t, "Body", updated.Content)
	})
}

func TestDeleteAnnouncement(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateRequest{EventID: "event-1", Title: "Bye", Content: "Body"}, "owner")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, a.ID, "stranger"), ErrNotOwner)
	assert.NoError(t, svc.Delete(ctx, a.ID, "admin"))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID, "owner"), ErrNotFound)
}
