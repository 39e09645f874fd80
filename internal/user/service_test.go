package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	users  map[string]*User
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]*User{}}
}

func (f *fakeRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepository) Create(ctx context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range f.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeRepository) Update(ctx context.Context, u *User) error {
	if _, ok := f.users[u.ID]; !ok {
		return ErrNotFound
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// plainHasher keeps passwords recognizable in test assertions.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, plainHasher{}), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("plain signup has no admin flag", func(t *testing.T) {
		u, err := svc.Register(ctx, "alice@example.com", "supersecret", "Alice", "")
		require.NoError(t, err)
		assert.False(t, u.IsAdmin)
		assert.Equal(t, "hashed:supersecret", u.PasswordHash)
	})

	t.Run("club leader signup grants admin", func(t *testing.T) {
		u, err := svc.Register(ctx, "lead@example.com", "supersecret", "Lead", RoleClubLeader)
		require.NoError(t, err)
		assert.True(t, u.IsAdmin)
	})

	t.Run("email is normalized", func(t *testing.T) {
		u, err := svc.Register(ctx, "  Bob@Example.COM ", "supersecret", "Bob", "")
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", u.Email)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice@example.com", "supersecret", "Alice Again", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "short@example.com", "tiny", "Shorty", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("empty email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "   ", "supersecret", "Nobody", "")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("blank name gets a placeholder", func(t *testing.T) {
		u, err := svc.Register(ctx, "anon@example.com", "supersecret", "  ", "")
		require.NoError(t, err)
		assert.Equal(t, "Unknown", u.Name)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol@example.com", "supersecret", "Carol", "")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "Carol@Example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", u.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "carol@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email reports the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "supersecret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank input short-circuits", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "dave@example.com", "supersecret", "Dave", "")
	require.NoError(t, err)

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		bio := "climber"
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "Dave", updated.Name)
		require.NotNil(t, updated.Bio)
		assert.Equal(t, "climber", *updated.Bio)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		blank := "  "
		_, err := svc.Update(ctx, u.ID, UpdateRequest{Name: &blank})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("social media replaced wholesale", func(t *testing.T) {
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{
			SocialMedia: map[string]string{"github": "dave"},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"github": "dave"}, updated.SocialMedia)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", UpdateRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "erin@example.com", "supersecret", "Erin", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.ErrorIs(t, svc.Delete(ctx, u.ID), ErrNotFound)
}
