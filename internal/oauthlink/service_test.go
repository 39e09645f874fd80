package oauthlink

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/oauth2"
)

type fakeRepository struct {
	links  map[string]*Link // keyed by user|provider
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{links: map[string]*Link{}}
}

func key(userID, provider string) string { return userID + "|" + provider }

func (f *fakeRepository) Upsert(ctx context.Context, link *Link) error {
	k := key(link.UserID, link.Provider)
	if existing, ok := f.links[k]; ok {
		link.ID = existing.ID
	} else {
		f.nextID++
		link.ID = fmt.Sprintf("link-%d", f.nextID)
	}
	clone := *link
	f.links[k] = &clone
	return nil
}

func (f *fakeRepository) GetByProviderAccount(ctx context.Context, provider, providerUserID string) (*Link, error) {
	for _, l := range f.links {
		if l.Provider == provider && l.ProviderUserID == providerUserID {
			clone := *l
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepository) GetByUserProvider(ctx context.Context, userID, provider string) (*Link, error) {
	l, ok := f.links[key(userID, provider)]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID string) ([]Link, error) {
	var out []Link
	for _, l := range f.links {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepository) Delete(ctx context.Context, userID, provider string) error {
	k := key(userID, provider)
	if _, ok := f.links[k]; !ok {
		return ErrNotFound
	}
	delete(f.links, k)
	return nil
}

// staticFetcher returns a fixed provider account for every token.
type staticFetcher struct {
	accountID string
}

func (s staticFetcher) Fetch(ctx context.Context, provider string, token *oauth2.Token) (string, map[string]any, error) {
	return s.accountID, map[string]any{"login": "octocat"}, nil
}

// tokenServer stands in for the provider's token endpoint so Exchange never
// leaves the test process.
func tokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"bearer","refresh_token":"test-refresh","expires_in":3600}`))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestService(t *testing.T, repo Repository, accountID string) Service {
	ts := tokenServer(t)
	providers := Providers{
		ProviderGitHub: {
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Endpoint: oauth2.Endpoint{
				AuthURL:  ts.URL + "/authorize",
				TokenURL: ts.URL + "/token",
			},
		},
	}
	return NewService(repo, providers, staticFetcher{accountID: accountID})
}

func TestAuthURL(t *testing.T) {
	svc := newTestService(t, newFakeRepository(), "acct-1")

	t.Run("configured provider", func(t *testing.T) {
		url, err := svc.AuthURL(ProviderGitHub, "state-1")
		require.NoError(t, err)
		assert.Contains(t, url, "client_id=client-id")
		assert.Contains(t, url, "state=state-1")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := svc.AuthURL("myspace", "state-1")
		assert.ErrorIs(t, err, ErrUnknownProvider)
	})

	t.Run("known but unconfigured provider", func(t *testing.T) {
		_, err := svc.AuthURL(ProviderLinkedIn, "state-1")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestConnect(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo, "acct-1")
	ctx := context.Background()

	t.Run("first connect stores the link", func(t *testing.T) {
		link, err := svc.Connect(ctx, "user-1", ProviderGitHub, "auth-code")
		require.NoError(t, err)

		assert.Equal(t, "acct-1", link.ProviderUserID)
		assert.Equal(t, "test-token", link.AccessToken)
		require.NotNil(t, link.RefreshToken)
		assert.Equal(t, "test-refresh", *link.RefreshToken)
		assert.NotNil(t, link.TokenExpiry)
		assert.Equal(t, "octocat", link.Metadata["login"])
	})

	t.Run("reconnect by the same user refreshes in place", func(t *testing.T) {
		_, err := svc.Connect(ctx, "user-1", ProviderGitHub, "auth-code-2")
		require.NoError(t, err)

		links, err := svc.ListByUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})

	t.Run("same account on another user conflicts", func(t *testing.T) {
		_, err := svc.Connect(ctx, "user-2", ProviderGitHub, "auth-code-3")
		assert.ErrorIs(t, err, ErrLinkedToOtherUser)
	})
}

func TestDisconnect(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo, "acct-1")
	ctx := context.Background()

	_, err := svc.Connect(ctx, "user-1", ProviderGitHub, "auth-code")
	require.NoError(t, err)

	t.Run("unknown provider rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.Disconnect(ctx, "user-1", "myspace"), ErrUnknownProvider)
	})

	t.Run("removes the link", func(t *testing.T) {
		require.NoError(t, svc.Disconnect(ctx, "user-1", ProviderGitHub))
		assert.ErrorIs(t, svc.Disconnect(ctx, "user-1", ProviderGitHub), ErrNotFound)
	})
}
