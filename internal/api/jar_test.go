package api

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskflow/internal/models"
)

type memStore struct {
	mu      sync.Mutex
	cookies map[string]map[string]*http.Cookie
	cleared bool
}

func newMemStore() *memStore {
	return &memStore{cookies: map[string]map[string]*http.Cookie{}}
}

func (s *memStore) SaveCookies(host string, cookies []*http.Cookie, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cookies[host] == nil {
		s.cookies[host] = map[string]*http.Cookie{}
	}
	for _, c := range cookies {
		if c.MaxAge < 0 {
			delete(s.cookies[host], c.Name)
			continue
		}
		cp := *c
		s.cookies[host][c.Name] = &cp
	}
	return nil
}

func (s *memStore) LoadCookies(now time.Time) (map[string][]*http.Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string][]*http.Cookie{}
	for host, byName := range s.cookies {
		for _, c := range byName {
			out[host] = append(out[host], c)
		}
	}
	return out, nil
}

func (s *memStore) ClearCookies() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies = map[string]map[string]*http.Cookie{}
	s.cleared = true
	return nil
}

func TestSessionSurvivesRestart(t *testing.T) {
	_, srv := newFakeBackend(t)
	store := newMemStore()
	ctx := context.Background()

	first := newTestClient(t, srv.URL, store)
	_, err := first.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	// a second client built from the same store is still signed in
	second := newTestClient(t, srv.URL, store)
	st, err := second.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, "alice", st.Username)

	require.NoError(t, second.Logout(ctx))
	third := newTestClient(t, srv.URL, store)
	st, err = third.Status(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsAuthenticated)
}

func TestJarClear(t *testing.T) {
	_, srv := newFakeBackend(t)
	store := newMemStore()
	c := newTestClient(t, srv.URL, store)
	_, err := c.Login(context.Background(), models.LoginRequest{Username: "bob", Password: "secret"})
	require.NoError(t, err)

	jar, ok := c.Jar().(*PersistentJar)
	require.True(t, ok)
	require.NoError(t, jar.Clear())

	st, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.IsAuthenticated)
	assert.True(t, store.cleared)
}
