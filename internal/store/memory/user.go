package memory

import (
	"context"
	"sync"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
)

var (
	_ store.UserStore    = (*UserStore)(nil)
	_ store.SessionStore = (*SessionStore)(nil)
)

type UserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]models.User),
	}
}

func (s *UserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = *user
	return nil
}

func (s *UserStore) Get(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

func (s *UserStore) SetRecentlyViewed(_ context.Context, userID string, articleIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	user.RecentlyViewed = append([]string(nil), articleIDs...)
	s.users[userID] = user
	return nil
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session // keyed by token
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]models.Session),
	}
}

func (s *SessionStore) Insert(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionToken] = *session
	return nil
}

func (s *SessionStore) GetByToken(_ context.Context, token string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &session, nil
}

func (s *SessionStore) DeleteByToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
