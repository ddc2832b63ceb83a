package service

import (
	"context"
	"sync"

	"appointease/core/cache"
	"appointease/core/constants"
	"appointease/modules/calendar/entity"

	"github.com/google/uuid"
)

// SessionStore holds at most one drag session per provider. Sessions are
// short-lived; expiry is equivalent to a cancel.
type SessionStore interface {
	Put(ctx context.Context, providerID uuid.UUID, session entity.DragSession) error
	Get(ctx context.Context, providerID uuid.UUID) (*entity.DragSession, error)
	Delete(ctx context.Context, providerID uuid.UUID) error
}

// redisSessionStore keeps sessions in redis with the drag-session TTL so
// abandoned gestures clean themselves up.
type redisSessionStore struct {
	cache cache.ICache
}

func NewRedisSessionStore(c cache.ICache) SessionStore {
	return &redisSessionStore{cache: c}
}

func sessionKey(providerID uuid.UUID) string {
	return constants.RedisKeyDragSession + providerID.String()
}

func (s *redisSessionStore) Put(ctx context.Context, providerID uuid.UUID, session entity.DragSession) error {
	return s.cache.SetJSON(ctx, sessionKey(providerID), session, constants.DragSessionTTL)
}

func (s *redisSessionStore) Get(ctx context.Context, providerID uuid.UUID) (*entity.DragSession, error) {
	var session entity.DragSession
	hit, err := s.cache.GetJSON(ctx, sessionKey(providerID), &session)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, nil
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, providerID uuid.UUID) error {
	return s.cache.Delete(ctx, sessionKey(providerID))
}

// memorySessionStore is the in-process fallback used by tests.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]entity.DragSession
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[uuid.UUID]entity.DragSession)}
}

func (s *memorySessionStore) Put(_ context.Context, providerID uuid.UUID, session entity.DragSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[providerID] = session
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, providerID uuid.UUID) (*entity.DragSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[providerID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *memorySessionStore) Delete(_ context.Context, providerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, providerID)
	return nil
}
