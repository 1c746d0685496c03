package agent

import (
	"context"
	"fmt"
)

// SessionStore loads and saves sessions using a key carried by the context.
type SessionStore interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Clear(ctx context.Context) error
}

type sessionKeyContext struct{}

const defaultSessionKey = "default"

// WithSessionKey sets the routing key for session storage in the context.
func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyContext{}, key)
}

// SessionKeyFromContext gets the routing key from the context.
func SessionKeyFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(sessionKeyContext{})
	if value == nil {
		return "", false
	}
	key, ok := value.(string)
	return key, ok
}

func sessionKeyOrDefault(ctx context.Context) (string, bool) {
	key, ok := SessionKeyFromContext(ctx)
	if ok && key != "" {
		return key, true
	}
	return defaultSessionKey, true
}

// CacheSessionStore keeps sessions in a Cache. A missing session is
// created on Load with the context key as its ID.
type CacheSessionStore struct {
	store      Store[*Session]
	customInit func(ctx context.Context, session *Session) error
}

func NewSessionStore(core Cache[*Session], customInit func(ctx context.Context, session *Session) error) *CacheSessionStore {
	return &CacheSessionStore{
		store:      NewStore(core, "agent:session", sessionKeyOrDefault),
		customInit: customInit,
	}
}

func NewMemorySessionStore(customInit func(ctx context.Context, session *Session) error) *CacheSessionStore {
	return NewSessionStore(NewMemoryCache[*Session](), customInit)
}

func (s *CacheSessionStore) Load(ctx context.Context) (*Session, error) {
	session, ok, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if ok && session != nil {
		return session, nil
	}
	key, _ := sessionKeyOrDefault(ctx)
	session = NewSession(key)
	if s.customInit != nil {
		if err := s.customInit(ctx, session); err != nil {
			return nil, fmt.Errorf("init session: %w", err)
		}
	}
	return session, nil
}

func (s *CacheSessionStore) Save(ctx context.Context, session *Session) error {
	return s.store.Set(ctx, session)
}

func (s *CacheSessionStore) Clear(ctx context.Context) error {
	return s.store.Del(ctx)
}
