package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type sessionRecord struct {
	session Session
	// expiresAt is zero when sessions never expire.
	expiresAt time.Time
}

func (r sessionRecord) expired(now time.Time) bool {
	return !r.expiresAt.IsZero() && now.After(r.expiresAt)
}

// MemoryStore implements Store over a mutex-guarded map. Sessions live until
// explicitly removed or, when a TTL is configured, until they expire.
type MemoryStore struct {
	users UserRepo

	mu       sync.RWMutex
	sessions map[string]sessionRecord

	ttl    time.Duration
	ticker *time.Ticker
	done   chan struct{}
}

// NewMemoryStore creates an in-memory session store backed by the given user
// repository. By default sessions have no TTL and no cleanup loop runs.
func NewMemoryStore(users UserRepo, opts ...StoreOption) *MemoryStore {
	s := &MemoryStore{
		users:    users,
		sessions: make(map[string]sessionRecord),
		done:     make(chan struct{}),
	}

	cfg := storeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	s.ttl = cfg.ttl

	if cfg.cleanupInterval > 0 {
		s.ticker = time.NewTicker(cfg.cleanupInterval)
		go s.cleanupLoop()
	}

	return s
}

func (s *MemoryStore) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	user, ok := s.users.FindUser(creds.Username)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	sess := Session{
		Username:      user.Username,
		UserID:        user.ID,
		ID:            id,
		Authenticated: true,
	}

	rec := sessionRecord{session: sess}
	if s.ttl > 0 {
		rec.expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.sessions[id] = rec
	s.mu.Unlock()

	return &sess, nil
}

func (s *MemoryStore) Lookup(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	rec, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if rec.expired(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, nil
	}

	sess := rec.session
	return &sess, nil
}

func (s *MemoryStore) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok, nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the cleanup goroutine if one is running.
func (s *MemoryStore) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
	}
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.deleteExpired(time.Now())
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) deleteExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.sessions {
		if rec.expired(now) {
			delete(s.sessions, id)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
