package session

import (
	"context"
	"sync"
	"time"

	"esglens/app"
	"esglens/internal"
	"esglens/internal/errors"
	"esglens/internal/filter"

	"github.com/google/uuid"
)

// Session pairs one uploaded dataset with the user's current selection
type Session struct {
	ID         string           `json:"id"`
	Dataset    *app.Dataset     `json:"dataset"`
	Selection  filter.Selection `json:"selection"`
	CreatedAt  time.Time        `json:"created_at"`
	LastAccess time.Time        `json:"last_access"`
}

// Store keeps sessions in memory. Sessions never share a dataset and nothing
// survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store whose sessions expire after ttl without access.
// A zero ttl keeps sessions until they are deleted.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a dataset under a new session id
func (s *Store) Create(ds *app.Dataset, sel filter.Selection) Session {
	now := s.now()
	sess := &Session{
		ID:         uuid.New().String(),
		Dataset:    ds,
		Selection:  sel.Clone(),
		CreatedAt:  now,
		LastAccess: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess.snapshot()
}

// Get returns a session and refreshes its access time
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	sess.LastAccess = s.now()
	return sess.snapshot(), nil
}

// UpdateSelection replaces the stored selection of a session
func (s *Store) UpdateSelection(id string, sel filter.Selection) (Session, error) {
	if err := sel.Validate(); err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	sess.Selection = sel.Clone()
	sess.LastAccess = s.now()
	return sess.snapshot(), nil
}

// Delete drops a session
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CleanupExpired removes every session idle for longer than the ttl and
// returns how many were removed
func (s *Store) CleanupExpired() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor calls CleanupExpired every interval until ctx is done
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.CleanupExpired(); n > 0 {
				internal.DefaultLogger.Info("[Session] Expired %d idle sessions", n)
			}
		}
	}
}

// lookup must be called with the lock held
func (s *Store) lookup(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		return nil, errors.NotFound("session " + id)
	}
	return sess, nil
}

func (s *Store) expired(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.LastAccess) > s.ttl
}

func (sess *Session) snapshot() Session {
	out := *sess
	out.Selection = sess.Selection.Clone()
	return out
}
