package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/sweeper/pkg/sweeper/store"
)

// Store is an in-memory implementation of store.Store for tests and for
// runs that don't need persistence.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]store.Session
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{sessions: make(map[string]store.Session)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveSession inserts or replaces a session, keyed by ID.
func (s *Store) SaveSession(ctx context.Context, sess store.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.ID == "" {
		return nil
	}
	s.sessions[sess.ID] = copySession(sess)
	return nil
}

// GetSession returns a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (store.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[id]; ok {
		return copySession(sess), true, nil
	}
	return store.Session{}, false, nil
}

// ListSessions returns up to limit sessions, most recent first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]store.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	out := make([]store.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, copySession(sess))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlayedAt.Equal(out[j].PlayedAt) {
			return out[i].PlayedAt.After(out[j].PlayedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Stats aggregates over all stored sessions.
func (s *Store) Stats(ctx context.Context) (store.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st store.Stats
	var moves, guesses int64
	for _, sess := range s.sessions {
		st.Sessions++
		if sess.Won {
			st.Wins++
		}
		moves += int64(len(sess.Moves))
		guesses += int64(sess.Guesses)
	}
	if st.Sessions > 0 {
		st.WinRate = float64(st.Wins) / float64(st.Sessions)
		st.AvgMoves = float64(moves) / float64(st.Sessions)
	}
	if moves > 0 {
		st.GuessRate = float64(guesses) / float64(moves)
	}
	return st, nil
}

func copySession(sess store.Session) store.Session {
	out := sess
	out.Moves = make([]store.Move, len(sess.Moves))
	copy(out.Moves, sess.Moves)
	return out
}
