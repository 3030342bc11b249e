package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"glinski/internal/glinski"
)

var ErrNotFound = errors.New("game not found")

// Publisher receives every event of every session, tagged with its id.
type Publisher func(id string, e glinski.Event)

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	publish  Publisher
}

func NewManager(publish Publisher) *Manager {
	return &Manager{sessions: make(map[string]*Session), publish: publish}
}

// NewGame starts a session from the initial position, or from board when it
// is not nil.
func (m *Manager) NewGame(board *glinski.Board) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		updatedAt: now,
	}
	opts := []glinski.Option{glinski.WithListener(s)}
	if board != nil {
		opts = append(opts, glinski.WithBoard(board))
	}
	s.game = glinski.NewGame(opts...)
	s.publish = m.publish

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// List returns every session, oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Session) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

// Prune drops sessions untouched for longer than idle and returns their ids.
func (m *Manager) Prune(idle time.Duration) []string {
	cutoff := time.Now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	var dropped []string
	for id, s := range m.sessions {
		if s.UpdatedAt().Before(cutoff) {
			delete(m.sessions, id)
			dropped = append(dropped, id)
		}
	}
	slices.Sort(dropped)
	return dropped
}
