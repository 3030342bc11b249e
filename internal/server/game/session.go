package game

import (
	"sync"
	"time"

	"glinski/internal/glinski"
)

// Session owns one game. Every call into the game goes through Do, which
// holds the session lock, so a game only ever has one logical owner.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	game      *glinski.Game
	updatedAt time.Time
	publish   Publisher
}

// Do runs fn with exclusive access to the game. Events raised by fn are
// published before Do returns.
func (s *Session) Do(fn func(g *glinski.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.game)
	s.updatedAt = time.Now()
	return err
}

// View is Do for read-only access; it does not touch UpdatedAt.
func (s *Session) View(fn func(g *glinski.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// OnEvent forwards game events; it runs with s.mu held.
func (s *Session) OnEvent(e glinski.Event) {
	if s.publish != nil {
		s.publish(s.ID, e)
	}
}
