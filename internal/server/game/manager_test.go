package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glinski/internal/glinski"
)

func sq(q, r int) glinski.Square { return glinski.SquareOf(glinski.Coord{Q: q, R: r}) }

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(nil)
	a := m.NewGame(nil)
	b := m.NewGame(nil)
	require.NotEqual(t, a.ID, b.ID)

	got, err := m.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	list := m.List()
	require.Len(t, list, 2)
	assert.False(t, list[1].CreatedAt.Before(list[0].CreatedAt))

	require.NoError(t, m.Delete(a.ID))
	_, err = m.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(a.ID), ErrNotFound)
}

func TestSessionPublishesEvents(t *testing.T) {
	var mu sync.Mutex
	var got []glinski.EventKind
	var ids []string
	m := NewManager(func(id string, e glinski.Event) {
		mu.Lock()
		defer mu.Unlock()
		ids = append(ids, id)
		got = append(got, e.Kind)
	})
	s := m.NewGame(nil)
	err := s.Do(func(g *glinski.Game) error {
		_, err := g.Play(sq(-2, 1), sq(0, -1))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []glinski.EventKind{glinski.EventMoved}, got)
	assert.Equal(t, []string{s.ID}, ids)
}

func TestSessionFromBoard(t *testing.T) {
	b, err := glinski.DecodeBoard(glinski.NewInitialBoard().Encode())
	require.NoError(t, err)
	m := NewManager(nil)
	s := m.NewGame(b)
	s.View(func(g *glinski.Game) {
		assert.Equal(t, glinski.White, g.CurrentTurn())
		assert.Equal(t, b.Hash(), g.Hash())
	})
}

func TestSessionSerialisesCalls(t *testing.T) {
	m := NewManager(nil)
	s := m.NewGame(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(g *glinski.Game) error {
				g.SelectPiece(sq(-2, 1))
				_, err := g.StepBackward()
				return err
			})
		}()
	}
	wg.Wait()
	s.View(func(g *glinski.Game) {
		assert.Zero(t, g.HistoryLen())
	})
}

func TestPrune(t *testing.T) {
	m := NewManager(nil)
	old := m.NewGame(nil)
	fresh := m.NewGame(nil)
	old.mu.Lock()
	old.updatedAt = time.Now().Add(-time.Hour)
	old.mu.Unlock()

	assert.Equal(t, []string{old.ID}, m.Prune(time.Minute))
	_, err := m.Get(fresh.ID)
	assert.NoError(t, err)
	_, err = m.Get(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
