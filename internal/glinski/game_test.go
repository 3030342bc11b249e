package glinski

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promotionGame(t *testing.T, rec *recorder, extra map[Coord]Piece) *Game {
	t.Helper()
	pieces := map[Coord]Piece{
		{-4, 5}: wK,
		{2, 3}:  bK,
		{4, -3}: wP,
	}
	for c, pc := range extra {
		pieces[c] = pc
	}
	opts := []Option{WithBoard(mustBoard(t, White, pieces))}
	if rec != nil {
		opts = append(opts, WithListener(rec))
	}
	return NewGame(opts...)
}

func TestSelectPiece(t *testing.T) {
	g := NewGame()
	assert.Equal(t, NoSquare, g.Selected())

	got := g.SelectPiece(at(-2, 1))
	assert.Equal(t, squaresOf(Coord{-1, 0}, Coord{0, -1}), got)
	assert.Equal(t, at(-2, 1), g.Selected())

	for name, sq := range map[string]Square{
		"empty":     at(0, 0),
		"opponent":  at(1, -1),
		"off board": NoSquare,
	} {
		g.SelectPiece(at(-2, 1))
		assert.Nil(t, g.SelectPiece(sq), name)
		assert.Equal(t, NoSquare, g.Selected(), name)
	}
}

func TestSelectPieceWithoutMoves(t *testing.T) {
	g := NewGame(WithBoard(mustBoard(t, White, map[Coord]Piece{
		{0, 5}:  wK,
		{3, 2}:  wR,
		{-4, 1}: wN,
		{0, -3}: bR,
		{5, -5}: bK,
	})))
	// in check from the rook; the knight cannot block or capture
	assert.Nil(t, g.SelectPiece(at(-4, 1)))
	assert.Equal(t, NoSquare, g.Selected())
	assert.Equal(t, squaresOf(Coord{0, 2}), g.SelectPiece(at(3, 2)))
}

func TestReleaseOnto(t *testing.T) {
	rec := &recorder{}
	g := NewGame(WithListener(rec))

	_, err := g.ReleaseOnto(at(0, 0))
	assert.ErrorIs(t, err, ErrNothingSelected)

	before := g.Encode()
	g.SelectPiece(at(-2, 1))
	_, err = g.ReleaseOnto(at(1, -2))
	require.ErrorIs(t, err, ErrIllegalMove)
	var me *MoveError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, at(-2, 1), me.From)
	assert.Equal(t, NoSquare, g.Selected())
	assert.Equal(t, before, g.Encode())
	assert.Empty(t, rec.events)

	g.SelectPiece(at(-2, 1))
	out, err := g.ReleaseOnto(at(0, -1))
	require.NoError(t, err)
	assert.False(t, out.Captured)
	assert.Equal(t, Black, g.CurrentTurn())
	assert.Equal(t, 1, g.HistoryLen())
	assert.Equal(t, []EventKind{EventMoved}, rec.kinds())
	assert.Equal(t, Event{Kind: EventMoved, From: at(-2, 1), To: at(0, -1), Piece: wP, Color: White}, rec.events[0])
}

func TestPlayEnPassantEvents(t *testing.T) {
	rec := &recorder{}
	g := NewGame(WithListener(rec))
	for _, p := range [][2]Square{
		{at(-3, 1), at(-2, 0)},
		{at(1, -1), at(0, 0)},
		{at(-2, 1), at(0, -1)},
	} {
		_, err := g.Play(p[0], p[1])
		require.NoError(t, err)
	}
	rec.reset()

	out, err := g.Play(at(0, 0), at(-1, 0))
	require.NoError(t, err)
	assert.True(t, out.Captured)
	assert.Equal(t, at(0, -1), out.CapturedAt)
	assert.Equal(t, []EventKind{EventCaptured, EventMoved}, rec.kinds())
	assert.Equal(t, at(0, -1), rec.events[0].To)
	assert.Equal(t, wP, rec.events[0].Piece)

	// undo puts the captured pawn back on its own square
	rec.reset()
	ok, err := g.StepBackward()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []EventKind{EventMoved, EventPlaced}, rec.kinds())
	assert.Equal(t, at(0, -1), rec.events[1].To)
	p, err := g.PieceAt(at(0, -1))
	require.NoError(t, err)
	assert.Equal(t, wP, p)
	assert.Equal(t, SquareSetOf(at(-1, 0)), g.board.EnPassant())
}

func TestPlayRejections(t *testing.T) {
	g := NewGame()
	cases := []struct {
		name     string
		from, to Square
		want     error
	}{
		{"off board", NoSquare, at(0, 0), ErrInvalidSquare},
		{"empty", at(0, 0), at(1, 0), ErrIllegalMove},
		{"opponent", at(1, -1), at(0, 0), ErrWrongTurn},
		{"blocked double step", at(-1, 1), at(1, -1), ErrIllegalMove},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Play(tc.from, tc.to)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, g.HistoryLen())
		})
	}
	_, err := g.PieceAt(NoSquare)
	assert.ErrorIs(t, err, ErrInvalidSquare)
}

func TestPromotionLifecycle(t *testing.T) {
	rec := &recorder{}
	g := promotionGame(t, rec, nil)

	out, err := g.Play(at(4, -3), at(5, -4))
	require.NoError(t, err)
	assert.True(t, out.PromotionPending)
	assert.True(t, g.IsPendingPromotion())
	assert.True(t, g.Status().PromotionPending)
	assert.Equal(t, White, g.CurrentTurn())
	assert.Equal(t, []EventKind{EventMoved, EventPromotionPending}, rec.kinds())

	// everything else is frozen while the choice is open
	assert.Nil(t, g.SelectPiece(at(-4, 5)))
	_, err = g.Play(at(-4, 5), at(-3, 4))
	assert.ErrorIs(t, err, ErrPromotionPending)
	_, err = g.StepBackward()
	assert.ErrorIs(t, err, ErrPromotionPending)
	_, err = g.StepForward()
	assert.ErrorIs(t, err, ErrPromotionPending)
	assert.False(t, g.CanStepBackward())

	_, err = g.ResolvePromotion(King)
	assert.ErrorIs(t, err, ErrInvalidPromotion)
	_, err = g.ResolvePromotion(Pawn)
	assert.ErrorIs(t, err, ErrInvalidPromotion)
	assert.True(t, g.IsPendingPromotion())

	rec.reset()
	out, err = g.ResolvePromotion(Queen)
	require.NoError(t, err)
	assert.False(t, out.PromotionPending)
	assert.Equal(t, Ongoing, out.Status)
	assert.Equal(t, Black, g.CurrentTurn())
	assert.Equal(t, []EventKind{EventPlaced}, rec.kinds())
	p, _ := g.PieceAt(at(5, -4))
	assert.Equal(t, wQ, p)
	require.Len(t, g.Records(), 1)
	assert.Equal(t, Queen, g.Records()[0].Promotion)

	_, err = g.ResolvePromotion(Queen)
	assert.ErrorIs(t, err, ErrPromotionMisuse)

	// undo reverts to the pawn, redo restores the recorded choice
	ok, err := g.StepBackward()
	require.NoError(t, err)
	require.True(t, ok)
	p, _ = g.PieceAt(at(4, -3))
	assert.Equal(t, wP, p)
	assert.Equal(t, White, g.CurrentTurn())
	assert.False(t, g.IsPendingPromotion())

	ok, err = g.StepForward()
	require.NoError(t, err)
	require.True(t, ok)
	p, _ = g.PieceAt(at(5, -4))
	assert.Equal(t, wQ, p)
	assert.Equal(t, Black, g.CurrentTurn())
	assert.False(t, g.IsPendingPromotion())
}

func TestPromotionWithCaptureGivesCheck(t *testing.T) {
	rec := &recorder{}
	g := promotionGame(t, rec, map[Coord]Piece{{5, -3}: bR})

	out, err := g.Play(at(4, -3), at(5, -3))
	require.NoError(t, err)
	assert.True(t, out.Captured)
	assert.True(t, out.PromotionPending)
	// check is not evaluated until the piece is chosen
	assert.Equal(t, NoColor, out.InCheck)
	assert.Equal(t, []EventKind{EventCaptured, EventMoved, EventPromotionPending}, rec.kinds())

	rec.reset()
	out, err = g.ResolvePromotion(Queen)
	require.NoError(t, err)
	assert.Equal(t, Black, out.InCheck)
	assert.Equal(t, Ongoing, out.Status)
	assert.Equal(t, []EventKind{EventPlaced, EventCheck}, rec.kinds())
	assert.Equal(t, at(2, 3), rec.events[1].To)
}

func TestCancelPromotion(t *testing.T) {
	rec := &recorder{}
	g := promotionGame(t, rec, map[Coord]Piece{{5, -3}: bR})
	before := g.Encode()

	assert.ErrorIs(t, g.CancelPromotion(), ErrPromotionMisuse)

	_, err := g.Play(at(4, -3), at(5, -3))
	require.NoError(t, err)
	rec.reset()

	require.NoError(t, g.CancelPromotion())
	assert.False(t, g.IsPendingPromotion())
	assert.Equal(t, White, g.CurrentTurn())
	assert.Zero(t, g.HistoryLen())
	assert.Zero(t, g.Cursor())
	assert.Empty(t, cmp.Diff(before, g.Encode()))
	assert.Equal(t, []EventKind{EventMoved, EventPlaced, EventPromotionCancelled}, rec.kinds())

	// the cancelled ply is gone, not stashed for redo
	ok, err := g.StepForward()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistoryNavigation(t *testing.T) {
	g := NewGame()
	start := g.Encode()
	plies := [][2]Square{
		{at(-3, 1), at(-2, 0)},
		{at(1, -1), at(0, 0)},
		{at(-2, 1), at(0, -1)},
	}
	var snaps []string
	for _, p := range plies {
		_, err := g.Play(p[0], p[1])
		require.NoError(t, err)
		snaps = append(snaps, g.Encode())
	}
	assert.True(t, g.CanStepBackward())
	assert.False(t, g.CanStepForward())

	for i := len(plies) - 1; i >= 0; i-- {
		ok, err := g.StepBackward()
		require.NoError(t, err)
		require.True(t, ok)
		if i > 0 {
			assert.Equal(t, snaps[i-1], g.Encode())
		}
	}
	assert.Equal(t, start, g.Encode())
	ok, err := g.StepBackward()
	require.NoError(t, err)
	assert.False(t, ok)

	for i := range plies {
		ok, err := g.StepForward()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, snaps[i], g.Encode())
	}
	ok, err = g.StepForward()
	require.NoError(t, err)
	assert.False(t, ok)

	// a new ply after undo discards the redo tail
	_, err = g.StepBackward()
	require.NoError(t, err)
	_, err = g.Play(at(-5, 3), at(-4, 0))
	require.NoError(t, err)
	assert.Equal(t, 3, g.HistoryLen())
	assert.Equal(t, g.HistoryLen(), g.Cursor())
	assert.Equal(t, at(-5, 3), g.Records()[2].From)
	assert.False(t, g.CanStepForward())
}

func TestCheckmateEndsGame(t *testing.T) {
	rec := &recorder{}
	g := NewGame(WithListener(rec), WithBoard(mustBoard(t, White, map[Coord]Piece{
		{3, -3}: wK,
		{4, 0}:  wQ,
		{5, -5}: bK,
	})))
	_, err := g.Play(at(4, 0), at(4, -4))
	require.NoError(t, err)
	assert.True(t, g.Over())
	assert.Equal(t, Checkmate, g.Status().Status)
	assert.Equal(t, White, g.Status().Winner)
	assert.Equal(t, []EventKind{EventMoved, EventCheck, EventGameOver}, rec.kinds())
	over := rec.events[2]
	assert.Equal(t, White, over.Color)
	assert.Equal(t, Checkmate, over.Status)

	assert.Nil(t, g.SelectPiece(at(5, -5)))
	_, err = g.Play(at(5, -5), at(4, -5))
	assert.ErrorIs(t, err, ErrGameOver)

	// stepping is still allowed and reopens the game
	ok, err := g.StepBackward()
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, g.Over())
	assert.Equal(t, White, g.CurrentTurn())
}

func TestBoardSnapshotIsDetached(t *testing.T) {
	g := NewGame()
	snap := g.Board()
	_, _, err := snap.ApplyMove(at(-2, 1), at(0, -1))
	require.NoError(t, err)
	p, _ := g.PieceAt(at(-2, 1))
	assert.Equal(t, wP, p)
	assert.Equal(t, White, g.CurrentTurn())
}
