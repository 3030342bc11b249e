package glinski

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func at(q, r int) Square {
	sq := SquareOf(Coord{q, r})
	if sq == NoSquare {
		panic("test square off board: " + Coord{q, r}.String())
	}
	return sq
}

var (
	wK = MakePiece(White, King)
	wQ = MakePiece(White, Queen)
	wR = MakePiece(White, Rook)
	wN = MakePiece(White, Knight)
	wP = MakePiece(White, Pawn)
	bK = MakePiece(Black, King)
	bR = MakePiece(Black, Rook)
	bN = MakePiece(Black, Knight)
	bP = MakePiece(Black, Pawn)
)

func mustBoard(t *testing.T, turn Color, pieces map[Coord]Piece) *Board {
	t.Helper()
	m := make(map[Square]Piece, len(pieces))
	for c, pc := range pieces {
		m[SquareOf(c)] = pc
	}
	b, err := NewBoard(m, turn)
	require.NoError(t, err)
	return b
}

func squaresOf(cs ...Coord) []Square {
	out := make([]Square, 0, len(cs))
	for _, c := range cs {
		out = append(out, SquareOf(c))
	}
	return out
}

// recorder collects events in order.
type recorder struct{ events []Event }

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recorder) reset() { r.events = nil }
