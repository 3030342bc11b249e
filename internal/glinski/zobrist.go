package glinski

import "sync"

const zobristKinds = int(King) + 1 // index 0 (NoKind) unused

var (
	zobristOnce sync.Once

	zobristPieces    [2][zobristKinds][NumSquares]uint64
	zobristSide      uint64
	zobristEnPassant [NumSquares]uint64
	zobristPending   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for c := White; c <= Black; c++ {
			for k := Pawn; k <= King; k++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[c][k][sq] = next()
				}
			}
		}
		zobristSide = next()
		for sq := range zobristEnPassant {
			zobristEnPassant[sq] = next()
		}
		zobristPending = next()
	})
}

// Hash is the Zobrist key of the position: pieces, side to move, en-passant
// targets and whether a promotion is pending. Equal positions hash equal.
func (b *Board) Hash() uint64 {
	initZobrist()

	var h uint64
	for sq, pc := range b.squares {
		if pc == Empty {
			continue
		}
		h ^= zobristPieces[pc.Color()][pc.Kind()][sq]
	}
	if b.turn == Black {
		h ^= zobristSide
	}
	for _, sq := range b.enPassant.Squares() {
		h ^= zobristEnPassant[sq]
	}
	if b.pending != NoSquare {
		h ^= zobristPending
	}
	return h
}
