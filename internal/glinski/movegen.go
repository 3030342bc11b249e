package glinski

// Pseudo-legal generators. c is the side the mover plays for: squares holding
// a c piece block and are excluded, the first other piece on a ray is kept.

func genPawnMoves(b *Board, from Square, c Color, dst *SquareSet) {
	fwd := pawnForward(c)
	if one := from.Step(fwd); one != NoSquare && b.squares[one] == Empty {
		dst.Add(one)
		if two := one.Step(fwd); two != NoSquare && b.squares[two] == Empty && isPawnHome(c, from) {
			dst.Add(two)
		}
	}
	for _, d := range pawnCaptures[c] {
		to := from.Step(d)
		if to == NoSquare {
			continue
		}
		if b.squares[to].Is(c.Other()) || b.canEnPassant(to, c) {
			dst.Add(to)
		}
	}
}

// genPawnAttacks adds the capture diagonals regardless of occupancy.
func genPawnAttacks(from Square, c Color, dst *SquareSet) {
	for _, d := range pawnCaptures[c] {
		dst.Add(from.Step(d))
	}
}

// canEnPassant: to is the en-passant target and the enemy pawn that skipped
// over it sits one step behind, seen from a c pawn.
func (b *Board) canEnPassant(to Square, c Color) bool {
	if !b.enPassant.Has(to) {
		return false
	}
	behind := to.Step(pawnForward(c).Neg())
	return behind != NoSquare && b.squares[behind] == MakePiece(c.Other(), Pawn)
}

func genKnightMoves(b *Board, from Square, c Color, dst *SquareSet) {
	for _, to := range knightJump[from] {
		if to != NoSquare && !b.squares[to].Is(c) {
			dst.Add(to)
		}
	}
}

func genRays(b *Board, from Square, c Color, steps *[NumSquares][6]Square, dst *SquareSet) {
	for i := 0; i < 6; i++ {
		for to := steps[from][i]; to != NoSquare; to = steps[to][i] {
			pc := b.squares[to]
			if pc == Empty {
				dst.Add(to)
				continue
			}
			if !pc.Is(c) {
				dst.Add(to)
			}
			break
		}
	}
}

func genBishopMoves(b *Board, from Square, c Color, dst *SquareSet) {
	genRays(b, from, c, &bishopStep, dst)
}

func genRookMoves(b *Board, from Square, c Color, dst *SquareSet) {
	genRays(b, from, c, &rookStep, dst)
}

func genQueenMoves(b *Board, from Square, c Color, dst *SquareSet) {
	genRays(b, from, c, &bishopStep, dst)
	genRays(b, from, c, &rookStep, dst)
}

// King: the twelve ray directions as single steps.
func genKingMoves(b *Board, from Square, c Color, dst *SquareSet) {
	for i := 0; i < 6; i++ {
		for _, to := range [2]Square{rookStep[from][i], bishopStep[from][i]} {
			if to != NoSquare && !b.squares[to].Is(c) {
				dst.Add(to)
			}
		}
	}
}

// PseudoMoves returns the destinations of the piece on from without the
// self-check filter. Empty or off-board squares yield an empty set.
func (b *Board) PseudoMoves(from Square) SquareSet {
	var dst SquareSet
	if !from.Valid() {
		return dst
	}
	pc := b.squares[from]
	if pc == Empty {
		return dst
	}
	c := pc.Color()
	switch pc.Kind() {
	case Pawn:
		genPawnMoves(b, from, c, &dst)
	case Knight:
		genKnightMoves(b, from, c, &dst)
	case Bishop:
		genBishopMoves(b, from, c, &dst)
	case Rook:
		genRookMoves(b, from, c, &dst)
	case Queen:
		genQueenMoves(b, from, c, &dst)
	case King:
		genKingMoves(b, from, c, &dst)
	}
	return dst
}

// LegalMoves is PseudoMoves minus every destination that would leave the
// mover's own king attacked. The piece need not belong to the side to move.
func (b *Board) LegalMoves(from Square) SquareSet {
	pseudo := b.PseudoMoves(from)
	if pseudo.IsEmpty() {
		return pseudo
	}
	c := b.squares[from].Color()
	var out SquareSet
	for _, to := range pseudo.Squares() {
		exposed := b.probe(from, to, func() bool { return b.IsInCheck(c) })
		if !exposed {
			out.Add(to)
		}
	}
	return out
}

// AllLegalMoves lists every legal move of color c.
func (b *Board) AllLegalMoves(c Color) []Move {
	var moves []Move
	for sq := Square(0); sq < NumSquares; sq++ {
		if !b.squares[sq].Is(c) {
			continue
		}
		for _, to := range b.LegalMoves(sq).Squares() {
			moves = append(moves, Move{From: sq, To: to})
		}
	}
	return moves
}

// probe applies from->to hypothetically (en-passant removal and king cache
// included), evaluates fn and restores the board even if fn panics. Nothing
// is written to history.
func (b *Board) probe(from, to Square, fn func() bool) bool {
	pc := b.squares[from]
	capAt := b.captureSquare(pc, to)
	target, captured := b.squares[to], b.squares[capAt]
	kings := b.kings

	defer func() {
		b.squares[capAt] = captured
		b.squares[to] = target
		b.squares[from] = pc
		b.kings = kings
	}()

	b.squares[capAt] = Empty
	b.squares[to] = pc
	b.squares[from] = Empty
	if pc.Kind() == King {
		b.kings[pc.Color()] = to
	}
	return fn()
}
