package glinski

// Board is the mutable game state. It is not safe for concurrent use: the
// legality filter mutates it temporarily while probing.
type Board struct {
	squares   [NumSquares]Piece
	turn      Color
	kings     [2]Square
	enPassant SquareSet

	// NoSquare unless a pawn is waiting on its promotion edge.
	pending      Square
	pendingColor Color
}

type placement struct {
	at   Coord
	kind Kind
}

// whiteSetup is White's initial army. Black's is its mirror image across
// the centre file, (q, r) -> (r, q), which leaves each queen facing the other.
func whiteSetup() []placement {
	out := []placement{
		{Coord{-5, 3}, Knight}, {Coord{-3, 5}, Knight},
		{Coord{-3, 3}, Bishop}, {Coord{-4, 4}, Bishop}, {Coord{-5, 5}, Bishop},
		{Coord{-5, 2}, Rook}, {Coord{-2, 5}, Rook},
		{Coord{-5, 4}, Queen},
		{Coord{-4, 5}, King},
		{Coord{-1, 1}, Pawn},
	}
	for i := 1; i <= 4; i++ {
		out = append(out,
			placement{Coord{-1 - i, 1}, Pawn},
			placement{Coord{-1, 1 + i}, Pawn},
		)
	}
	return out
}

func mirror(c Coord) Coord { return Coord{c.R, c.Q} }

// NewInitialBoard returns the standard starting position, White to move.
func NewInitialBoard() *Board {
	setup := whiteSetup()
	pieces := make(map[Square]Piece, 2*len(setup))
	for _, p := range setup {
		pieces[SquareOf(p.at)] = MakePiece(White, p.kind)
		pieces[SquareOf(mirror(p.at))] = MakePiece(Black, p.kind)
	}
	b, err := NewBoard(pieces, White)
	if err != nil {
		panic("glinski: bad initial setup: " + err.Error())
	}
	return b
}

// NewBoard builds a position from explicit placements. Exactly one king per
// color is required.
func NewBoard(pieces map[Square]Piece, turn Color) (*Board, error) {
	if turn != White && turn != Black {
		return nil, ErrInvalidEncoding
	}
	b := &Board{
		turn:         turn,
		kings:        [2]Square{NoSquare, NoSquare},
		pending:      NoSquare,
		pendingColor: NoColor,
	}
	for sq, pc := range pieces {
		if !sq.Valid() {
			return nil, ErrInvalidSquare
		}
		if pc == Empty {
			continue
		}
		if pc.Kind() < Pawn || pc.Kind() > King {
			return nil, ErrInvalidEncoding
		}
		if pc.Kind() == King {
			if b.kings[pc.Color()] != NoSquare {
				return nil, ErrInvalidEncoding
			}
			b.kings[pc.Color()] = sq
		}
		b.squares[sq] = pc
	}
	if b.kings[White] == NoSquare || b.kings[Black] == NoSquare {
		return nil, ErrInvalidEncoding
	}
	return b, nil
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// PieceAt returns Empty for off-board squares.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return Empty
	}
	return b.squares[sq]
}

func (b *Board) Turn() Color { return b.turn }

func (b *Board) KingSquare(c Color) Square {
	if c != White && c != Black {
		return NoSquare
	}
	return b.kings[c]
}

func (b *Board) EnPassant() SquareSet { return b.enPassant }

// PendingPromotion reports the square and color of a pawn awaiting promotion.
func (b *Board) PendingPromotion() (Square, Color, bool) {
	if b.pending == NoSquare {
		return NoSquare, NoColor, false
	}
	return b.pending, b.pendingColor, true
}

// Pieces returns every occupied square with its piece.
func (b *Board) Pieces() map[Square]Piece {
	out := make(map[Square]Piece)
	for sq, pc := range b.squares {
		if pc != Empty {
			out[Square(sq)] = pc
		}
	}
	return out
}

func pawnForward(c Color) Coord {
	if c == White {
		return Up
	}
	return Up.Neg()
}

var pawnCaptures = [2][2]Coord{
	White: {Right, Forward},
	Black: {Right.Neg(), Forward.Neg()},
}

// isPawnHome is the double-step predicate: the three home shapes per color.
func isPawnHome(c Color, sq Square) bool {
	p := sq.Coord()
	if c == White {
		return (p.Q == -1 && p.R == 1) || (p.R == 1 && p.Q < -1) || (p.Q == -1 && p.R > 1)
	}
	return (p.Q == 1 && p.R == -1) || (p.R == -1 && p.Q > 1) || (p.Q == 1 && p.R < -1)
}

func isPromotionSquare(c Color, sq Square) bool {
	p := sq.Coord()
	if c == White {
		return p.Q == Radius || p.R == -Radius
	}
	return p.Q == -Radius || p.R == Radius
}

// captureSquare is where a piece moving onto to actually captures: one step
// behind to for an en-passant pawn capture, to otherwise.
func (b *Board) captureSquare(pc Piece, to Square) Square {
	if pc.Kind() == Pawn && b.enPassant.Has(to) {
		behind := to.Step(pawnForward(pc.Color()).Neg())
		if behind != NoSquare && b.squares[behind] == MakePiece(pc.Color().Other(), Pawn) {
			return behind
		}
	}
	return to
}

// ApplyMove moves the piece on from to to. Legality is the caller's concern;
// only structural preconditions are checked here.
func (b *Board) ApplyMove(from, to Square) (Outcome, Record, error) {
	if !from.Valid() || !to.Valid() {
		return Outcome{}, Record{}, &MoveError{Op: "apply", From: from, To: to, Err: ErrInvalidSquare}
	}
	if b.pending != NoSquare {
		return Outcome{}, Record{}, &MoveError{Op: "apply", From: from, To: to, Err: ErrPromotionPending}
	}
	pc := b.squares[from]
	if pc == Empty || from == to {
		return Outcome{}, Record{}, &MoveError{Op: "apply", From: from, To: to, Err: ErrIllegalMove}
	}
	c := pc.Color()
	if c != b.turn {
		return Outcome{}, Record{}, &MoveError{Op: "apply", From: from, To: to, Err: ErrWrongTurn}
	}

	capAt := b.captureSquare(pc, to)
	rec := Record{
		From:            from,
		To:              to,
		Moved:           pc,
		CapturedAt:      capAt,
		Captured:        b.squares[capAt],
		EnPassantBefore: b.enPassant,
	}

	b.squares[capAt] = Empty
	b.squares[to] = pc
	b.squares[from] = Empty

	var ep SquareSet
	promoting := false
	if pc.Kind() == Pawn {
		fwd := pawnForward(c)
		if isPromotionSquare(c, to) {
			promoting = true
		} else if mid := from.Step(fwd); mid != NoSquare && mid.Step(fwd) == to {
			ep.Add(mid)
		}
	}
	b.enPassant = ep
	rec.EnPassantAfter = ep

	if pc.Kind() == King {
		b.kings[c] = to
	}

	out := Outcome{
		Captured:      rec.Captured != Empty,
		CapturedAt:    NoSquare,
		CapturedPiece: rec.Captured,
		InCheck:       NoColor,
		Winner:        NoColor,
	}
	if out.Captured {
		out.CapturedAt = capAt
	}
	if promoting {
		b.pending = to
		b.pendingColor = c
		out.PromotionPending = true
		return out, rec, nil
	}
	b.turn = c.Other()
	b.assess(&out)
	return out, rec, nil
}

func validPromotion(k Kind) bool {
	return k == Knight || k == Bishop || k == Rook || k == Queen
}

// Promote commits the pending promotion on sq. It reports false and changes
// nothing when sq is not pending, no longer holds a pawn, or kind is not a
// promotion choice.
func (b *Board) Promote(sq Square, kind Kind) (Outcome, bool) {
	if b.pending == NoSquare || b.pending != sq || !validPromotion(kind) {
		return Outcome{}, false
	}
	pc := b.squares[sq]
	if pc.Kind() != Pawn || pc.Color() != b.pendingColor {
		return Outcome{}, false
	}
	b.squares[sq] = MakePiece(pc.Color(), kind)
	b.pending = NoSquare
	b.pendingColor = NoColor
	b.turn = pc.Color().Other()

	out := Outcome{CapturedAt: NoSquare, InCheck: NoColor, Winner: NoColor}
	b.assess(&out)
	return out, true
}

// Replay re-applies a recorded ply verbatim: the recorded en-passant set and
// promotion choice are restored, never re-derived.
func (b *Board) Replay(rec Record) {
	pc := rec.Moved
	b.squares[rec.CapturedAt] = Empty
	b.squares[rec.From] = Empty
	if rec.Promotion != NoKind {
		b.squares[rec.To] = MakePiece(pc.Color(), rec.Promotion)
	} else {
		b.squares[rec.To] = pc
	}
	if pc.Kind() == King {
		b.kings[pc.Color()] = rec.To
	}
	b.enPassant = rec.EnPassantAfter
	b.pending = NoSquare
	b.pendingColor = NoColor
	b.turn = pc.Color().Other()
}

// Unapply reverses a recorded ply, including a pending or committed
// promotion, and hands the move back to the recorded mover.
func (b *Board) Unapply(rec Record) {
	pc := rec.Moved
	b.squares[rec.To] = Empty
	b.squares[rec.From] = pc
	b.squares[rec.CapturedAt] = rec.Captured
	if pc.Kind() == King {
		b.kings[pc.Color()] = rec.From
	}
	b.enPassant = rec.EnPassantBefore
	b.pending = NoSquare
	b.pendingColor = NoColor
	b.turn = pc.Color()
}

// Status evaluates the side to move.
func (b *Board) Status() Outcome {
	out := Outcome{CapturedAt: NoSquare, InCheck: NoColor, Winner: NoColor}
	if b.pending != NoSquare {
		out.PromotionPending = true
		return out
	}
	b.assess(&out)
	return out
}

func (b *Board) assess(out *Outcome) {
	side := b.turn
	inCheck := b.IsInCheck(side)
	if inCheck {
		out.InCheck = side
	}
	if b.HasLegalMoves(side) {
		out.Status = Ongoing
		return
	}
	if inCheck {
		out.Status = Checkmate
		out.Winner = side.Other()
		return
	}
	out.Status = Stalemate
}
