package glinski

// Game is one session: it owns the board, the history log and the promotion
// state, and is the only thing allowed to mutate them. Not safe for
// concurrent use; serialise calls per game.
type Game struct {
	board   *Board
	history History
	// status of the side to move, refreshed after every mutation
	status Outcome

	selected Square
	targets  SquareSet

	listener Listener
}

type Option func(*Game)

// WithBoard starts the game from b instead of the initial position. The game
// takes ownership of b.
func WithBoard(b *Board) Option {
	return func(g *Game) { g.board = b }
}

func WithListener(l Listener) Option {
	return func(g *Game) { g.listener = l }
}

func NewGame(options ...Option) *Game {
	g := &Game{selected: NoSquare}
	for _, opt := range options {
		opt(g)
	}
	if g.board == nil {
		g.board = NewInitialBoard()
	}
	g.status = g.board.Status()
	return g
}

// Board returns a snapshot; mutating it does not affect the game.
func (g *Game) Board() *Board { return g.board.Clone() }

func (g *Game) PieceAt(sq Square) (Piece, error) {
	if !sq.Valid() {
		return Empty, ErrInvalidSquare
	}
	return g.board.PieceAt(sq), nil
}

func (g *Game) CurrentTurn() Color { return g.board.Turn() }

func (g *Game) IsPendingPromotion() bool {
	_, _, ok := g.board.PendingPromotion()
	return ok
}

func (g *Game) PendingPromotion() (Square, Color, bool) { return g.board.PendingPromotion() }

// Status describes the side to move: check, mate, stalemate or pending
// promotion. Capture fields are always empty.
func (g *Game) Status() Outcome { return g.status }

// Over reports checkmate or stalemate at the current history position.
func (g *Game) Over() bool { return g.status.Status != Ongoing }

// Winner is NoColor unless the side to move is checkmated.
func (g *Game) Winner() Color { return g.status.Winner }

func (g *Game) Selected() Square { return g.selected }

func (g *Game) Records() []Record     { return g.history.Records() }
func (g *Game) HistoryLen() int       { return g.history.Len() }
func (g *Game) Cursor() int           { return g.history.Cursor() }
func (g *Game) CanStepBackward() bool { return g.history.Cursor() > 0 && !g.IsPendingPromotion() }
func (g *Game) CanStepForward() bool {
	return g.history.Cursor() < g.history.Len() && !g.IsPendingPromotion()
}

func (g *Game) Hash() uint64   { return g.board.Hash() }
func (g *Game) Encode() string { return g.board.Encode() }

func (g *Game) clearSelection() {
	g.selected = NoSquare
	g.targets = SquareSet{}
}

// movable checks that the side to move may move the piece on from now.
func (g *Game) movable(from Square) error {
	switch {
	case !from.Valid():
		return ErrInvalidSquare
	case g.IsPendingPromotion():
		return ErrPromotionPending
	case g.Over():
		return ErrGameOver
	}
	pc := g.board.PieceAt(from)
	if pc == Empty {
		return ErrIllegalMove
	}
	if pc.Color() != g.board.Turn() {
		return ErrWrongTurn
	}
	return nil
}

// SelectPiece selects from and returns its legal destinations. An empty
// square, the wrong side, a pending promotion, a finished game or a piece
// without moves all yield nil and clear the selection.
func (g *Game) SelectPiece(from Square) []Square {
	g.clearSelection()
	if g.movable(from) != nil {
		return nil
	}
	legal := g.board.LegalMoves(from)
	if legal.IsEmpty() {
		return nil
	}
	g.selected, g.targets = from, legal
	return legal.Squares()
}

// ReleaseOnto plays the selected piece onto to if to is one of its legal
// destinations. The selection is cleared either way; on error nothing else
// changes.
func (g *Game) ReleaseOnto(to Square) (Outcome, error) {
	from, targets := g.selected, g.targets
	g.clearSelection()
	if from == NoSquare {
		return Outcome{}, ErrNothingSelected
	}
	if err := g.movable(from); err != nil {
		return Outcome{}, &MoveError{Op: "release", From: from, To: to, Err: err}
	}
	if !targets.Has(to) {
		return Outcome{}, &MoveError{Op: "release", From: from, To: to, Err: ErrIllegalMove}
	}
	return g.apply(from, to)
}

// Play is select-and-release in one call.
func (g *Game) Play(from, to Square) (Outcome, error) {
	g.clearSelection()
	if err := g.movable(from); err != nil {
		return Outcome{}, &MoveError{Op: "play", From: from, To: to, Err: err}
	}
	if !g.board.LegalMoves(from).Has(to) {
		return Outcome{}, &MoveError{Op: "play", From: from, To: to, Err: ErrIllegalMove}
	}
	return g.apply(from, to)
}

func (g *Game) apply(from, to Square) (Outcome, error) {
	out, rec, err := g.board.ApplyMove(from, to)
	if err != nil {
		return Outcome{}, err
	}
	g.history.Append(rec)

	if out.Captured {
		g.emit(Event{Kind: EventCaptured, From: NoSquare, To: out.CapturedAt, Piece: out.CapturedPiece, Color: out.CapturedPiece.Color()})
	}
	g.emit(Event{Kind: EventMoved, From: from, To: to, Piece: rec.Moved, Color: rec.Moved.Color()})
	g.status = statusOf(out)
	if out.PromotionPending {
		g.emit(Event{Kind: EventPromotionPending, From: NoSquare, To: to, Piece: rec.Moved, Color: rec.Moved.Color()})
		return out, nil
	}
	g.emitStatus(out)
	return out, nil
}

// ResolvePromotion promotes the pending pawn to kind. Without a pending
// promotion it fails with ErrPromotionMisuse and changes nothing; if the
// pending square no longer holds the pawn the promotion is cancelled. A kind
// that is not a promotion choice is rejected and the promotion stays pending.
func (g *Game) ResolvePromotion(kind Kind) (Outcome, error) {
	sq, _, ok := g.board.PendingPromotion()
	if !ok {
		return Outcome{}, ErrPromotionMisuse
	}
	if !validPromotion(kind) {
		return Outcome{}, &MoveError{Op: "promote", From: NoSquare, To: sq, Err: ErrInvalidPromotion}
	}
	out, ok := g.board.Promote(sq, kind)
	if !ok {
		g.cancelPending()
		return Outcome{}, ErrPromotionMisuse
	}
	g.history.MarkPromotion(kind)
	pc := g.board.PieceAt(sq)
	g.emit(Event{Kind: EventPlaced, From: NoSquare, To: sq, Piece: pc, Color: pc.Color()})
	g.status = statusOf(out)
	g.emitStatus(out)
	return out, nil
}

// CancelPromotion takes back the promoting move entirely: the record is
// dropped (not kept for redo) and the original mover is to move again.
func (g *Game) CancelPromotion() error {
	if !g.IsPendingPromotion() {
		return ErrPromotionMisuse
	}
	g.cancelPending()
	return nil
}

func (g *Game) cancelPending() {
	rec, ok := g.history.TruncateLast()
	if !ok {
		return
	}
	g.clearSelection()
	g.board.Unapply(rec)
	g.emitUndo(rec)
	g.emit(Event{Kind: EventPromotionCancelled, From: rec.To, To: rec.From, Piece: rec.Moved, Color: rec.Moved.Color()})
	g.refresh()
}

// StepBackward undoes the record before the cursor. It reports false at the
// start of the log and refuses while a promotion is pending.
func (g *Game) StepBackward() (bool, error) {
	if g.IsPendingPromotion() {
		return false, ErrPromotionPending
	}
	rec, ok := g.history.Back()
	if !ok {
		return false, nil
	}
	g.clearSelection()
	g.board.Unapply(rec)
	g.emitUndo(rec)
	g.refresh()
	return true, nil
}

// StepForward replays the record at the cursor exactly as recorded. It
// reports false at the end of the log.
func (g *Game) StepForward() (bool, error) {
	if g.IsPendingPromotion() {
		return false, ErrPromotionPending
	}
	rec, ok := g.history.Forward()
	if !ok {
		return false, nil
	}
	g.clearSelection()
	g.board.Replay(rec)
	if rec.Captured != Empty {
		g.emit(Event{Kind: EventCaptured, From: NoSquare, To: rec.CapturedAt, Piece: rec.Captured, Color: rec.Captured.Color()})
	}
	g.emit(Event{Kind: EventMoved, From: rec.From, To: rec.To, Piece: rec.Moved, Color: rec.Moved.Color()})
	if rec.Promotion != NoKind {
		pc := g.board.PieceAt(rec.To)
		g.emit(Event{Kind: EventPlaced, From: NoSquare, To: rec.To, Piece: pc, Color: pc.Color()})
	}
	g.refresh()
	return true, nil
}

func (g *Game) emitUndo(rec Record) {
	g.emit(Event{Kind: EventMoved, From: rec.To, To: rec.From, Piece: rec.Moved, Color: rec.Moved.Color()})
	if rec.Captured != Empty {
		g.emit(Event{Kind: EventPlaced, From: NoSquare, To: rec.CapturedAt, Piece: rec.Captured, Color: rec.Captured.Color()})
	}
}

func (g *Game) refresh() {
	g.status = g.board.Status()
	g.emitStatus(g.status)
}

func statusOf(out Outcome) Outcome {
	return Outcome{
		CapturedAt:       NoSquare,
		PromotionPending: out.PromotionPending,
		InCheck:          out.InCheck,
		Status:           out.Status,
		Winner:           out.Winner,
	}
}
