package glinski

type EventKind string

const (
	EventMoved    EventKind = "moved"    // From -> To, Piece is the mover
	EventCaptured EventKind = "captured" // Piece removed from To
	// EventPlaced: Piece appears on To (undo restore, promotion, promotion
	// revert). The view should replace whatever it shows there.
	EventPlaced             EventKind = "placed"
	EventCheck              EventKind = "check" // Color's king on To is attacked
	EventGameOver           EventKind = "game_over"
	EventPromotionPending   EventKind = "promotion_pending" // Color must choose for the pawn on To
	EventPromotionCancelled EventKind = "promotion_cancelled"
)

// Event is a notification for the presentation layer.
type Event struct {
	Kind   EventKind
	From   Square
	To     Square
	Piece  Piece
	Color  Color
	Status Status
}

type Listener interface {
	OnEvent(Event)
}

type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

func (g *Game) emit(e Event) {
	if g.listener != nil {
		g.listener.OnEvent(e)
	}
}

// emitStatus reports check / game end for the side now to move.
func (g *Game) emitStatus(out Outcome) {
	if out.InCheck != NoColor {
		g.emit(Event{Kind: EventCheck, From: NoSquare, To: g.board.KingSquare(out.InCheck), Color: out.InCheck})
	}
	if out.Status != Ongoing {
		g.emit(Event{Kind: EventGameOver, From: NoSquare, To: NoSquare, Color: out.Winner, Status: out.Status})
	}
}
