package glinski

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "none"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if k != int(NoKind) && name == s {
			return Kind(k), true
		}
	}
	return NoKind, false
}

// Piece packs the kind into the upper bits and the color into bit 0.
// Empty is the zero value.
type Piece uint8

const Empty Piece = 0

func MakePiece(c Color, k Kind) Piece {
	if k == NoKind || c == NoColor {
		return Empty
	}
	return Piece(k)<<1 | Piece(c)
}

func (p Piece) Kind() Kind { return Kind(p >> 1) }

// Color is only meaningful for non-empty pieces.
func (p Piece) Color() Color {
	if p == Empty {
		return NoColor
	}
	return Color(p & 1)
}

func (p Piece) IsEmpty() bool { return p == Empty }

// Is reports whether p is a piece of color c.
func (p Piece) Is(c Color) bool { return p != Empty && Color(p&1) == c }

func (p Piece) String() string {
	if p == Empty {
		return "empty"
	}
	return p.Color().String() + " " + p.Kind().String()
}

const pieceLetters = ".pnbrqk"

func (p Piece) letter() byte {
	if p == Empty {
		return '.'
	}
	ch := pieceLetters[p.Kind()]
	if p.Color() == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func pieceFromLetter(ch byte) (Piece, bool) {
	c := White
	if ch >= 'a' && ch <= 'z' {
		c = Black
	} else if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	} else {
		return Empty, false
	}
	for k := Pawn; k <= King; k++ {
		if pieceLetters[k] == ch {
			return MakePiece(c, k), true
		}
	}
	return Empty, false
}

// Move is a (from, to) pair of dense squares.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Status of the side to move.
type Status int8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

// Outcome is what the presentation layer learns from a completed ply.
type Outcome struct {
	Captured         bool
	CapturedAt       Square
	CapturedPiece    Piece
	PromotionPending bool
	// InCheck is the side now in check, NoColor if none.
	InCheck Color
	Status  Status
	// Winner is set only on checkmate.
	Winner Color
}
