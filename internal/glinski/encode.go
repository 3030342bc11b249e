package glinski

import (
	"strconv"
	"strings"
)

// Encode renders a FEN-like string: eleven files (q = -5..5, r ascending)
// separated by "/", empty runs as decimal counts, uppercase White, then the
// side to move, the en-passant targets and the pending promotion square:
//
//	<files> w|b <q,r;q,r | -> <q,r | ->
func (b *Board) Encode() string {
	var sb strings.Builder
	empty := 0
	flush := func() {
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
			empty = 0
		}
	}
	q := -Radius
	for sq := Square(0); sq < NumSquares; sq++ {
		c := sq.Coord()
		if c.Q != q {
			flush()
			sb.WriteByte('/')
			q = c.Q
		}
		pc := b.squares[sq]
		if pc == Empty {
			empty++
			continue
		}
		flush()
		sb.WriteByte(pc.letter())
	}
	flush()

	sb.WriteByte(' ')
	if b.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.enPassant.IsEmpty() {
		sb.WriteByte('-')
	} else {
		for i, sq := range b.enPassant.Squares() {
			if i > 0 {
				sb.WriteByte(';')
			}
			writeCoord(&sb, sq.Coord())
		}
	}

	sb.WriteByte(' ')
	if b.pending == NoSquare {
		sb.WriteByte('-')
	} else {
		writeCoord(&sb, b.pending.Coord())
	}
	return sb.String()
}

func writeCoord(sb *strings.Builder, c Coord) {
	sb.WriteString(strconv.Itoa(c.Q))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(c.R))
}

// DecodeBoard parses the Encode format. The two trailing fields may be
// omitted.
func DecodeBoard(s string) (*Board, error) {
	parts := strings.Fields(s)
	if len(parts) < 2 || len(parts) > 4 {
		return nil, ErrInvalidEncoding
	}
	files := strings.Split(parts[0], "/")
	if len(files) != 2*Radius+1 {
		return nil, ErrInvalidEncoding
	}

	pieces := make(map[Square]Piece)
	for i, file := range files {
		q := i - Radius
		cells := fileCells(q)
		n := 0
		for j := 0; j < len(file); j++ {
			ch := file[j]
			if ch >= '0' && ch <= '9' {
				k := j
				for k < len(file) && file[k] >= '0' && file[k] <= '9' {
					k++
				}
				run, err := strconv.Atoi(file[j:k])
				if err != nil || run == 0 {
					return nil, ErrInvalidEncoding
				}
				n += run
				j = k - 1
				continue
			}
			pc, ok := pieceFromLetter(ch)
			if !ok || n >= len(cells) {
				return nil, ErrInvalidEncoding
			}
			pieces[cells[n]] = pc
			n++
		}
		if n != len(cells) {
			return nil, ErrInvalidEncoding
		}
	}

	var turn Color
	switch parts[1] {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return nil, ErrInvalidEncoding
	}
	b, err := NewBoard(pieces, turn)
	if err != nil {
		return nil, err
	}

	if len(parts) > 2 && parts[2] != "-" {
		for _, field := range strings.Split(parts[2], ";") {
			sq, err := parseCoord(field)
			if err != nil {
				return nil, err
			}
			b.enPassant.Add(sq)
		}
	}
	if len(parts) > 3 && parts[3] != "-" {
		sq, err := parseCoord(parts[3])
		if err != nil {
			return nil, err
		}
		pc := b.squares[sq]
		if pc.Kind() != Pawn || pc.Color() != turn || !isPromotionSquare(turn, sq) {
			return nil, ErrInvalidEncoding
		}
		b.pending, b.pendingColor = sq, turn
	}
	return b, nil
}

// fileCells lists the squares with the given q, r ascending.
func fileCells(q int) []Square {
	var out []Square
	for r := -Radius; r <= Radius; r++ {
		if sq := SquareOf(Coord{q, r}); sq != NoSquare {
			out = append(out, sq)
		}
	}
	return out
}

func parseCoord(s string) (Square, error) {
	qs, rs, ok := strings.Cut(s, ",")
	if !ok {
		return NoSquare, ErrInvalidEncoding
	}
	q, err := strconv.Atoi(qs)
	if err != nil {
		return NoSquare, ErrInvalidEncoding
	}
	r, err := strconv.Atoi(rs)
	if err != nil {
		return NoSquare, ErrInvalidEncoding
	}
	sq := SquareOf(Coord{q, r})
	if sq == NoSquare {
		return NoSquare, ErrInvalidSquare
	}
	return sq, nil
}
