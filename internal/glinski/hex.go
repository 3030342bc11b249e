package glinski

import "fmt"

const (
	Radius     = 5
	NumSquares = 91
)

// Coord is an axial hex coordinate; the third cube coordinate is S = -Q-R.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

func (c Coord) S() int { return -c.Q - c.R }

// Cube returns the three embedding coordinates of c.
func (c Coord) Cube() (q, r, s int) { return c.Q, c.R, c.S() }

func (c Coord) Add(o Coord) Coord { return Coord{c.Q + o.Q, c.R + o.R} }
func (c Coord) Sub(o Coord) Coord { return Coord{c.Q - o.Q, c.R - o.R} }
func (c Coord) Neg() Coord        { return Coord{-c.Q, -c.R} }
func (c Coord) Scale(n int) Coord { return Coord{c.Q * n, c.R * n} }
func (c Coord) String() string    { return fmt.Sprintf("(%d,%d)", c.Q, c.R) }

// IsValid is max(|q|,|r|,|q+r|) <= Radius.
func (c Coord) IsValid() bool {
	return abs(c.Q) <= Radius && abs(c.R) <= Radius && abs(c.Q+c.R) <= Radius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Movement unit vectors. Up is the white pawn's forward direction.
var (
	Right   = Coord{1, 0}
	Forward = Coord{0, -1}
	Up      = Right.Add(Forward)
)

var (
	rookDirs = [6]Coord{Up, Right, Forward, Up.Neg(), Right.Neg(), Forward.Neg()}

	bishopDirs = [6]Coord{
		Up.Add(Right), Up.Add(Forward), Right.Sub(Forward),
		Up.Add(Right).Neg(), Up.Add(Forward).Neg(), Right.Sub(Forward).Neg(),
	}

	knightOffsets = [12]Coord{
		Up.Scale(2).Add(Right), Up.Scale(2).Add(Forward),
		Right.Scale(2).Add(Up), Right.Scale(2).Sub(Forward),
		Forward.Scale(2).Add(Up), Forward.Scale(2).Sub(Right),
		Up.Scale(2).Add(Right).Neg(), Up.Scale(2).Add(Forward).Neg(),
		Right.Scale(2).Add(Up).Neg(), Right.Scale(2).Sub(Forward).Neg(),
		Forward.Scale(2).Add(Up).Neg(), Forward.Scale(2).Sub(Right).Neg(),
	}
)

// RookDirections returns the three primary axes and their negations.
func RookDirections() []Coord { return rookDirs[:] }

// BishopDirections returns the three diagonal composites and their negations.
func BishopDirections() []Coord { return bishopDirs[:] }

// KnightOffsets returns the twelve knight jumps.
func KnightOffsets() []Coord { return knightOffsets[:] }

// Square is a dense index 0..90 over the valid cells.
type Square int8

const NoSquare Square = -1

var (
	squareCoords [NumSquares]Coord
	// indexed by gridIndex
	coordSquares [(2*Radius + 1) * (2*Radius + 1)]Square

	rookStep   [NumSquares][6]Square
	bishopStep [NumSquares][6]Square
	knightJump [NumSquares][12]Square
)

func init() {
	for i := range coordSquares {
		coordSquares[i] = NoSquare
	}
	n := 0
	for q := -Radius; q <= Radius; q++ {
		for r := -Radius; r <= Radius; r++ {
			c := Coord{q, r}
			if !c.IsValid() {
				continue
			}
			squareCoords[n] = c
			coordSquares[gridIndex(c)] = Square(n)
			n++
		}
	}
	if n != NumSquares {
		panic("glinski: hexagon does not have 91 cells")
	}
	for sq := Square(0); sq < NumSquares; sq++ {
		c := squareCoords[sq]
		for i, d := range rookDirs {
			rookStep[sq][i] = SquareOf(c.Add(d))
		}
		for i, d := range bishopDirs {
			bishopStep[sq][i] = SquareOf(c.Add(d))
		}
		for i, d := range knightOffsets {
			knightJump[sq][i] = SquareOf(c.Add(d))
		}
	}
}

func gridIndex(c Coord) int { return (c.Q+Radius)*(2*Radius+1) + c.R + Radius }

// SquareOf maps a coordinate to its dense square, NoSquare if off-board.
func SquareOf(c Coord) Square {
	if !c.IsValid() {
		return NoSquare
	}
	return coordSquares[gridIndex(c)]
}

// IsValid reports membership in the 91-cell hexagon.
func IsValid(c Coord) bool { return c.IsValid() }

func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

// Coord panics on NoSquare; callers only hold squares from this package.
func (s Square) Coord() Coord { return squareCoords[s] }

func (s Square) String() string {
	if !s.Valid() {
		return "none"
	}
	return squareCoords[s].String()
}

// Step returns the neighbour of s along d, NoSquare if off-board.
func (s Square) Step(d Coord) Square {
	if !s.Valid() {
		return NoSquare
	}
	return SquareOf(squareCoords[s].Add(d))
}

// AllSquares lists every valid square in dense order.
func AllSquares() []Square {
	out := make([]Square, NumSquares)
	for i := range out {
		out[i] = Square(i)
	}
	return out
}
