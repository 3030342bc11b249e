package glinski

import (
	"encoding/json"
	"math/bits"
)

// SquareSet is a 91-bit set of squares. It is a value type: copies are
// independent, so history records can hold snapshots directly.
type SquareSet struct {
	lo, hi uint64
}

func SquareSetOf(sqs ...Square) SquareSet {
	var s SquareSet
	for _, sq := range sqs {
		s.Add(sq)
	}
	return s
}

func (s *SquareSet) Add(sq Square) {
	if !sq.Valid() {
		return
	}
	if sq < 64 {
		s.lo |= 1 << uint(sq)
	} else {
		s.hi |= 1 << uint(sq-64)
	}
}

func (s *SquareSet) Remove(sq Square) {
	if !sq.Valid() {
		return
	}
	if sq < 64 {
		s.lo &^= 1 << uint(sq)
	} else {
		s.hi &^= 1 << uint(sq-64)
	}
}

func (s SquareSet) Has(sq Square) bool {
	if !sq.Valid() {
		return false
	}
	if sq < 64 {
		return s.lo&(1<<uint(sq)) != 0
	}
	return s.hi&(1<<uint(sq-64)) != 0
}

func (s SquareSet) Len() int      { return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi) }
func (s SquareSet) IsEmpty() bool { return s.lo == 0 && s.hi == 0 }

func (s SquareSet) Union(o SquareSet) SquareSet {
	return SquareSet{s.lo | o.lo, s.hi | o.hi}
}

// Squares lists the members in ascending dense order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for w, word := range [2]uint64{s.lo, s.hi} {
		for word != 0 {
			i := bits.TrailingZeros64(word)
			out = append(out, Square(w*64+i))
			word &= word - 1
		}
	}
	return out
}

// MarshalJSON encodes the set as an ascending list of dense squares.
func (s SquareSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Squares())
}

func (s *SquareSet) UnmarshalJSON(data []byte) error {
	var sqs []Square
	if err := json.Unmarshal(data, &sqs); err != nil {
		return err
	}
	*s = SquareSet{}
	for _, sq := range sqs {
		if !sq.Valid() {
			return ErrInvalidSquare
		}
		s.Add(sq)
	}
	return nil
}
