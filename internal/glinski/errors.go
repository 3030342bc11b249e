package glinski

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrIllegalMove   = errors.New("illegal move")
	ErrWrongTurn     = errors.New("not this side's turn")
	ErrGameOver      = errors.New("game over")

	ErrNothingSelected  = errors.New("no piece selected")
	ErrPromotionPending = errors.New("promotion pending")
	// ErrPromotionMisuse: promote or cancel without a pending promotion, or
	// promote on a square that no longer holds the pawn.
	ErrPromotionMisuse  = errors.New("no promotion to resolve")
	ErrInvalidPromotion = errors.New("invalid promotion piece")

	ErrInvalidEncoding = errors.New("invalid board encoding")
)

// MoveError carries the squares of a rejected operation.
type MoveError struct {
	Op       string
	From, To Square
	Err      error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %s->%s: %v", e.Op, e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }
