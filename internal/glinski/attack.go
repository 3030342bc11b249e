package glinski

// IsAttackedBy reports whether any piece of color c could capture on sq.
// The generators run in reverse from sq, as if a piece of the other color
// stood there, with no self-check filtering; whatever they reach that holds
// the matching c piece is an attacker. The occupant of sq is irrelevant.
func (b *Board) IsAttackedBy(c Color, sq Square) bool {
	if !sq.Valid() || (c != White && c != Black) {
		return false
	}
	defender := c.Other()

	var reach SquareSet
	genPawnAttacks(sq, defender, &reach)
	if b.anyOn(reach, MakePiece(c, Pawn)) {
		return true
	}

	reach = SquareSet{}
	genKnightMoves(b, sq, defender, &reach)
	if b.anyOn(reach, MakePiece(c, Knight)) {
		return true
	}

	reach = SquareSet{}
	genBishopMoves(b, sq, defender, &reach)
	if b.anyOn(reach, MakePiece(c, Bishop), MakePiece(c, Queen)) {
		return true
	}

	reach = SquareSet{}
	genRookMoves(b, sq, defender, &reach)
	if b.anyOn(reach, MakePiece(c, Rook), MakePiece(c, Queen)) {
		return true
	}

	reach = SquareSet{}
	genKingMoves(b, sq, defender, &reach)
	return b.anyOn(reach, MakePiece(c, King))
}

func (b *Board) anyOn(set SquareSet, pieces ...Piece) bool {
	for _, sq := range set.Squares() {
		pc := b.squares[sq]
		for _, want := range pieces {
			if pc == want {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether c's king is attacked.
func (b *Board) IsInCheck(c Color) bool {
	k := b.KingSquare(c)
	if k == NoSquare {
		return false
	}
	return b.IsAttackedBy(c.Other(), k)
}

// HasLegalMoves reports whether c has at least one legal move. The king is
// tried first since its mobility usually decides.
func (b *Board) HasLegalMoves(c Color) bool {
	k := b.KingSquare(c)
	if k != NoSquare && !b.LegalMoves(k).IsEmpty() {
		return true
	}
	for sq := Square(0); sq < NumSquares; sq++ {
		if sq == k || !b.squares[sq].Is(c) {
			continue
		}
		if !b.LegalMoves(sq).IsEmpty() {
			return true
		}
	}
	return false
}

// IsCheckmate: in check with no legal move.
func (b *Board) IsCheckmate(c Color) bool {
	return b.IsInCheck(c) && !b.HasLegalMoves(c)
}

// IsStalemate: not in check but no legal move. Never a win.
func (b *Board) IsStalemate(c Color) bool {
	return !b.IsInCheck(c) && !b.HasLegalMoves(c)
}
