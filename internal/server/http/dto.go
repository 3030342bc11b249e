package httpserver

import (
	"glinski/internal/glinski"
	"glinski/internal/server/game"
)

// Squares travel as axial {q, r} pairs; pieces and colors as lowercase names.

type PieceDTO struct {
	At    glinski.Coord `json:"at"`
	Color string        `json:"color"`
	Kind  string        `json:"kind"`
}

type NewGameRequest struct {
	// Optional start position in the board encoding; empty means the
	// standard setup.
	Position string `json:"position,omitempty"`
}

type StateResponse struct {
	GameID     string         `json:"game_id"`
	Position   string         `json:"position"`
	Hash       string         `json:"hash"`
	ToMove     string         `json:"to_move"`
	Status     string         `json:"status"`
	InCheck    string         `json:"in_check,omitempty"`
	Winner     string         `json:"winner,omitempty"`
	Pending    *glinski.Coord `json:"pending_promotion,omitempty"`
	Selected   *glinski.Coord `json:"selected,omitempty"`
	Pieces     []PieceDTO     `json:"pieces"`
	Cursor     int            `json:"cursor"`
	HistoryLen int            `json:"history_len"`
	CanBack    bool           `json:"can_step_backward"`
	CanForward bool           `json:"can_step_forward"`
}

type SquareRequest struct {
	Square glinski.Coord `json:"square"`
}

type SelectResponse struct {
	From         glinski.Coord   `json:"from"`
	Destinations []glinski.Coord `json:"destinations"`
}

type OutcomeDTO struct {
	Captured         bool           `json:"captured"`
	CapturedAt       *glinski.Coord `json:"captured_at,omitempty"`
	CapturedPiece    string         `json:"captured_piece,omitempty"`
	PromotionPending bool           `json:"promotion_pending"`
	InCheck          string         `json:"in_check,omitempty"`
	Status           string         `json:"status"`
	Winner           string         `json:"winner,omitempty"`
}

type MoveResponse struct {
	Outcome OutcomeDTO    `json:"outcome"`
	State   StateResponse `json:"state"`
}

type PromotionRequest struct {
	Kind string `json:"kind"`
}

type StepResponse struct {
	Moved bool          `json:"moved"`
	State StateResponse `json:"state"`
}

type RecordDTO struct {
	From            glinski.Coord   `json:"from"`
	To              glinski.Coord   `json:"to"`
	Moved           string          `json:"moved"`
	Color           string          `json:"color"`
	CapturedAt      *glinski.Coord  `json:"captured_at,omitempty"`
	Captured        string          `json:"captured,omitempty"`
	EnPassantBefore []glinski.Coord `json:"en_passant_before"`
	EnPassantAfter  []glinski.Coord `json:"en_passant_after"`
	Promotion       string          `json:"promotion,omitempty"`
}

type HistoryResponse struct {
	Cursor  int         `json:"cursor"`
	Records []RecordDTO `json:"records"`
}

type GameSummary struct {
	GameID    string `json:"game_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func colorName(c glinski.Color) string {
	if c == glinski.NoColor {
		return ""
	}
	return c.String()
}

func coordPtr(sq glinski.Square) *glinski.Coord {
	if !sq.Valid() {
		return nil
	}
	c := sq.Coord()
	return &c
}

func coordsOf(sqs []glinski.Square) []glinski.Coord {
	out := make([]glinski.Coord, len(sqs))
	for i, sq := range sqs {
		out[i] = sq.Coord()
	}
	return out
}

func stateOf(s *game.Session, g *glinski.Game) StateResponse {
	st := g.Status()
	resp := StateResponse{
		GameID:     s.ID,
		Position:   g.Encode(),
		Hash:       hashString(g.Hash()),
		ToMove:     g.CurrentTurn().String(),
		Status:     st.Status.String(),
		InCheck:    colorName(st.InCheck),
		Winner:     colorName(g.Winner()),
		Selected:   coordPtr(g.Selected()),
		Cursor:     g.Cursor(),
		HistoryLen: g.HistoryLen(),
		CanBack:    g.CanStepBackward(),
		CanForward: g.CanStepForward(),
	}
	if sq, _, ok := g.PendingPromotion(); ok {
		resp.Pending = coordPtr(sq)
	}
	board := g.Board()
	for _, sq := range glinski.AllSquares() {
		pc := board.PieceAt(sq)
		if pc == glinski.Empty {
			continue
		}
		resp.Pieces = append(resp.Pieces, PieceDTO{At: sq.Coord(), Color: pc.Color().String(), Kind: pc.Kind().String()})
	}
	return resp
}

func outcomeOf(out glinski.Outcome) OutcomeDTO {
	dto := OutcomeDTO{
		Captured:         out.Captured,
		PromotionPending: out.PromotionPending,
		InCheck:          colorName(out.InCheck),
		Status:           out.Status.String(),
		Winner:           colorName(out.Winner),
	}
	if out.Captured {
		dto.CapturedAt = coordPtr(out.CapturedAt)
		dto.CapturedPiece = out.CapturedPiece.Kind().String()
	}
	return dto
}

func recordOf(r glinski.Record) RecordDTO {
	dto := RecordDTO{
		From:            r.From.Coord(),
		To:              r.To.Coord(),
		Moved:           r.Moved.Kind().String(),
		Color:           r.Moved.Color().String(),
		EnPassantBefore: coordsOf(r.EnPassantBefore.Squares()),
		EnPassantAfter:  coordsOf(r.EnPassantAfter.Squares()),
	}
	if r.Captured != glinski.Empty {
		dto.CapturedAt = coordPtr(r.CapturedAt)
		dto.Captured = r.Captured.Kind().String()
	}
	if r.Promotion != glinski.NoKind {
		dto.Promotion = r.Promotion.String()
	}
	return dto
}
