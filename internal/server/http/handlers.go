package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"glinski/internal/glinski"
	"glinski/internal/server/game"
)

func hashString(h uint64) string { return fmt.Sprintf("%016x", h) }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

var errBadJSON = errors.New("bad json")

// errorStatus maps core and session errors onto HTTP.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errBadJSON):
		return http.StatusBadRequest, "bad_json"
	case errors.Is(err, glinski.ErrInvalidSquare):
		return http.StatusBadRequest, "invalid_square"
	case errors.Is(err, glinski.ErrInvalidEncoding):
		return http.StatusBadRequest, "invalid_position"
	case errors.Is(err, glinski.ErrInvalidPromotion):
		return http.StatusBadRequest, "invalid_promotion"
	case errors.Is(err, glinski.ErrIllegalMove):
		return http.StatusUnprocessableEntity, "illegal_move"
	case errors.Is(err, glinski.ErrWrongTurn):
		return http.StatusUnprocessableEntity, "wrong_turn"
	case errors.Is(err, glinski.ErrNothingSelected):
		return http.StatusConflict, "nothing_selected"
	case errors.Is(err, glinski.ErrPromotionPending):
		return http.StatusConflict, "promotion_pending"
	case errors.Is(err, glinski.ErrPromotionMisuse):
		return http.StatusConflict, "no_promotion"
	case errors.Is(err, glinski.ErrGameOver):
		return http.StatusConflict, "game_over"
	}
	return http.StatusInternalServerError, "internal"
}

func writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("api error: %v", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	return nil
}

func squareOf(c glinski.Coord) (glinski.Square, error) {
	sq := glinski.SquareOf(c)
	if sq == glinski.NoSquare {
		return glinski.NoSquare, fmt.Errorf("%w: %s", glinski.ErrInvalidSquare, c)
	}
	return sq, nil
}

func (s *Server) session(r *http.Request) (*game.Session, error) {
	return s.games.Get(mux.Vars(r)["id"])
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	out := []GameSummary{}
	for _, sess := range s.games.List() {
		out = append(out, GameSummary{
			GameID:    sess.ID,
			CreatedAt: sess.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt: sess.UpdatedAt().UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	// an empty body means the standard setup
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, fmt.Errorf("%w: %v", errBadJSON, err))
		return
	}
	var board *glinski.Board
	if req.Position != "" {
		b, err := glinski.DecodeBoard(req.Position)
		if err != nil {
			writeError(w, err)
			return
		}
		board = b
	}
	sess := s.games.NewGame(board)
	var resp StateResponse
	sess.View(func(g *glinski.Game) { resp = stateOf(sess, g) })
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var resp StateResponse
	sess.View(func(g *glinski.Game) { resp = stateOf(sess, g) })
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.games.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	s.hub.CloseGame(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req SquareRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	from, err := squareOf(req.Square)
	if err != nil {
		writeError(w, err)
		return
	}
	var dests []glinski.Square
	_ = sess.Do(func(g *glinski.Game) error {
		dests = g.SelectPiece(from)
		return nil
	})
	writeJSON(w, http.StatusOK, SelectResponse{From: req.Square, Destinations: coordsOf(dests)})
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req SquareRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	to, err := squareOf(req.Square)
	if err != nil {
		writeError(w, err)
		return
	}
	var resp MoveResponse
	err = sess.Do(func(g *glinski.Game) error {
		out, err := g.ReleaseOnto(to)
		if err != nil {
			return err
		}
		resp = MoveResponse{Outcome: outcomeOf(out), State: stateOf(sess, g)}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req PromotionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	kind, ok := glinski.ParseKind(req.Kind)
	if !ok {
		writeError(w, fmt.Errorf("%w: %q", glinski.ErrInvalidPromotion, req.Kind))
		return
	}
	var resp MoveResponse
	err = sess.Do(func(g *glinski.Game) error {
		out, err := g.ResolvePromotion(kind)
		if err != nil {
			return err
		}
		resp = MoveResponse{Outcome: outcomeOf(out), State: stateOf(sess, g)}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelPromotion(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var resp StateResponse
	err = sess.Do(func(g *glinski.Game) error {
		if err := g.CancelPromotion(); err != nil {
			return err
		}
		resp = stateOf(sess, g)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStep(forward bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.session(r)
		if err != nil {
			writeError(w, err)
			return
		}
		var resp StepResponse
		err = sess.Do(func(g *glinski.Game) error {
			var moved bool
			var err error
			if forward {
				moved, err = g.StepForward()
			} else {
				moved, err = g.StepBackward()
			}
			if err != nil {
				return err
			}
			resp = StepResponse{Moved: moved, State: stateOf(sess, g)}
			return nil
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var resp HistoryResponse
	sess.View(func(g *glinski.Game) {
		resp.Cursor = g.Cursor()
		resp.Records = []RecordDTO{}
		for _, rec := range g.Records() {
			resp.Records = append(resp.Records, recordOf(rec))
		}
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.games.Get(id); err != nil {
		writeError(w, err)
		return
	}
	s.hub.Serve(w, r, id)
}
