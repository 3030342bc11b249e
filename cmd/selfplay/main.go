package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"glinski/internal/glinski"
)

var promotionKinds = []glinski.Kind{glinski.Knight, glinski.Bishop, glinski.Rook, glinski.Queen}

// check runs the cheap consistency probes on the current position.
func check(g *glinski.Game) error {
	enc := g.Encode()
	b, err := glinski.DecodeBoard(enc)
	if err != nil {
		return fmt.Errorf("decode %q: %w", enc, err)
	}
	if b.Encode() != enc {
		return fmt.Errorf("re-encode mismatch: %q vs %q", b.Encode(), enc)
	}
	if b.Hash() != g.Hash() {
		return fmt.Errorf("hash mismatch after decode of %q", enc)
	}
	board := g.Board()
	for _, c := range []glinski.Color{glinski.White, glinski.Black} {
		if board.PieceAt(board.KingSquare(c)) != glinski.MakePiece(c, glinski.King) {
			return fmt.Errorf("%s king cache stale in %q", c, enc)
		}
	}
	if !g.CanStepBackward() {
		return nil
	}
	h := g.Hash()
	if _, err := g.StepBackward(); err != nil {
		return err
	}
	if _, err := g.StepForward(); err != nil {
		return err
	}
	if g.Hash() != h {
		return fmt.Errorf("undo/redo changed the position %q", enc)
	}
	return nil
}

func playOne(rng *rand.Rand, plies int, verify bool) (*glinski.Game, error) {
	g := glinski.NewGame()
	for p := 0; p < plies && !g.Over(); p++ {
		board := g.Board()
		moves := board.AllLegalMoves(g.CurrentTurn())
		mv := moves[rng.Intn(len(moves))]
		out, err := g.Play(mv.From, mv.To)
		if err != nil {
			return g, fmt.Errorf("ply %d %s->%s: %w", p, mv.From, mv.To, err)
		}
		if out.PromotionPending {
			if _, err := g.ResolvePromotion(promotionKinds[rng.Intn(len(promotionKinds))]); err != nil {
				return g, err
			}
		}
		if verify {
			if err := check(g); err != nil {
				return g, fmt.Errorf("ply %d: %w", p, err)
			}
		}
	}
	return g, nil
}

func main() {
	games := flag.Int("games", 100, "number of games to play")
	plies := flag.Int("plies", 300, "max plies per game")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	verify := flag.Bool("verify", true, "check encoding, hashing and history after every ply")
	dump := flag.String("json", "", "write the move records of every game to this file")
	pprofAddr := flag.String("pprof", "", "serve pprof on this address, e.g. localhost:6060")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Println("pprof listening on", *pprofAddr)
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				log.Printf("pprof failed: %v", err)
			}
		}()
	}

	rng := rand.New(rand.NewSource(*seed))
	log.Printf("seed %d", *seed)

	var results [3]int
	var records [][]glinski.Record
	start := time.Now()
	totalPlies := 0
	for i := 0; i < *games; i++ {
		g, err := playOne(rng, *plies, *verify)
		if err != nil {
			log.Fatalf("game %d: %v", i+1, err)
		}
		results[g.Status().Status]++
		totalPlies += g.HistoryLen()
		records = append(records, g.Records())
	}
	duration := time.Since(start)

	fmt.Printf("games: %d, plies: %d, checkmate: %d, stalemate: %d, unfinished: %d, time: %v, plies/s: %d\n",
		*games, totalPlies, results[glinski.Checkmate], results[glinski.Stalemate], results[glinski.Ongoing],
		duration, int64(float64(totalPlies)/duration.Seconds()))

	if *dump != "" {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(*dump, data, 0o644); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *dump)
	}
}
