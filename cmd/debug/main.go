package main

import (
	"flag"
	"fmt"
	"log"

	"glinski/internal/glinski"
)

func main() {
	position := flag.String("position", "", "board encoding to inspect (default: initial setup)")
	flag.Parse()

	b := glinski.NewInitialBoard()
	if *position != "" {
		var err error
		if b, err = glinski.DecodeBoard(*position); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println("Position:", b.Encode())
	fmt.Printf("Hash: %016x\n", b.Hash())
	fmt.Println("Status:", b.Status().Status)
	for _, c := range []glinski.Color{glinski.White, glinski.Black} {
		fmt.Printf("%s legal moves: %d (in check: %v)\n", c, len(b.AllLegalMoves(c)), b.IsInCheck(c))
	}
}
