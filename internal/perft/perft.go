// Package main implements a perft (performance test) command that walks the
// move generation tree of strictly legal moves to a given depth and counts
// the visited leaf nodes, used to debug and benchmark chesscore's move
// generator against the well-known perft node counts at
// https://www.chessprogramming.org/Perft_Results. It is internal, since it
// is only used for development, not imported by anything.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/tmattsson/chesscore"
)

// result carries per-category node counts, printed when -verbose is used.
type result struct {
	nodes        int
	captures     int
	epCaptures   int
	castles      int
	promotions   int
	checks       int
	doubleChecks int
}

func perft(p chesscore.Position, depth int) int {
	var l chesscore.MoveList
	chesscore.GenLegalMoves(p, &l)

	if depth == 1 {
		return l.Count
	}

	nodes := 0
	for i := range l.Count {
		rm := p.DoMove(l.Moves[i])
		nodes += perft(p, depth-1)
		p.UndoMove(rm)
	}
	return nodes
}

// perftVerbose follows the same principle as perft, except it tallies move
// categories into r and, at the root, logs each root move's subtree count —
// useful for bisecting which root move a miscounting branch hides under.
func perftVerbose(p chesscore.Position, depth int, r *result, isRoot bool) int {
	var l chesscore.MoveList
	chesscore.GenLegalMoves(p, &l)

	if depth == 1 {
		return l.Count
	}

	c := p.ActiveColor
	nodes := 0
	for i := range l.Count {
		m := l.Moves[i]
		if p.GetPieceFromSquare(m.To()) != chesscore.PieceNone {
			r.captures++
		}

		rm := p.DoMove(m)

		cnt := chesscore.GenChecksCounter(p.Bitboards, chesscore.Opposite(c))
		if cnt > 0 {
			r.checks++
		}
		if cnt > 1 {
			r.doubleChecks++
		}

		sub := perftVerbose(p, depth-1, r, false)
		if isRoot {
			log.Printf("%s %d", chesscore.Move2UCI(m), sub)
		}
		nodes += sub

		switch m.Type() {
		case chesscore.MoveCastle:
			r.castles++
		case chesscore.MoveEnPassant:
			r.epCaptures++
		case chesscore.MovePromotion:
			r.promotions++
		}

		p.UndoMove(rm)
	}

	return nodes
}

func main() {
	fenStr := flag.String("fen", chesscore.InitialPositionFEN, "FEN of the root position")
	depth := flag.Int("depth", 1, "perft depth")
	verbose := flag.Bool("verbose", false, "print per-root-move subtree counts and category totals")
	cpuprofile := flag.String("cpuprofile", "", "file to write a CPU profile")

	flag.Parse()

	chesscore.InitAttackTables()

	p, err := chesscore.ParseFEN(*fenStr)
	if err != nil {
		log.Fatalf("parsing -fen: %v", err)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	r := &result{}
	start := time.Now()
	if *verbose {
		r.nodes = perftVerbose(p, *depth, r, true)
	} else {
		r.nodes = perft(p, *depth)
	}
	elapsed := time.Since(start)

	if *verbose {
		log.Printf("root position: %s", *fenStr)
		log.Printf(strings.TrimSpace(`
nodes=%d captures=%d ep=%d castles=%d promotions=%d checks=%d double_checks=%d
`),
			r.nodes, r.captures, r.epCaptures, r.castles, r.promotions, r.checks, r.doubleChecks)
	}
	log.Printf("nodes reached: %d", r.nodes)
	log.Printf("elapsed: %s", elapsed)
}
