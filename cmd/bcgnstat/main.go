/*
bcgnstat opens a BCGN archive and prints a one-shot summary: game count,
total plies, and a result histogram. It exists to give the bcgn package a
runnable entry point the way the teacher repo's own root main.go gives its
bitboard-printing routine one — it is not the interactive shell named as an
external collaborator in spec.md §1.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tmattsson/chesscore"
	"github.com/tmattsson/chesscore/bcgn"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.bcgn>\n", os.Args[0])
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "bcgnstat:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := bcgn.NewReader(f)
	if err != nil {
		return err
	}
	defer r.Close()

	var games, plies int
	var results [4]int
	for {
		g, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		games++
		plies += g.NumPlies()
		results[g.Result()]++
	}

	fmt.Printf("games:       %d\n", games)
	fmt.Printf("plies:       %d\n", plies)
	fmt.Printf("white wins:  %d\n", results[chesscore.ResultWhiteWin])
	fmt.Printf("black wins:  %d\n", results[chesscore.ResultBlackWin])
	fmt.Printf("draws:       %d\n", results[chesscore.ResultDraw])
	fmt.Printf("unknown:     %d\n", results[chesscore.ResultUnknown])
	return nil
}
