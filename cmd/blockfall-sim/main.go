package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/blocks"
	"github.com/plus3/blockfall/catalog"
)

func main() {
	mode := flag.String("mode", "both", "Game mode to simulate: classic, puzzle or both.")
	games := flag.Int("games", 100, "The number of games to play per mode.")
	seed := flag.Uint64("seed", 0, "Base seed for reproducible runs; 0 seeds from entropy.")
	maxSteps := flag.Int("max-steps", 100000, "Step cap per game before it is abandoned.")
	piecesPath := flag.String("pieces", "", "Optional .xlsx piece catalog; empty uses the built-in set.")
	flag.Parse()

	if *mode != "classic" && *mode != "puzzle" && *mode != "both" {
		log.Fatalf("Unknown mode %q, want classic, puzzle or both.", *mode)
	}

	pieces := blocks.StandardSet()
	if *piecesPath != "" {
		loaded, err := catalog.Load(*piecesPath)
		if err != nil {
			log.Fatalf("Failed to load piece catalog: %v", err)
		}
		pieces = loaded
	}

	log.Printf("Starting simulation: mode=%s games=%d pieces=%d\n", *mode, *games, len(pieces))

	report := &Report{
		Mode:     *mode,
		Games:    *games,
		Pieces:   len(pieces),
		MaxSteps: *maxSteps,
		Seed:     *seed,
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	policy := newPolicy(*seed)

	if *mode == "classic" || *mode == "both" {
		for i := 0; i < *games; i++ {
			report.Classic.Add(playClassic(pieces, gameSeed(*seed, i), *maxSteps, policy))
		}
		report.Classic.Finalize()
	}
	if *mode == "puzzle" || *mode == "both" {
		for i := 0; i < *games; i++ {
			report.Puzzle.Add(playPuzzle(pieces, gameSeed(*seed, i), *maxSteps, policy))
		}
		report.Puzzle.Finalize()
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// gameSeed derives a distinct engine seed per game. A zero base keeps
// the engines on entropy seeding.
func gameSeed(base uint64, game int) *uint64 {
	if base == 0 {
		return nil
	}
	s := base + uint64(game)*0x9E3779B97F4A7C15
	return &s
}

// newPolicy returns the RNG driving the random input policy. It is
// separate from the engines' selectors so policy changes never perturb
// piece sequences.
func newPolicy(base uint64) *rand.Rand {
	if base == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(base, ^base))
}

// playClassic drives one classic game with random inputs until game
// over or the step cap.
func playClassic(pieces []blocks.Piece, seed *uint64, maxSteps int, policy *rand.Rand) GameResult {
	g, err := blocks.NewGame(blocks.Config{Pieces: pieces, Seed: seed})
	if err != nil {
		log.Fatalf("Failed to create classic game: %v", err)
	}

	steps := 0
	for !g.GameOver() && steps < maxSteps {
		switch policy.IntN(6) {
		case 0:
			g.MoveLeft()
		case 1:
			g.MoveRight()
		case 2:
			g.Rotate(policy.IntN(2) == 0)
		case 3:
			g.SoftDrop()
		case 4:
			g.HardDrop()
		case 5:
			g.Tick()
		}
		steps++
	}

	return GameResult{
		Score:     g.Score(),
		Lines:     g.LinesCleared(),
		Steps:     steps,
		Completed: g.GameOver(),
	}
}

// playPuzzle drives one puzzle game with random inputs. Placements are
// biased toward the ghost anchor so games make progress instead of
// hovering forever.
func playPuzzle(pieces []blocks.Piece, seed *uint64, maxSteps int, policy *rand.Rand) GameResult {
	g, err := blocks.NewPuzzleGame(blocks.PuzzleConfig{Pieces: pieces, Seed: seed})
	if err != nil {
		log.Fatalf("Failed to create puzzle game: %v", err)
	}

	steps := 0
	for !g.GameOver() && steps < maxSteps {
		switch policy.IntN(8) {
		case 0:
			g.MoveLeft()
		case 1:
			g.MoveRight()
		case 2:
			g.MoveUp()
		case 3:
			g.MoveDown()
		case 4:
			g.Rotate(policy.IntN(2) == 0)
		case 5:
			g.SelectNextPiece()
		default:
			if ghost, ok := g.GhostAnchor(); ok {
				for at := g.Snapshot().ActiveAt; at.Row < ghost.Row; at.Row++ {
					g.MoveDown()
				}
			}
			g.PlacePiece()
		}
		steps++
	}

	return GameResult{
		Score:     g.Score(),
		Lines:     g.LinesCleared(),
		Steps:     steps,
		Placed:    g.PiecesPlaced(),
		Rounds:    g.Round(),
		Completed: g.GameOver(),
	}
}
