package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/space"
	"github.com/plus3/arcade/tanks"
)

const frameTime = 1.0 / 60

func main() {
	game := flag.String("game", "space", "The game to benchmark: space or tanks.")
	duration := flag.Duration("duration", 10*time.Second, "The total wall-clock duration to run for.")
	seed := flag.Int64("seed", 1, "The world seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	drive, stats, err := setupGame(*game, *seed)
	if err != nil {
		log.Fatalf("Failed to set up game: %v", err)
	}

	log.Printf("Benchmarking %s for %s (seed %d)...\n", *game, *duration, *seed)

	report := &Report{
		Game:           *game,
		Duration:       *duration,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var frame int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			drive(frame)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			frame++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = frame
	report.UpdateTime.Finalize()
	report.Systems = stats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n--- Arcade Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// setupGame returns a per-frame driver feeding synthetic input, and access
// to the scheduler statistics.
func setupGame(game string, seed int64) (func(frame int64), func() *ecs.SchedulerStats, error) {
	switch game {
	case "space":
		g, err := space.New(space.Config{Seed: seed})
		if err != nil {
			return nil, nil, err
		}
		drive := func(frame int64) {
			in := g.Input()
			// Restart immediately whenever a session ends, and weave the
			// ship around so upgrades and enemies get picked up and hit.
			in.StartPressed = g.Session().State != space.StateRunning
			in.CursorActive = true
			t := float64(frame) * frameTime
			in.Cursor = geom.V(
				math.Sin(t*0.7)*space.StageHalfWidth,
				3+2*math.Sin(t*0.3),
			)
			g.Step(frameTime)
		}
		return drive, g.Stats, nil

	case "tanks":
		g := tanks.New(tanks.Config{Seed: seed, AIFireInterval: 1})
		drive := func(frame int64) {
			in := g.Input()
			in.Forward = 1
			in.Turn = math.Sin(float64(frame) * frameTime * 0.5)
			in.Fire = true
			g.Step(frameTime)
		}
		return drive, g.Stats, nil
	}

	return nil, nil, fmt.Errorf("unknown game %q", game)
}
