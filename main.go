package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	strategy := flag.String("strategy", "coherent", "Neighbor search strategy: brute, scattered, or coherent")
	steps := flag.Int("steps", 1000, "Number of simulation steps to run")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for state snapshot files")
	snapshotEvery := flag.Int("snapshot-every", 0, "Write a state snapshot every N steps (0 = disabled)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	field := sim.RandomField(rng, cfg.World.ParticleCount, cfg.Derived.SceneScale32)
	s := sim.New(cfg, field)
	defer s.Close()

	var stepFn func(dt float32)
	switch *strategy {
	case "brute":
		stepFn = s.StepBruteForce
	case "scattered":
		stepFn = s.StepScatteredGrid
	case "coherent":
		stepFn = s.StepCoherentGrid
	default:
		slog.Error("unknown strategy", "strategy", *strategy)
		os.Exit(1)
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"strategy", *strategy,
		"particles", cfg.World.ParticleCount,
		"steps", *steps,
		"seed", rngSeed,
		"grid_side", s.Grid().SideCount,
		"grid_cells", s.Grid().CellCount,
	)

	dt := cfg.Derived.DT32
	window := cfg.Telemetry.StatsWindow

	for i := 0; i < *steps; i++ {
		stepFn(dt)
		done := s.Step()

		if window > 0 && done%window == 0 {
			pos, vel := s.Snapshot()
			ws := telemetry.ComputeWindowStats(done, float64(done)*cfg.Physics.DT, pos, vel)
			if *logStats {
				ws.LogStats()
				s.Perf().Stats().LogStats()
			}
			if err := om.WriteTelemetry(ws); err != nil {
				slog.Error("telemetry write failed", "error", err)
			}
			if err := om.WritePerf(s.Perf().Stats(), done); err != nil {
				slog.Error("perf write failed", "error", err)
			}
		}

		if *snapshotEvery > 0 && *snapshotDir != "" && done%*snapshotEvery == 0 {
			pos, vel := s.Snapshot()
			path, err := telemetry.SaveSnapshot(&telemetry.Snapshot{
				Step:       done,
				Positions:  pos,
				Velocities: vel,
			}, *snapshotDir)
			if err != nil {
				slog.Error("snapshot write failed", "error", err)
			} else {
				slog.Info("snapshot saved", "path", path, "step", done)
			}
		}
	}

	slog.Info("simulation complete", "steps", s.Step())
}
