package sim

import (
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/grid"
	"github.com/pthm-cable/flock/parallel"
	"github.com/pthm-cable/flock/particle"
	"github.com/pthm-cable/flock/telemetry"
)

// Simulation owns all buffers and orchestrates one step at a time. A step
// runs the pipeline label → reset ranges → sort → locate ranges →
// (coherent only: reshuffle) → evaluate → integrate → swap, with each
// stage a full barrier: no stage reads what the previous one is still
// writing. There is no partial-step resumption.
type Simulation struct {
	store *particle.Store
	rules RuleParams
	gp    grid.Params
	pool  *parallel.Pool

	sceneScale float32

	// Sorted index pair, rebuilt every step
	cellIDs []int32 // cell id per sorted position (key)
	slots   []int32 // original slot per sorted position (value)

	ranges *grid.Ranges

	// Gathered velocity input for the coherent strategy. The gathered
	// positions land in the store's spare position buffer, which the
	// position swap then commits.
	sortedVel []particle.Vec3

	perf *telemetry.PerfCollector
	step int
}

// New allocates a simulation for the given initial particle positions,
// sized from cfg's scene extent and interaction radii. Velocities start at
// zero. The returned context is ready for stepping.
func New(cfg *config.Config, initial []particle.Vec3) *Simulation {
	n := len(initial)
	rules := RuleParamsFromConfig(cfg)
	gp := grid.NewParams(cfg.Derived.SceneScale32, rules.MaxDistance())

	return &Simulation{
		store:      particle.NewStore(n, initial),
		rules:      rules,
		gp:         gp,
		pool:       parallel.NewPool(cfg.Physics.BatchSize),
		sceneScale: cfg.Derived.SceneScale32,
		cellIDs:    make([]int32, n),
		slots:      make([]int32, n),
		ranges:     grid.NewRanges(gp.CellCount),
		sortedVel:  make([]particle.Vec3, n),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}
}

// Count returns the number of particles.
func (s *Simulation) Count() int { return s.store.Count() }

// Step returns the number of completed steps.
func (s *Simulation) Step() int { return s.step }

// Grid returns the grid parameters the simulation was sized with.
func (s *Simulation) Grid() grid.Params { return s.gp }

// Perf returns the per-phase timing collector.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

// Snapshot returns the current committed position and velocity buffers.
// Read-only views, valid until the next step.
func (s *Simulation) Snapshot() (pos, vel []particle.Vec3) {
	return s.store.Snapshot()
}

// Close releases the worker pool. The buffers themselves are garbage
// collected once the Simulation is unreachable.
func (s *Simulation) Close() {
	s.pool.Close()
}

// StepBruteForce advances one step scanning all N−1 other particles per
// particle. The correctness baseline.
func (s *Simulation) StepBruteForce(dt float32) {
	s.perf.StartStep()

	s.perf.StartPhase(telemetry.PhaseEvaluate)
	evalBruteForce(s.pool, &s.rules, s.store.Positions(), s.store.Velocities(), s.store.SpareVelocities())

	s.perf.StartPhase(telemetry.PhaseIntegrate)
	integrate(s.pool, s.store.Positions(), s.store.SpareVelocities(), dt, s.sceneScale)

	s.store.SwapVelocities()
	s.perf.EndStep()
	s.step++
}

// StepScatteredGrid advances one step searching the ±1-cell window through
// the sorted index pair, reading neighbor data from the original, unsorted
// buffers.
func (s *Simulation) StepScatteredGrid(dt float32) {
	s.perf.StartStep()

	s.buildGrid()

	s.perf.StartPhase(telemetry.PhaseEvaluate)
	evalScatteredGrid(s.pool, &s.rules, s.gp, s.ranges, s.slots,
		s.store.Positions(), s.store.Velocities(), s.store.SpareVelocities())

	s.perf.StartPhase(telemetry.PhaseIntegrate)
	integrate(s.pool, s.store.Positions(), s.store.SpareVelocities(), dt, s.sceneScale)

	s.store.SwapVelocities()
	s.perf.EndStep()
	s.step++
}

// StepCoherentGrid advances one step over reshuffled, cell-sorted buffers.
// The reshuffle costs a full gather pass but removes the index indirection
// from the inner neighbor loop. Committing the step swaps in the reshuffled
// position buffer, so particle slot order changes across coherent steps;
// identity is positional only within a step.
func (s *Simulation) StepCoherentGrid(dt float32) {
	s.perf.StartStep()

	s.buildGrid()

	s.perf.StartPhase(telemetry.PhaseReshuffle)
	grid.Reshuffle(s.pool, s.store.SparePositions(), s.store.Positions(), s.slots)
	grid.Reshuffle(s.pool, s.sortedVel, s.store.Velocities(), s.slots)

	s.perf.StartPhase(telemetry.PhaseEvaluate)
	evalCoherentGrid(s.pool, &s.rules, s.gp, s.ranges,
		s.store.SparePositions(), s.sortedVel, s.store.SpareVelocities())

	s.perf.StartPhase(telemetry.PhaseIntegrate)
	integrate(s.pool, s.store.SparePositions(), s.store.SpareVelocities(), dt, s.sceneScale)

	s.store.SwapPositions()
	s.store.SwapVelocities()
	s.perf.EndStep()
	s.step++
}

// buildGrid runs the shared grid-maintenance stages: cell labeling, range
// reset, key sort, and boundary location.
func (s *Simulation) buildGrid() {
	s.perf.StartPhase(telemetry.PhaseLabelCells)
	grid.LabelCells(s.gp, s.pool, s.store.Positions(), s.cellIDs, s.slots)

	s.perf.StartPhase(telemetry.PhaseResetRanges)
	s.ranges.Reset(s.pool)

	s.perf.StartPhase(telemetry.PhaseSort)
	grid.SortByKey(s.cellIDs, s.slots)

	s.perf.StartPhase(telemetry.PhaseLocateRanges)
	s.ranges.Locate(s.pool, s.cellIDs)
}
