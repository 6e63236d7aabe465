package sim

import (
	"github.com/pthm-cable/flock/grid"
	"github.com/pthm-cable/flock/parallel"
	"github.com/pthm-cable/flock/particle"
)

// The three neighborhood evaluators below are interchangeable: given the
// same state and rule parameters they produce the same new velocities up to
// float32 summation order. Each writes exclusively to its own slot of out
// and reads only committed buffers, so units within a pass are independent.

// evalBruteForce scans every other particle for every particle. O(N²); the
// correctness baseline the grid strategies are tested against.
func evalBruteForce(pool *parallel.Pool, rules *RuleParams, pos, vel, out []particle.Vec3) {
	pool.ForEach(len(pos), func(start, end int) {
		for i := start; i < end; i++ {
			self := pos[i]
			var acc ruleAccum
			for j := range pos {
				if j == i {
					continue
				}
				acc.observe(self, pos[j], vel[j], rules)
			}
			out[i] = acc.finish(self, vel[i], rules)
		}
	})
}

// cellWindow clamps the ±1-cell neighborhood around c to the grid's axis
// bounds. The window is inclusive on both ends: a half-open upper bound
// would drop the +1 plane of cells and with it legitimate neighbors near
// cell boundaries.
func cellWindow(c, side int32) (lo, hi int32) {
	lo, hi = c-1, c+1
	if lo < 0 {
		lo = 0
	}
	if hi >= side {
		hi = side - 1
	}
	return lo, hi
}

// evalScatteredGrid searches the ±1-cell window through the sorted index
// pair: each candidate run is dereferenced through slots back into the
// original, unsorted buffers.
func evalScatteredGrid(pool *parallel.Pool, rules *RuleParams, gp grid.Params,
	ranges *grid.Ranges, slots []int32, pos, vel, out []particle.Vec3) {

	pool.ForEach(len(pos), func(start, end int) {
		for i := start; i < end; i++ {
			self := pos[i]
			cx, cy, cz := gp.CellOf(self)
			x0, x1 := cellWindow(cx, gp.SideCount)
			y0, y1 := cellWindow(cy, gp.SideCount)
			z0, z1 := cellWindow(cz, gp.SideCount)

			var acc ruleAccum
			// x innermost: cell ids along x are contiguous, so the range
			// table reads stay cache-friendly.
			for z := z0; z <= z1; z++ {
				for y := y0; y <= y1; y++ {
					for x := x0; x <= x1; x++ {
						c := gp.CellID(x, y, z)
						first := ranges.Start[c]
						if first == grid.EmptyCell {
							continue
						}
						for p := first; p <= ranges.End[c]; p++ {
							j := slots[p]
							if int(j) == i {
								continue
							}
							acc.observe(self, pos[j], vel[j], rules)
						}
					}
				}
			}
			out[i] = acc.finish(self, vel[i], rules)
		}
	})
}

// evalCoherentGrid is the same window search over reshuffled buffers: the
// range table indexes straight into cell-sorted position/velocity arrays,
// with no slots dereference. Inputs, outputs, and the particle index i are
// all in sorted order here.
func evalCoherentGrid(pool *parallel.Pool, rules *RuleParams, gp grid.Params,
	ranges *grid.Ranges, sortedPos, sortedVel, out []particle.Vec3) {

	pool.ForEach(len(sortedPos), func(start, end int) {
		for i := start; i < end; i++ {
			self := sortedPos[i]
			cx, cy, cz := gp.CellOf(self)
			x0, x1 := cellWindow(cx, gp.SideCount)
			y0, y1 := cellWindow(cy, gp.SideCount)
			z0, z1 := cellWindow(cz, gp.SideCount)

			var acc ruleAccum
			for z := z0; z <= z1; z++ {
				for y := y0; y <= y1; y++ {
					for x := x0; x <= x1; x++ {
						c := gp.CellID(x, y, z)
						first := ranges.Start[c]
						if first == grid.EmptyCell {
							continue
						}
						for p := first; p <= ranges.End[c]; p++ {
							if int(p) == i {
								continue
							}
							acc.observe(self, sortedPos[p], sortedVel[p], rules)
						}
					}
				}
			}
			out[i] = acc.finish(self, sortedVel[i], rules)
		}
	})
}
