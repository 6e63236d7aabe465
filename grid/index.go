package grid

import (
	"github.com/pthm-cable/flock/parallel"
	"github.com/pthm-cable/flock/particle"
)

// LabelCells writes, for each particle slot i, its cell id into cellIDs[i]
// and the identity index i into slots[i], establishing the unsorted
// (key, value) pairing consumed by SortByKey. No bounds clamping is done;
// the integrator's wrap invariant guarantees positions lie in the grid.
func LabelCells(p Params, pool *parallel.Pool, pos []particle.Vec3, cellIDs, slots []int32) {
	pool.ForEach(len(pos), func(start, end int) {
		for i := start; i < end; i++ {
			x, y, z := p.CellOf(pos[i])
			cellIDs[i] = p.CellID(x, y, z)
			slots[i] = int32(i)
		}
	})
}
