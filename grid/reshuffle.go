package grid

import (
	"github.com/pthm-cable/flock/parallel"
	"github.com/pthm-cable/flock/particle"
)

// Reshuffle gathers particle data into cell-sorted order: dst[i] takes the
// data of the particle whose sorted position is i. A pure gather with no
// writes to src; the coherent strategy uses the result to turn indirected
// neighbor lookups into sequential memory access.
func Reshuffle(pool *parallel.Pool, dst, src []particle.Vec3, slots []int32) {
	pool.ForEach(len(slots), func(start, end int) {
		particle.Gather(dst[start:end], src, slots[start:end])
	})
}
