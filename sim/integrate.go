package sim

import (
	"github.com/pthm-cable/flock/parallel"
	"github.com/pthm-cable/flock/particle"
)

// integrate advances pos[i] += vel[i]·dt in place, then wraps each axis
// toroidally: strictly past +sceneScale re-enters at -sceneScale and vice
// versa. Values exactly on the boundary are left alone. The wrap keeps every
// particle inside [-sceneScale, sceneScale]³, which cell labeling depends on.
func integrate(pool *parallel.Pool, pos, vel []particle.Vec3, dt, sceneScale float32) {
	pool.ForEach(len(pos), func(start, end int) {
		for i := start; i < end; i++ {
			p := pos[i].Add(vel[i].Scale(dt))
			p.X = wrap(p.X, sceneScale)
			p.Y = wrap(p.Y, sceneScale)
			p.Z = wrap(p.Z, sceneScale)
			pos[i] = p
		}
	})
}

func wrap(v, scale float32) float32 {
	if v < -scale {
		return scale
	}
	if v > scale {
		return -scale
	}
	return v
}
