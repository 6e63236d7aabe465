package sim

import (
	"math/rand"

	"github.com/pthm-cable/flock/particle"
)

// RandomField generates n starting positions spread uniformly over the
// central half of the domain, leaving room to drift before the first wrap.
func RandomField(rng *rand.Rand, n int, sceneScale float32) []particle.Vec3 {
	pos := make([]particle.Vec3, n)
	for i := range pos {
		pos[i] = particle.Vec3{
			X: (rng.Float32() - 0.5) * sceneScale,
			Y: (rng.Float32() - 0.5) * sceneScale,
			Z: (rng.Float32() - 0.5) * sceneScale,
		}
	}
	return pos
}
