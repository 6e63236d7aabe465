package particle

// Store owns the particle state buffers. Positions and velocities are each
// held as a live/spare pair: readers of the current step only ever see the
// live buffer, the in-flight step writes the spare, and a swap commits the
// step. The spare position buffer doubles as the destination for the
// coherent strategy's reshuffle pass.
type Store struct {
	count int

	pos      []Vec3
	posSpare []Vec3
	vel      []Vec3
	velSpare []Vec3
}

// NewStore allocates a store for n particles with the given initial
// positions. Velocities start at zero. initial must hold n elements.
func NewStore(n int, initial []Vec3) *Store {
	s := &Store{
		count:    n,
		pos:      make([]Vec3, n),
		posSpare: make([]Vec3, n),
		vel:      make([]Vec3, n),
		velSpare: make([]Vec3, n),
	}
	copy(s.pos, initial)
	return s
}

// Count returns the number of particles.
func (s *Store) Count() int { return s.count }

// Positions returns the live position buffer. Callers must treat it as
// read-only; the in-flight step writes only the spare buffer.
func (s *Store) Positions() []Vec3 { return s.pos }

// Velocities returns the live velocity buffer. Read-only for callers.
func (s *Store) Velocities() []Vec3 { return s.vel }

// SparePositions returns the scratch position buffer for the in-flight step.
func (s *Store) SparePositions() []Vec3 { return s.posSpare }

// SpareVelocities returns the scratch velocity buffer for the in-flight step.
func (s *Store) SpareVelocities() []Vec3 { return s.velSpare }

// SwapVelocities commits the spare velocity buffer as live.
func (s *Store) SwapVelocities() {
	s.vel, s.velSpare = s.velSpare, s.vel
}

// SwapPositions commits the spare position buffer as live. Used by the
// coherent strategy, where the reshuffled and integrated positions replace
// the unsorted ones wholesale.
func (s *Store) SwapPositions() {
	s.pos, s.posSpare = s.posSpare, s.pos
}

// Snapshot returns the current committed position and velocity buffers.
// Both are read-only views into live state, valid until the next step.
func (s *Store) Snapshot() (pos, vel []Vec3) {
	return s.pos, s.vel
}

// Gather writes dst[i] = src[perm[i]] for all i. perm must be a permutation
// of [0, len(src)); dst and src must not alias.
func Gather(dst, src []Vec3, perm []int32) {
	for i, p := range perm {
		dst[i] = src[p]
	}
}
