package grid

import "github.com/pthm-cable/flock/parallel"

// Ranges is the per-cell boundary table: for a populated cell c,
// Start[c] and End[c] are the first and last sorted positions whose key is
// c (an inclusive run). Unpopulated cells hold EmptyCell in both.
type Ranges struct {
	Start []int32
	End   []int32
}

// NewRanges allocates a boundary table for cellCount cells.
func NewRanges(cellCount int32) *Ranges {
	return &Ranges{
		Start: make([]int32, cellCount),
		End:   make([]int32, cellCount),
	}
}

// Reset fills both tables with the empty-cell sentinel. Must run before
// every Locate: a cell populated last step may be empty this step.
func (r *Ranges) Reset(pool *parallel.Pool) {
	pool.ForEach(len(r.Start), func(start, end int) {
		for c := start; c < end; c++ {
			r.Start[c] = EmptyCell
			r.End[c] = EmptyCell
		}
	})
}

// Locate derives the boundary table from the sorted cell id array in one
// parallel pass. Each position compares its own key against its immediate
// predecessor's; a key change marks the end of one run and the start of the
// next. Distinct positions write distinct table entries, so the pass needs
// no synchronization beyond the surrounding barrier.
func (r *Ranges) Locate(pool *parallel.Pool, cellIDs []int32) {
	n := len(cellIDs)
	if n == 0 {
		return
	}
	pool.ForEach(n, func(start, end int) {
		for p := start; p < end; p++ {
			k := cellIDs[p]
			if p == 0 {
				r.Start[k] = 0
			} else if prev := cellIDs[p-1]; prev != k {
				r.Start[k] = int32(p)
				r.End[prev] = int32(p - 1)
			}
			if p == n-1 {
				r.End[k] = int32(n - 1)
			}
		}
	})
}
