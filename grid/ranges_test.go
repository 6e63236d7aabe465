package grid

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/flock/parallel"
)

func TestRangesLocate(t *testing.T) {
	pool := parallel.NewPool(4)
	defer pool.Close()

	// Sorted keys with gaps: cells 1, 4 and 7 are empty.
	cellIDs := []int32{0, 0, 2, 2, 2, 3, 5, 6, 6, 8}
	r := NewRanges(9)
	r.Reset(pool)
	r.Locate(pool, cellIDs)

	wantStart := []int32{0, -1, 2, 5, -1, 6, 7, -1, 9}
	wantEnd := []int32{1, -1, 4, 5, -1, 6, 8, -1, 9}
	for c := range wantStart {
		if r.Start[c] != wantStart[c] || r.End[c] != wantEnd[c] {
			t.Errorf("cell %d: range [%d,%d], want [%d,%d]",
				c, r.Start[c], r.End[c], wantStart[c], wantEnd[c])
		}
	}
}

func TestRangesCompleteness(t *testing.T) {
	pool := parallel.NewPool(64)
	defer pool.Close()

	rng := rand.New(rand.NewSource(3))
	const n = 5000
	const cells = 200

	cellIDs := make([]int32, n)
	slots := make([]int32, n)
	for i := range cellIDs {
		cellIDs[i] = rng.Int31n(cells)
		slots[i] = int32(i)
	}
	SortByKey(cellIDs, slots)

	r := NewRanges(cells)
	r.Reset(pool)
	r.Locate(pool, cellIDs)

	// Populated cells cover all N sorted positions exactly once; empty
	// cells keep both sentinels.
	total := int32(0)
	for c := int32(0); c < cells; c++ {
		start, end := r.Start[c], r.End[c]
		if start == EmptyCell {
			if end != EmptyCell {
				t.Fatalf("cell %d: start empty but end = %d", c, end)
			}
			continue
		}
		if start > end {
			t.Fatalf("cell %d: start %d > end %d", c, start, end)
		}
		for p := start; p <= end; p++ {
			if cellIDs[p] != c {
				t.Fatalf("cell %d: sorted position %d has key %d", c, p, cellIDs[p])
			}
		}
		total += end - start + 1
	}
	if total != n {
		t.Errorf("ranges cover %d positions, want %d", total, n)
	}
}

func TestRangesResetClearsStaleCells(t *testing.T) {
	pool := parallel.NewPool(4)
	defer pool.Close()

	r := NewRanges(4)
	r.Reset(pool)
	r.Locate(pool, []int32{3, 3, 3}) // only cell 3 populated

	// Next step: cell 3 is empty, cell 0 populated. Without the reset the
	// stale cell 3 range would survive.
	r.Reset(pool)
	r.Locate(pool, []int32{0, 0})

	if r.Start[3] != EmptyCell || r.End[3] != EmptyCell {
		t.Errorf("cell 3 = [%d,%d], want sentinel after reset", r.Start[3], r.End[3])
	}
	if r.Start[0] != 0 || r.End[0] != 1 {
		t.Errorf("cell 0 = [%d,%d], want [0,1]", r.Start[0], r.End[0])
	}
}

func TestRangesSingleCell(t *testing.T) {
	pool := parallel.NewPool(4)
	defer pool.Close()

	r := NewRanges(2)
	r.Reset(pool)
	r.Locate(pool, []int32{1, 1, 1, 1})

	if r.Start[1] != 0 || r.End[1] != 3 {
		t.Errorf("cell 1 = [%d,%d], want [0,3]", r.Start[1], r.End[1])
	}
}
