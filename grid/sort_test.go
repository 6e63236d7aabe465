package grid

import (
	"math/rand"
	"sort"
	"testing"
)

func TestSortByKeyFixture(t *testing.T) {
	keys := []int32{0, 1, 0, 3, 0, 2, 2, 0, 5, 6}
	values := []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	// Record the original pairing before sorting.
	pairing := make(map[int32]int32, len(keys))
	for i := range keys {
		pairing[values[i]] = keys[i]
	}

	SortByKey(keys, values)

	wantKeys := []int32{0, 0, 0, 0, 1, 2, 2, 3, 5, 6}
	for i := range keys {
		if keys[i] != wantKeys[i] {
			t.Fatalf("keys[%d] = %d, want %d (full: %v)", i, keys[i], wantKeys[i], keys)
		}
	}

	// Every value must still carry its original key.
	for i := range keys {
		if pairing[values[i]] != keys[i] {
			t.Errorf("value %d paired with key %d, originally %d",
				values[i], keys[i], pairing[values[i]])
		}
	}
}

func TestSortByKeyIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 1000

	keys := make([]int32, n)
	values := make([]int32, n)
	for i := range keys {
		keys[i] = rng.Int31n(50)
		values[i] = int32(i)
	}

	SortByKey(keys, values)

	if !sort.SliceIsSorted(keys, func(i, j int) bool { return keys[i] < keys[j] }) {
		t.Fatal("keys not sorted")
	}

	seen := make([]bool, n)
	for _, v := range values {
		if seen[v] {
			t.Fatalf("value %d appears twice", v)
		}
		seen[v] = true
	}
}

func TestSortByKeyEmpty(t *testing.T) {
	SortByKey(nil, nil) // must not panic
}
