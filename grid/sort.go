package grid

import "sort"

// pairSorter reorders the (cell id, slot) arrays together so the pairing is
// preserved while keys become non-decreasing.
type pairSorter struct {
	keys   []int32
	values []int32
}

func (s pairSorter) Len() int           { return len(s.keys) }
func (s pairSorter) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s pairSorter) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// SortByKey sorts the parallel cellIDs (key) and slots (value) arrays in
// place by cell id. The sort is not stable: nothing downstream depends on
// the relative order of particles within a cell.
func SortByKey(cellIDs, slots []int32) {
	sort.Sort(pairSorter{keys: cellIDs, values: slots})
}
