// Package grid implements the uniform spatial grid that bounds neighbor
// search: cell labeling, key sort, cell boundary location, and the coherent
// reshuffle. The grid is cubic, with cells wide enough that any neighbor
// within the largest interaction radius lies in an adjacent cell.
package grid

import "github.com/pthm-cable/flock/particle"

// EmptyCell is the sentinel stored in a cell range for a cell that holds no
// particles this step.
const EmptyCell = int32(-1)

// Params describes the grid geometry. It is derived once from the scene
// extent and the interaction radii and is read-only afterwards.
type Params struct {
	CellWidth float32 // Edge length of a cubic cell
	SideCount int32   // Cells per axis
	CellCount int32   // SideCount³
	Min       float32 // Minimum corner of the covered volume, per axis
}

// NewParams builds grid parameters covering [-sceneScale, sceneScale]³ with
// cells of width 2×maxRadius. One extra cell of slack per half-axis keeps
// wrapped boundary positions inside the covered volume.
func NewParams(sceneScale, maxRadius float32) Params {
	cellWidth := 2 * maxRadius
	halfSide := int32(sceneScale/cellWidth) + 1
	side := 2 * halfSide
	return Params{
		CellWidth: cellWidth,
		SideCount: side,
		CellCount: side * side * side,
		Min:       -cellWidth * float32(halfSide),
	}
}

// CellID encodes 3D cell coordinates into a linear cell id. x varies
// fastest, matching the iteration order of the neighbor search.
func (p Params) CellID(x, y, z int32) int32 {
	return x + y*p.SideCount + z*p.SideCount*p.SideCount
}

// CellCoords decodes a linear cell id back into 3D cell coordinates.
func (p Params) CellCoords(id int32) (x, y, z int32) {
	x = id % p.SideCount
	y = (id / p.SideCount) % p.SideCount
	z = id / (p.SideCount * p.SideCount)
	return x, y, z
}

// CellOf returns the 3D cell coordinates containing pos. Positions must lie
// within the covered volume; out-of-range positions yield out-of-range
// coordinates, which is a precondition violation of the caller.
func (p Params) CellOf(pos particle.Vec3) (x, y, z int32) {
	inv := 1 / p.CellWidth
	x = int32((pos.X - p.Min) * inv)
	y = int32((pos.Y - p.Min) * inv)
	z = int32((pos.Z - p.Min) * inv)
	return x, y, z
}
