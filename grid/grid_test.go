package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/flock/particle"
)

func TestNewParams(t *testing.T) {
	p := NewParams(100, 5)

	assert.Equal(t, float32(10), p.CellWidth)
	assert.Equal(t, int32(22), p.SideCount)
	assert.Equal(t, int32(22*22*22), p.CellCount)
	assert.Equal(t, float32(-110), p.Min)

	// Cell width must not be smaller than any interaction radius, or a
	// neighbor in range could sit beyond the adjacent cell.
	assert.GreaterOrEqual(t, p.CellWidth, float32(5))
}

func TestCellIDRoundTrip(t *testing.T) {
	p := NewParams(100, 5)

	for _, c := range [][3]int32{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{21, 21, 21},
		{5, 13, 7},
	} {
		id := p.CellID(c[0], c[1], c[2])
		x, y, z := p.CellCoords(id)
		assert.Equal(t, c[0], x, "x for cell %v", c)
		assert.Equal(t, c[1], y, "y for cell %v", c)
		assert.Equal(t, c[2], z, "z for cell %v", c)
	}

	// x varies fastest in the linear encoding.
	assert.Equal(t, p.CellID(0, 0, 0)+1, p.CellID(1, 0, 0))
	assert.Equal(t, p.CellID(0, 0, 0)+p.SideCount, p.CellID(0, 1, 0))
}

func TestCellOf(t *testing.T) {
	p := NewParams(100, 5)

	tests := []struct {
		name string
		pos  particle.Vec3
		want [3]int32
	}{
		{"grid minimum corner", particle.Vec3{X: -110, Y: -110, Z: -110}, [3]int32{0, 0, 0}},
		{"origin", particle.Vec3{}, [3]int32{11, 11, 11}},
		{"domain max corner", particle.Vec3{X: 100, Y: 100, Z: 100}, [3]int32{21, 21, 21}},
		{"domain min corner", particle.Vec3{X: -100, Y: -100, Z: -100}, [3]int32{1, 1, 1}},
		{"off-axis", particle.Vec3{X: -5, Y: 42, Z: -99.5}, [3]int32{10, 15, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := p.CellOf(tt.pos)
			assert.Equal(t, tt.want, [3]int32{x, y, z})
		})
	}
}
