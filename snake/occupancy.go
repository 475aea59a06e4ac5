package snake

import "github.com/hoshinonyaruko/snake-duel/structs"

// Occupancy is a bitset over the W×H grid, one bit per cell.
type Occupancy struct {
	width  int
	height int
	bits   []uint64
}

// NewOccupancy returns an empty occupancy grid.
func NewOccupancy(width, height int) *Occupancy {
	return &Occupancy{
		width:  width,
		height: height,
		bits:   make([]uint64, (width*height+63)/64),
	}
}

// occupancyOf marks every cell of each body.
func occupancyOf(width, height int, bodies ...[]structs.Position) *Occupancy {
	o := NewOccupancy(width, height)
	for _, body := range bodies {
		for _, p := range body {
			o.Set(p)
		}
	}
	return o
}

func (o *Occupancy) index(p structs.Position) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= o.width || p.Y >= o.height {
		return 0, false
	}
	return p.Y*o.width + p.X, true
}

// Set marks p as occupied. Cells outside the grid are ignored.
func (o *Occupancy) Set(p structs.Position) {
	if i, ok := o.index(p); ok {
		o.bits[i/64] |= 1 << (i % 64)
	}
}

// Has reports whether p is occupied. Cells outside the grid are never occupied.
func (o *Occupancy) Has(p structs.Position) bool {
	i, ok := o.index(p)
	if !ok {
		return false
	}
	return o.bits[i/64]&(1<<(i%64)) != 0
}

// Free lists the unoccupied cells in row-major order.
func (o *Occupancy) Free() []structs.Position {
	free := make([]structs.Position, 0, o.width*o.height)
	for y := 0; y < o.height; y++ {
		for x := 0; x < o.width; x++ {
			p := structs.Position{X: x, Y: y}
			if !o.Has(p) {
				free = append(free, p)
			}
		}
	}
	return free
}
