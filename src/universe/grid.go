package universe

// Cell is the state of one grid position, either Dead or Alive
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//Grid is a square matrix of cells
//the side is fixed when the grid is created
type Grid struct {
	side  int
	cells []Cell
	rows  [][]Cell
}

//NewGrid allocates the zero filled grid
//all rows share one backing array
func NewGrid(side int) *Grid {
	g := &Grid{side: side, cells: make([]Cell, side*side), rows: make([][]Cell, side)}
	for i := range g.rows {
		start := side * i
		g.rows[i] = g.cells[start : start+side : start+side]
	}
	return g
}

// Side returns the grid side length
func (g *Grid) Side() int {
	return g.side
}

// Get returns the cell state at column x, row y
func (g *Grid) Get(x, y int) Cell {
	return g.rows[y][x]
}

// Set stores the cell state at column x, row y
func (g *Grid) Set(x, y int, c Cell) {
	g.rows[y][x] = c
}

// Alive reports whether the cell at x, y is alive
func (g *Grid) Alive(x, y int) bool {
	return g.rows[y][x] == Alive
}

// Rows exposes the cell rows, indexed [y][x]. Callers must not modify them.
func (g *Grid) Rows() [][]Cell {
	return g.rows
}

// Snapshot returns an independent copy of the grid
func (g *Grid) Snapshot() *Grid {
	s := NewGrid(g.side)
	copy(s.cells, g.cells)
	return s
}

// CopyFrom overwrites g with the content of src, the sides must match
func (g *Grid) CopyFrom(src *Grid) {
	copy(g.cells, src.cells)
}

// Equal reports whether both grids have the same side and cells
func (g *Grid) Equal(o *Grid) bool {
	if g.side != o.side {
		return false
	}
	for i, c := range g.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

// Clear kills all cells
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Dead
	}
}

//walk calls cb for each cell, row by row
func (g *Grid) walk(cb func(x int, y int, c Cell)) {
	for y, row := range g.rows {
		for x, c := range row {
			cb(x, y, c)
		}
	}
}
