package universe

//World holds the current generation, the working buffer for the next one
//and the census grid of cells that have ever been alive
type World struct {
	cur     *Grid
	nxt     *Grid
	visited *Grid
}

// NewWorld allocates a zero filled world with the given side
func NewWorld(side int) *World {
	return &World{
		cur:     NewGrid(side),
		nxt:     NewGrid(side),
		visited: NewGrid(side),
	}
}

// Side returns the side of every grid in the world
func (w *World) Side() int {
	return w.cur.side
}

// Current returns the current generation
func (w *World) Current() *Grid {
	return w.cur
}

// Visited returns the census grid, a cell is Alive there if it has ever been alive
func (w *World) Visited() *Grid {
	return w.visited
}

//Swap makes the working buffer the current generation
//the old generation becomes the working buffer for the next step
func (w *World) Swap() {
	w.cur, w.nxt = w.nxt, w.cur
}

//MarkVisited sets the ever-alive bit for x, y
//returns true if the cell has never been alive before
func (w *World) MarkVisited(x, y int) bool {
	if w.visited.rows[y][x] == Alive {
		return false
	}
	w.visited.rows[y][x] = Alive
	return true
}

// Clear kills all cells and forgets the visited history
func (w *World) Clear() {
	w.cur.Clear()
	w.nxt.Clear()
	w.visited.Clear()
}
