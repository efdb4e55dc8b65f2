package universe

// neighbourLimit is the count at which the next state no longer depends on the remaining neighbours
const neighbourLimit = 4

// mooreOffsets lists the 8 neighbour positions as {dx, dy}
var mooreOffsets = [8][2]int{
	{-1, -1}, {-1, 0},
	{-1, 1}, {0, -1},
	{0, 1}, {1, -1},
	{1, 0}, {1, 1},
}

//NextState applies Conway's rules
//alive cell survives with 2 or 3 neighbours, dead cell is born with exactly 3
func NextState(alive bool, neighbours int) bool {
	if neighbours < 2 || neighbours > 3 {
		return false
	}
	if neighbours == 3 {
		return true
	}
	return alive
}

//liveNeighbours counts alive cells around x, y in g
//positions outside the grid are skipped, the scan stops once the count reaches limit
func liveNeighbours(g *Grid, x int, y int, limit int) int {
	count := 0
	for k := 0; k < len(mooreOffsets) && count < limit; k++ {
		nx := x + mooreOffsets[k][0]
		ny := y + mooreOffsets[k][1]
		if nx < 0 || ny < 0 || nx >= g.side || ny >= g.side {
			continue
		}
		if g.rows[ny][nx] == Alive {
			count++
		}
	}
	return count
}

//cellNextState calculates the next state of the cell at x, y from g
func cellNextState(g *Grid, x int, y int) Cell {
	if NextState(g.rows[y][x] == Alive, liveNeighbours(g, x, y, neighbourLimit)) {
		return Alive
	}
	return Dead
}
