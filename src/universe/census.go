package universe

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrCensusMismatch is returned when the incremental live count disagrees with a full rescan
var ErrCensusMismatch = errors.New("census mismatch")

//Census tracks the live cell count incrementally
//and the count of cells that have ever been alive
type Census struct {
	Live    int
	Visited int
}

// Reset recounts both values from the world
func (c *Census) Reset(w *World) {
	c.Live = Rescan(w.Current())
	c.Visited = Rescan(w.Visited())
}

// Apply adjusts the counts by the transitions of one step
func (c *Census) Apply(t Transitions) {
	c.Live += t.Births - t.Deaths
	c.Visited += t.NewlyVisited
}

// Verify compares the incremental live count with a parallel rescan of g
func (c *Census) Verify(g *Grid) error {
	if n := RescanParallel(g, 0); n != c.Live {
		return errors.Wrapf(ErrCensusMismatch, "incremental %d, rescan %d", c.Live, n)
	}
	return nil
}

// Rescan sums all cells of g
func Rescan(g *Grid) int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

//RescanParallel sums all cells of g splitting the rows between workers
//workers <= 0 means one per CPU
func RescanParallel(g *Grid, workers int) int {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	rowsPerWorker := (g.side + workers - 1) / workers
	if rowsPerWorker == 0 {
		return 0
	}
	sums := make([]int, (g.side+rowsPerWorker-1)/rowsPerWorker)
	var eg errgroup.Group
	for i := range sums {
		i := i
		y1 := i * rowsPerWorker
		y2 := min(y1+rowsPerWorker, g.side)
		eg.Go(func() error {
			for _, row := range g.rows[y1:y2] {
				for _, c := range row {
					sums[i] += int(c)
				}
			}
			return nil
		})
	}
	_ = eg.Wait()
	n := 0
	for _, s := range sums {
		n += s
	}
	return n
}
