package universe

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

/*
	Engine with multithreaded computation algorithm
	the grid is split into row bands each of which is computed by an individual goroutine,
	every goroutine reads the current grid and writes only its own rows of the working buffer
*/

const (
	DefMinRowsPerWorker = 3 //minimum rows for one worker
)

type multithreadedEngine struct {
	workers int
}

//workArea describes the rows handled by one worker and what it changed
type workArea struct {
	y1 int
	y2 int //exclusive
	t  Transitions
}

func newMultithreadedEngine(workers int) *multithreadedEngine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &multithreadedEngine{workers: workers}
}

func (e *multithreadedEngine) Name() string {
	return "multithreaded"
}

//splitRows divides side rows into bands of at least DefMinRowsPerWorker rows
func (e *multithreadedEngine) splitRows(side int) []workArea {
	rowsPerWorker := (side + e.workers - 1) / e.workers
	if rowsPerWorker < DefMinRowsPerWorker {
		rowsPerWorker = DefMinRowsPerWorker
	}
	areas := make([]workArea, 0, e.workers)
	for y1 := 0; y1 < side; y1 += rowsPerWorker {
		areas = append(areas, workArea{y1: y1, y2: min(y1+rowsPerWorker, side)})
	}
	return areas
}

func (e *multithreadedEngine) Next(w *World) (t Transitions) {
	areas := e.splitRows(w.Side())
	var eg errgroup.Group
	for i := range areas {
		wa := &areas[i]
		eg.Go(func() error {
			e.calcArea(w, wa)
			return nil
		})
	}
	_ = eg.Wait()
	for _, wa := range areas {
		t.Add(wa.t)
	}
	w.Swap()
	return
}

//calcArea calculates new states for the rows inside workArea
func (e *multithreadedEngine) calcArea(w *World, wa *workArea) {
	cur, nxt := w.cur, w.nxt
	for y := wa.y1; y < wa.y2; y++ {
		for x, c := range cur.rows[y] {
			next := cellNextState(cur, x, y)
			wa.t.record(w, x, y, c, next)
			nxt.rows[y][x] = next
		}
	}
}
