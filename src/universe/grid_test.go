package universe

import (
	"strings"
	"testing"
)

//gridFrom builds a grid from rows of '#' (alive) and '.' (dead)
func gridFrom(rows ...string) *Grid {
	g := NewGrid(len(rows))
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				g.Set(x, y, Alive)
			}
		}
	}
	return g
}

//worldFrom builds a world whose current generation and visited grid are the rows
func worldFrom(rows ...string) *World {
	w := NewWorld(len(rows))
	w.cur.CopyFrom(gridFrom(rows...))
	w.visited.CopyFrom(w.cur)
	return w
}

func gridString(g *Grid) string {
	var b strings.Builder
	for _, row := range g.Rows() {
		for _, c := range row {
			if c == Alive {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestNewGrid(t *testing.T) {
	g := NewGrid(5)
	if g.Side() != 5 {
		t.Fatalf("side: got %d, want 5", g.Side())
	}
	g.walk(func(x int, y int, c Cell) {
		if c != Dead {
			t.Errorf("cell %d,%d is not dead", x, y)
		}
	})
	if len(g.Rows()) != 5 || len(g.Rows()[4]) != 5 {
		t.Fatalf("unexpected rows shape")
	}
}

func TestGridSetGet(t *testing.T) {
	g := NewGrid(4)
	g.Set(3, 1, Alive)
	if g.Get(3, 1) != Alive || !g.Alive(3, 1) {
		t.Fatalf("cell 3,1 must be alive")
	}
	if g.Get(1, 3) != Dead {
		t.Fatalf("x and y must not be swapped")
	}
	//rows must not overlap
	g.Set(3, 0, Alive)
	if g.Get(0, 1) != Dead {
		t.Fatalf("row 0 overflows into row 1")
	}
	g.Set(3, 1, Dead)
	if g.Alive(3, 1) {
		t.Fatalf("cell 3,1 must be dead")
	}
}

func TestGridSnapshotIsIndependent(t *testing.T) {
	g := gridFrom(
		"#..",
		".#.",
		"..#",
	)
	s := g.Snapshot()
	if !s.Equal(g) {
		t.Fatalf("snapshot differs:\n%s", gridString(s))
	}
	g.Set(0, 0, Dead)
	if !s.Alive(0, 0) {
		t.Fatalf("snapshot changed with the grid")
	}
	if s.Equal(g) {
		t.Fatalf("grids must differ after the change")
	}
}

func TestGridClearAndCopy(t *testing.T) {
	g := gridFrom("##", "##")
	o := NewGrid(2)
	o.CopyFrom(g)
	if !o.Equal(g) {
		t.Fatalf("copy differs")
	}
	g.Clear()
	if Rescan(g) != 0 {
		t.Fatalf("clear left live cells")
	}
	if Rescan(o) != 4 {
		t.Fatalf("copy shares cells with the source")
	}
	if NewGrid(2).Equal(NewGrid(3)) {
		t.Fatalf("grids of different sides must not be equal")
	}
}

func TestWorldSwapAndVisited(t *testing.T) {
	w := NewWorld(3)
	cur, nxt := w.Current(), w.nxt
	w.Swap()
	if w.Current() != nxt || w.nxt != cur {
		t.Fatalf("swap must exchange the buffers")
	}
	if !w.MarkVisited(1, 1) {
		t.Fatalf("first visit must be new")
	}
	if w.MarkVisited(1, 1) {
		t.Fatalf("second visit must not be new")
	}
	w.Clear()
	if Rescan(w.Visited()) != 0 {
		t.Fatalf("clear must forget visits")
	}
}
