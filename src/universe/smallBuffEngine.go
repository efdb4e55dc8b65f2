package universe

/*
	Engine with buffers optimization
	Next uses small buffer to store the current and previous lines only.
	the first line of this buffer is copied back to the current grid as calculating moves to the next line,
	the row above is written only when nothing left to calculate needs its old state
*/
type smallBuffEngine struct {
	tmpBuff [2][]Cell
}

func newSmallBuffEngine(side int) *smallBuffEngine {
	return &smallBuffEngine{tmpBuff: [2][]Cell{make([]Cell, side), make([]Cell, side)}}
}

func (e *smallBuffEngine) Name() string {
	return "smallBuff"
}

func (e *smallBuffEngine) Next(w *World) (t Transitions) {
	cur := w.cur
	if len(e.tmpBuff[0]) != cur.side {
		*e = *newSmallBuffEngine(cur.side)
	}
	for y, row := range cur.rows {
		for x, c := range row {
			next := cellNextState(cur, x, y)
			t.record(w, x, y, c, next)
			e.tmpBuff[1][x] = next
		}
		if y-1 >= 0 {
			copy(cur.rows[y-1], e.tmpBuff[0])
		}
		e.tmpBuff[0], e.tmpBuff[1] = e.tmpBuff[1], e.tmpBuff[0]
	}
	if cur.side > 0 {
		copy(cur.rows[cur.side-1], e.tmpBuff[0])
	}
	return
}
