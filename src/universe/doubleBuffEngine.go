package universe

/*
	Engine with two full size buffers
	All cells state is calculated from the current grid into the working buffer,
	then the buffers are swapped, the old generation becomes the next working buffer
*/
type doubleBuffEngine struct{}

func (doubleBuffEngine) Name() string {
	return "double"
}

func (doubleBuffEngine) Next(w *World) (t Transitions) {
	cur, nxt := w.cur, w.nxt
	for y, row := range cur.rows {
		for x, c := range row {
			next := cellNextState(cur, x, y)
			t.record(w, x, y, c, next)
			nxt.rows[y][x] = next
		}
	}
	w.Swap()
	return
}
