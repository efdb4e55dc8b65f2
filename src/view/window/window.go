//go:build window

// Package window shows the frames in a desktop window.
// It needs cgo and the platform graphics libraries, so it is only built with -tags window.
package window

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

//Window is an ebiten game drawing the latest presented frame
//it is both the display and the status sink
type Window struct {
	mu     sync.Mutex
	side   int
	title  string
	pix    []byte
	dirty  bool
	status string
	img    *ebiten.Image
}

//New creates the window for frames of side x side pixels
func New(side int, title string) *Window {
	return &Window{
		side:  side,
		title: title,
		pix:   make([]byte, side*side*4),
	}
}

//Present copies the frame, the window draws it on the next screen refresh
func (w *Window) Present(img *image.RGBA) {
	w.mu.Lock()
	copy(w.pix, img.Pix)
	w.dirty = true
	w.mu.Unlock()
}

//Report keeps the latest status line for the overlay
func (w *Window) Report(text string) {
	w.mu.Lock()
	w.status = text
	w.mu.Unlock()
}

func (w *Window) Update() error {
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.img == nil {
		w.img = ebiten.NewImage(w.side, w.side)
	}
	w.mu.Lock()
	if w.dirty {
		w.img.WritePixels(w.pix)
		w.dirty = false
	}
	status := w.status
	w.mu.Unlock()
	screen.DrawImage(w.img, nil)
	ebitenutil.DebugPrint(screen, status)
}

func (w *Window) Layout(_, _ int) (int, int) {
	return w.side, w.side
}

//Run opens the window and blocks until it is closed, it must be called from the main goroutine
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.side, w.side)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(w)
}
