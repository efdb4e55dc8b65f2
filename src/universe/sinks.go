package universe

import "image"

//DisplaySink receives one rendered frame per tick
//the image is reused for the next frame, a sink that keeps it must copy the pixels
type DisplaySink interface {
	Present(img *image.RGBA)
}

//StatusSink receives the human readable status reports
type StatusSink interface {
	Report(text string)
}

// DisplayFunc adapts a function to DisplaySink
type DisplayFunc func(img *image.RGBA)

func (f DisplayFunc) Present(img *image.RGBA) { f(img) }

// StatusFunc adapts a function to StatusSink
type StatusFunc func(text string)

func (f StatusFunc) Report(text string) { f(text) }

type discard struct{}

func (discard) Present(*image.RGBA) {}
func (discard) Report(string)       {}

// Discard drops frames and reports, it implements both DisplaySink and StatusSink
var Discard discard
