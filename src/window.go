//go:build window

package main

import (
	"context"
	"os"

	"pixlife/src/universe"
	"pixlife/src/view"
	"pixlife/src/view/window"
)

func init() {
	frontends["window"] = func(eo *EnvOptions, o universe.Options) (frontend, error) {
		return &windowFrontend{
			w:   window.New(o.ImageSide, "The Life"),
			out: view.NewConsoleOut(os.Stdout, !eo.noColor),
		}, nil
	}
}

//windowFrontend draws the frames in a window, the simulation runs until the window is closed
type windowFrontend struct {
	w   *window.Window
	out *view.ConsoleOut
}

func (f *windowFrontend) Display() universe.DisplaySink {
	return f.w
}

func (f *windowFrontend) Status() universe.StatusSink {
	return universe.StatusFunc(func(text string) {
		f.w.Report(text)
		f.out.Report(text)
	})
}

func (f *windowFrontend) Start(s *universe.Scheduler) error {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	f.out.Start(s.Options(), s.Engine())
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()
	err := f.w.Run()
	cancel()
	<-done
	return err
}
