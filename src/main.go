package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"

	"pixlife/src/render"
	"pixlife/src/universe"
	"pixlife/src/view"
)

//frontend connects the scheduler to its display and status sinks and runs it
type frontend interface {
	Display() universe.DisplaySink
	Status() universe.StatusSink
	Start(s *universe.Scheduler) error
}

var (
	frontends = map[string]func(eo *EnvOptions, o universe.Options) (frontend, error){
		"console": func(eo *EnvOptions, o universe.Options) (frontend, error) {
			return &consoleFrontend{out: view.NewConsoleOut(os.Stdout, !eo.noColor)}, nil
		},
		"png": func(eo *EnvOptions, o universe.Options) (frontend, error) {
			p, err := view.NewPNGOut(eo.pngDir, eo.pngEvery)
			if err != nil {
				return nil, err
			}
			return &consoleFrontend{out: view.NewConsoleOut(os.Stdout, !eo.noColor), display: p}, nil
		},
		"tui": func(eo *EnvOptions, o universe.Options) (frontend, error) {
			ui := view.NewConsoleUI(o.Side, render.BlockSize(o.ImageSide, o.Side), render.DefaultForeground)
			return &tuiFrontend{ui: ui, seedCount: o.SeedCount}, nil
		},
	}
)

type EnvOptions struct {
	config   string
	display  string
	template string
	pngDir   string
	pngEvery int
	noColor  bool
}

func main() {
	eo, uo := initOptions()

	newFrontend := frontends[eo.display]
	fe, err := newFrontend(eo, *uo)
	if err != nil {
		log.Fatalln(err)
	}

	s, err := universe.NewScheduler(*uo, fe.Display(), fe.Status(), universe.SystemClock{})
	if err != nil {
		log.Fatalln(err)
	}

	if eo.template != "" {
		if err := s.SettleTemplate(eo.template, uo.Side/2-3, uo.Side/2-3); err != nil {
			flaggy.ShowHelpAndExit(err.Error())
		}
	} else {
		s.Seed(uo.SeedCount)
	}

	if err := fe.Start(s); err != nil {
		log.Fatalln(err)
	}
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	o := universe.DefaultOptions()
	uo = &o
	eo = &EnvOptions{display: "console", pngDir: "frames", pngEvery: universe.DefTickRate}

	//the config file provides the defaults the flags override
	if name := configFileArg(os.Args[1:]); name != "" {
		fo, err := LoadOptions(name)
		if err != nil {
			log.Fatalln(err)
		}
		uo = &fo
	}

	displayNames := make([]string, 0, len(frontends))
	for k := range frontends {
		displayNames = append(displayNames, k)
	}
	sort.Strings(displayNames)

	flaggy.SetName("pixlife")
	flaggy.SetDescription("Conway's Game of Life rendered into a pixel buffer")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.config, "c", "config", "JSON config file, the other flags override its values")
	flaggy.Int(&uo.Side, "n", "side", "Number of cells per grid side")
	flaggy.Int(&uo.ImageSide, "p", "pixels", "Number of pixels per image side")
	flaggy.Float64(&uo.TickRate, "f", "rate", "Target tick rate, ticks per second")
	flaggy.Int(&uo.SeedCount, "k", "seed", "Number of random draws for the initial population")
	flaggy.Int(&uo.ReportEvery, "R", "report", "Report the status every R ticks, 0 disables reports")
	flaggy.Int(&uo.MaxTicks, "s", "maxSteps", "Limit the simulation to maxSteps, 0 means no limit")
	flaggy.Bool(&uo.StopOnExtinction, "x", "extinction", "Stop when no cell is alive")
	flaggy.Bool(&uo.StopOnSaturation, "a", "saturation", "Stop when every cell is alive")
	flaggy.Bool(&uo.VerifyCensus, "v", "verify", "Compare the incremental live count with a rescan every tick")
	flaggy.Int64(&uo.RandSeed, "r", "randSeed", "Random seed, 0 means time based")
	flaggy.Int(&uo.Workers, "w", "workers", "Workers of the multithreaded engine, 0 means one per CPU")
	flaggy.String(&uo.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.EngineNames(), "|")+"]")
	flaggy.String(&eo.display, "d", "display", "Display to use ["+strings.Join(displayNames, "|")+"]")
	flaggy.String(&eo.template, "t", "template", "Settle a template instead of random cells")
	flaggy.String(&eo.pngDir, "", "pngDir", "Directory for the png display")
	flaggy.Int(&eo.pngEvery, "", "pngEvery", "Save every n-th frame with the png display")
	flaggy.Bool(&eo.noColor, "", "noColor", "Disable colored output")

	flaggy.Parse()

	if _, ok := frontends[eo.display]; !ok {
		flaggy.ShowHelpAndExit("unknown display")
	}
	if err := uo.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	return
}

//consoleFrontend prints the status reports, frames go to display or nowhere
type consoleFrontend struct {
	out     *view.ConsoleOut
	display universe.DisplaySink
}

func (c *consoleFrontend) Display() universe.DisplaySink {
	if c.display == nil {
		return universe.Discard
	}
	return c.display
}

func (c *consoleFrontend) Status() universe.StatusSink {
	return c.out
}

func (c *consoleFrontend) Start(s *universe.Scheduler) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	c.out.Start(s.Options(), s.Engine())
	err := s.Run(ctx)
	if ctx.Err() != nil {
		fmt.Printf("\nStopped: %s\n", universe.FormatStatus(s.Status()))
		err = nil
	}
	//a failing display stops saving frames without stopping the run
	if d, ok := c.display.(interface{ Err() error }); ok && d.Err() != nil {
		return errors.Wrap(d.Err(), "[consoleFrontend] display failed")
	}
	return err
}

//tuiFrontend runs the interactive terminal UI
type tuiFrontend struct {
	ui        *view.ConsoleUI
	seedCount int
}

func (t *tuiFrontend) Display() universe.DisplaySink {
	return t.ui
}

func (t *tuiFrontend) Status() universe.StatusSink {
	return t.ui
}

func (t *tuiFrontend) Start(s *universe.Scheduler) error {
	session := universe.NewSession(s, t.seedCount)
	t.ui.Register(session)
	t.ui.Start()
	session.Close()
	return nil
}
