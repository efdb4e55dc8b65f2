package universe

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"pixlife/src/render"
)

//Scheduler drives the simulation: step, census, render, present, wait
//the world is guarded by one mutex held for a whole tick or a whole read,
//the status has its own mutex so it can be read while a tick is running
type Scheduler struct {
	options   Options
	engine    Engine
	seeder    *Seeder
	rng       *rand.Rand
	renderer  *render.Renderer
	display   DisplaySink
	status    StatusSink
	clock     Clock
	templates map[string]Template
	stopCh    atomic.Bool

	state struct {
		Status
		sync.Mutex
	}
	world struct {
		*World
		census Census
		sync.Mutex
	}
}

//NewScheduler validates the options and creates the session objects
//nothing is created when the options are invalid
func NewScheduler(o Options, display DisplaySink, status StatusSink, clock Clock) (*Scheduler, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	engine, err := NewEngine(o.Engine, o)
	if err != nil {
		return nil, err
	}
	seed := o.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var ropts []render.Option
	if o.RandomBackground {
		ropts = append(ropts, render.WithBackground(render.RandomBackground(rng)))
	}
	renderer, err := render.New(o.ImageSide, o.Side, ropts...)
	if err != nil {
		return nil, errors.Wrap(err, "renderer")
	}

	if display == nil {
		display = Discard
	}
	if status == nil {
		status = Discard
	}
	if clock == nil {
		clock = SystemClock{}
	}

	s := &Scheduler{
		options:   o,
		engine:    engine,
		seeder:    NewSeeder(rng),
		rng:       rng,
		renderer:  renderer,
		display:   display,
		status:    status,
		clock:     clock,
		templates: map[string]Template{},
	}
	for _, t := range defaultTemplates {
		s.templates[t.Name] = t
	}
	s.world.World = NewWorld(o.Side)
	return s, nil
}

// Options returns the session options
func (s *Scheduler) Options() Options {
	return s.options
}

// Engine returns the name of the step engine
func (s *Scheduler) Engine() string {
	return s.engine.Name()
}

// Renderer returns the renderer painting the frames
func (s *Scheduler) Renderer() *render.Renderer {
	return s.renderer
}

// Status returns current simulation status
func (s *Scheduler) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

// Snapshot returns a copy of the current generation, taken between ticks
func (s *Scheduler) Snapshot() *Grid {
	s.world.Lock()
	defer s.world.Unlock()
	return s.world.cur.Snapshot()
}

// AddTemplate adds the seeding template to the internal storage
func (s *Scheduler) AddTemplate(tmpl Template) {
	s.world.Lock()
	s.templates[tmpl.Name] = tmpl
	s.world.Unlock()
}

// Templates returns the sorted names of the known templates
func (s *Scheduler) Templates() []string {
	s.world.Lock()
	defer s.world.Unlock()
	return templateNames(s.templates)
}

//Seed populates the world with k random draws and shows the result
func (s *Scheduler) Seed(k int) {
	s.mutate(func(w *World) { s.seeder.Seed(w, k) })
}

//Settle makes the cells at the [x, y] coordinates alive and shows the result
func (s *Scheduler) Settle(vc [][]int) {
	s.mutate(func(w *World) { Settle(w, vc) })
}

//SettleTemplate populates the world with the named template moved by dx, dy
func (s *Scheduler) SettleTemplate(name string, dx int, dy int) error {
	s.world.Lock()
	tmpl, ok := s.templates[name]
	s.world.Unlock()
	if !ok {
		return errors.Wrapf(ErrUnknownTemplate, "template %q", name)
	}
	s.Settle(tmpl.Offset(dx, dy).Coordinates)
	return nil
}

//InverseCell inverses the cell state at x, y
func (s *Scheduler) InverseCell(x int, y int) {
	if x < 0 || y < 0 || x >= s.options.Side || y >= s.options.Side {
		return
	}
	s.mutate(func(w *World) {
		if w.cur.Alive(x, y) {
			w.cur.Set(x, y, Dead)
			return
		}
		w.cur.Set(x, y, Alive)
		w.MarkVisited(x, y)
	})
}

//Clear kills all cells and resets the counters
func (s *Scheduler) Clear() {
	s.mutate(func(w *World) { w.Clear() })
	s.state.Lock()
	s.state.Tick = 0
	s.state.Elapsed = 0
	s.state.TickRate = 0
	s.state.Reason = ""
	s.state.RunningMode = RunningStateManual
	s.state.Unlock()
}

//ResetBackground repaints the background with a new random light color
func (s *Scheduler) ResetBackground() {
	s.world.Lock()
	defer s.world.Unlock()
	s.renderer.Reset(render.RandomBackground(s.rng))
	s.display.Present(s.renderer.Draw(s.world.cur))
}

//mutate runs fn on the world, recounts the census and presents the new frame
func (s *Scheduler) mutate(fn func(w *World)) {
	s.world.Lock()
	defer s.world.Unlock()
	fn(s.world.World)
	s.world.census.Reset(s.world.World)
	s.display.Present(s.renderer.Draw(s.world.cur))
	s.updateState(func(st *Status) {
		st.LiveCells = s.world.census.Live
		st.Visited = s.world.census.Visited
	})
}

//Tick does one simulation step
//the current generation is the read only input of the engine, the working buffer receives the result,
//then the census is updated, the frame is rendered and handed to the display
func (s *Scheduler) Tick() (Status, error) {
	s.world.Lock()
	defer s.world.Unlock()
	start := time.Now()

	t := s.engine.Next(s.world.World)
	s.world.census.Apply(t)
	var err error
	if s.options.VerifyCensus {
		err = s.world.census.Verify(s.world.cur)
	}
	s.display.Present(s.renderer.Draw(s.world.cur))

	st := s.updateState(func(st *Status) {
		st.Tick++
		st.LiveCells = s.world.census.Live
		st.Visited = s.world.census.Visited
		st.IterationTime = time.Since(start)
	})
	return st, err
}

//Run runs ticks until a stop condition, Stop or ctx cancel
//a stop request is observed after the clock wait, the running tick always completes
func (s *Scheduler) Run(ctx context.Context) error {
	s.stopCh.Store(false)
	startTime := s.clock.Now()
	startTick := s.Status().Tick
	interval := s.options.Interval()
	s.updateState(func(st *Status) {
		st.RunningMode = RunningStateRun
		st.Reason = ""
		st.Elapsed = 0
		st.TickRate = 0
	})

	st := s.Status()
	if reason := s.finished(st); reason != "" {
		s.finish(reason)
		return nil
	}
	for {
		if _, err := s.Tick(); err != nil {
			s.finish(err.Error())
			return err
		}
		if err := s.clock.Sleep(ctx, interval); err != nil {
			s.pause()
			return err
		}
		st = s.measure(startTime, startTick)
		if s.options.ReportEvery > 0 && st.Tick%s.options.ReportEvery == 0 {
			s.status.Report(FormatStatus(st))
		}
		if reason := s.finished(st); reason != "" {
			s.finish(reason)
			return nil
		}
		if s.stopCh.Load() {
			s.pause()
			return nil
		}
		if err := ctx.Err(); err != nil {
			s.pause()
			return err
		}
	}
}

//Stop asks the running loop to stop at the next tick boundary, returns immediately
func (s *Scheduler) Stop() {
	s.stopCh.Store(true)
}

//measure updates the elapsed time and the observed tick rate
func (s *Scheduler) measure(startTime time.Time, startTick int) Status {
	elapsed := s.clock.Now().Sub(startTime)
	return s.updateState(func(st *Status) {
		st.Elapsed = elapsed
		if elapsed > 0 {
			st.TickRate = float64(st.Tick-startTick) / elapsed.Seconds()
		}
	})
}

//finished returns the reason to stop the run or "" to continue
func (s *Scheduler) finished(st Status) string {
	switch {
	case s.options.MaxTicks > 0 && st.Tick >= s.options.MaxTicks:
		return "max ticks reached"
	case s.options.StopOnExtinction && st.LiveCells == 0:
		return "extinction"
	case s.options.StopOnSaturation && st.LiveCells == s.options.Capacity():
		return "saturation"
	}
	return ""
}

//finish switches to the finished state and sends the final report
func (s *Scheduler) finish(reason string) {
	st := s.updateState(func(st *Status) {
		st.RunningMode = RunningStateFinished
		st.Reason = reason
	})
	s.status.Report("finished (" + reason + "): " + FormatStatus(st))
}

//pause returns to the manual state
func (s *Scheduler) pause() {
	s.updateState(func(st *Status) { st.RunningMode = RunningStateManual })
}

//updateState applies fn to the status under the state lock and returns the result
func (s *Scheduler) updateState(fn func(st *Status)) Status {
	s.state.Lock()
	defer s.state.Unlock()
	fn(&s.state.Status)
	return s.state.Status
}
