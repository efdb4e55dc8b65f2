package universe

import (
	"context"
)

//Session serializes the interactive commands for a Scheduler
//every command is executed by the main loop goroutine in the order it was sent
type Session struct {
	s         *Scheduler
	controlCh chan func()
	closeCh   chan bool
	cancel    context.CancelFunc
	done      chan struct{}
	seedCount int
}

//NewSession starts the main loop for s
//seedCount is the number of random draws used by Randomize
func NewSession(s *Scheduler, seedCount int) *Session {
	ss := &Session{
		s:         s,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		seedCount: seedCount,
	}
	go ss.mainLoop()
	return ss
}

// Scheduler returns the scheduler driven by the session
func (ss *Session) Scheduler() *Scheduler {
	return ss.s
}

// Status returns current simulation status
func (ss *Session) Status() Status {
	return ss.s.Status()
}

// Options returns the simulation options
func (ss *Session) Options() Options {
	return ss.s.Options()
}

//Run starts the simulation, returns immediately
func (ss *Session) Run() {
	ss.controlCh <- ss.run
}

//Stop stops the simulation at the next tick boundary, returns immediately
func (ss *Session) Stop() {
	ss.controlCh <- ss.stop
}

//Step does one simulation step if the simulation is not running, returns immediately
func (ss *Session) Step() {
	ss.controlCh <- ss.step
}

//Clear stops the simulation and kills all cells, returns immediately
func (ss *Session) Clear() {
	ss.controlCh <- func() {
		ss.stop()
		ss.s.Clear()
	}
}

//Randomize clears the world, picks a new background and seeds the world again, returns immediately
func (ss *Session) Randomize() {
	ss.controlCh <- func() {
		ss.stop()
		ss.s.Clear()
		ss.s.ResetBackground()
		ss.s.Seed(ss.seedCount)
	}
}

//InverseCell inverses the cell state at point x, y, returns immediately
func (ss *Session) InverseCell(x int, y int) {
	ss.controlCh <- func() {
		ss.s.InverseCell(x, y)
	}
}

//Close stops the simulation and the main loop, blocks until the simulation is stopped
func (ss *Session) Close() {
	stopped := make(chan struct{})
	ss.controlCh <- func() {
		ss.stop()
		close(stopped)
	}
	<-stopped
	ss.closeCh <- true
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (ss *Session) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-ss.controlCh:
			cmd()
		case c = <-ss.closeCh:
		}
	}
}

//running reports whether a Run goroutine is still active
func (ss *Session) running() bool {
	if ss.done == nil {
		return false
	}
	select {
	case <-ss.done:
		return false
	default:
		return true
	}
}

func (ss *Session) run() {
	if ss.running() {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	ss.cancel, ss.done = cancel, done
	go func() {
		defer close(done)
		_ = ss.s.Run(ctx)
	}()
}

//stop cancels the running simulation and waits for the in-flight tick
func (ss *Session) stop() {
	if ss.cancel == nil {
		return
	}
	ss.s.Stop()
	ss.cancel()
	<-ss.done
	ss.cancel, ss.done = nil, nil
}

func (ss *Session) step() {
	if ss.running() {
		return
	}
	_, _ = ss.s.Tick()
}
