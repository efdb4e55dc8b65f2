package universe

import (
	"fmt"
	"time"
)

//The simulation running status at the concrete moment
type RunningState int

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

func (r RunningState) String() string {
	switch r {
	case RunningStateManual:
		return "waiting"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return fmt.Sprintf("RunningState(%d)", int(r))
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	Tick          int
	RunningMode   RunningState
	LiveCells     int
	Visited       int //cells that have ever been alive
	IterationTime time.Duration
	Elapsed       time.Duration //since the last Run started
	TickRate      float64       //observed ticks per second since the last Run started
	Reason        string        //why the last Run finished
}

//FormatStatus renders the status as a one line report
func FormatStatus(st Status) string {
	return fmt.Sprintf("time: %.2fs | ticks: %d | alive: %d | visited: %d | rate: %.2f/s",
		st.Elapsed.Seconds(), st.Tick, st.LiveCells, st.Visited, st.TickRate)
}
