package universe

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownEngine is returned by NewEngine for names missing from the registry
var ErrUnknownEngine = errors.New("unknown engine")

//Transitions describes the cell changes made by one step
type Transitions struct {
	Births       int //dead -> alive
	Deaths       int //alive -> dead
	NewlyVisited int //cells alive for the first time
}

// Add accumulates o into t
func (t *Transitions) Add(o Transitions) {
	t.Births += o.Births
	t.Deaths += o.Deaths
	t.NewlyVisited += o.NewlyVisited
}

//record counts the change of the cell x, y from prev to next
//and marks the cell as visited when it becomes alive
func (t *Transitions) record(w *World, x int, y int, prev Cell, next Cell) {
	if prev == next {
		return
	}
	if next == Alive {
		t.Births++
		if w.MarkVisited(x, y) {
			t.NewlyVisited++
		}
	} else {
		t.Deaths++
	}
}

//Engine calculates the next generation of the world
//every engine reads only the start-of-tick state, whatever order it visits the cells in
type Engine interface {
	Name() string
	Next(w *World) Transitions
}

//EngineFactory creates an engine for the given options
type EngineFactory func(o Options) Engine

var engines = map[string]EngineFactory{
	"double":        func(o Options) Engine { return doubleBuffEngine{} },
	"smallBuff":     func(o Options) Engine { return newSmallBuffEngine(o.Side) },
	"multithreaded": func(o Options) Engine { return newMultithreadedEngine(o.Workers) },
}

// RegisterEngine adds the engine factory under the provided name
func RegisterEngine(name string, f EngineFactory) {
	if name == "" || f == nil {
		return
	}
	engines[name] = f
}

// EngineNames returns the sorted names of the registered engines
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for k := range engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// NewEngine creates the engine registered under name
func NewEngine(name string, o Options) (Engine, error) {
	f, ok := engines[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEngine, "engine %q", name)
	}
	return f(o), nil
}
