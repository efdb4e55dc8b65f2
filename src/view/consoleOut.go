package view

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/logrusorgru/aurora"

	"pixlife/src/universe"
)

//ConsoleOut prints the status reports line by line
type ConsoleOut struct {
	mu sync.Mutex
	w  io.Writer
	au aurora.Aurora
}

//NewConsoleOut creates the status sink writing to w
func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors)}
}

//Start prints the running configuration
func (c *ConsoleOut) Start(o universe.Options, engine string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":    fmt.Sprintf("%v x %v cells", o.Side, o.Side),
		"Image":        fmt.Sprintf("%v x %v px", o.ImageSide, o.ImageSide),
		"Tick rate":    fmt.Sprintf("%v/s", o.TickRate),
		"Interval":     o.Interval(),
		"Seed count":   o.SeedCount,
		"Max ticks":    o.MaxTicks,
		"Report every": o.ReportEvery,
		"Engine":       engine,
		"Total cells":  o.Capacity(),
	})
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

//Report prints one status line
func (c *ConsoleOut) Report(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, "  %s\n", c.au.Cyan(text))
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", c.au.Green(propName), d[propName])
	}
}
