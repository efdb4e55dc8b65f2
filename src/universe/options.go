package universe

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidOptions is returned by Options.Validate, wrapped with the offending field
var ErrInvalidOptions = errors.New("invalid options")

//Options represents the simulation's configurable options
type Options struct {
	Side             int     `json:"side"`               //cells per grid side
	ImageSide        int     `json:"image_side"`         //pixels per image side
	TickRate         float64 `json:"tick_rate"`          //ticks per second
	SeedCount        int     `json:"seed_count"`         //random draws for the initial population
	ReportEvery      int     `json:"report_every"`       //ticks between status reports, 0 disables them
	MaxTicks         int     `json:"max_ticks"`          //0 means no limit
	StopOnExtinction bool    `json:"stop_on_extinction"` //stop when no cell is alive
	StopOnSaturation bool    `json:"stop_on_saturation"` //stop when every cell is alive
	VerifyCensus     bool    `json:"verify_census"`      //compare the incremental count with a rescan every tick
	Engine           string  `json:"engine"`
	Workers          int     `json:"workers"`           //multithreaded engine workers, 0 means one per CPU
	RandSeed         int64   `json:"rand_seed"`         //0 means time based
	RandomBackground bool    `json:"random_background"` //pick a random light background color
}

//default options
const (
	DefImageSide   = 1024
	DefSide        = 256
	DefTickRate    = 400
	DefSeedCount   = DefImageSide * 3
	DefReportEvery = DefTickRate / 8
	DefEngine      = "double"
)

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Side:             DefSide,
		ImageSide:        DefImageSide,
		TickRate:         DefTickRate,
		SeedCount:        DefSeedCount,
		ReportEvery:      DefReportEvery,
		StopOnExtinction: true,
		VerifyCensus:     true,
		Engine:           DefEngine,
		RandomBackground: true,
	}
}

// Validate checks the options before any session is created
func (o Options) Validate() error {
	switch {
	case o.Side <= 0:
		return errors.Wrapf(ErrInvalidOptions, "grid side must be positive, got %d", o.Side)
	case !(o.TickRate > 0) || math.IsInf(o.TickRate, 1):
		return errors.Wrapf(ErrInvalidOptions, "tick rate must be a positive finite number, got %v", o.TickRate)
	case o.SeedCount < 0:
		return errors.Wrapf(ErrInvalidOptions, "seed count must not be negative, got %d", o.SeedCount)
	case o.ImageSide < o.Side:
		return errors.Wrapf(ErrInvalidOptions, "image side %d is smaller than grid side %d", o.ImageSide, o.Side)
	case o.ReportEvery < 0:
		return errors.Wrapf(ErrInvalidOptions, "report interval must not be negative, got %d", o.ReportEvery)
	case o.MaxTicks < 0:
		return errors.Wrapf(ErrInvalidOptions, "max ticks must not be negative, got %d", o.MaxTicks)
	}
	if _, ok := engines[o.Engine]; !ok {
		return errors.Wrapf(ErrInvalidOptions, "unknown engine %q", o.Engine)
	}
	return nil
}

// Interval returns the delay between ticks, 1000/TickRate milliseconds
func (o Options) Interval() time.Duration {
	return time.Duration(float64(time.Second) / o.TickRate)
}

// Capacity returns the number of cells in the grid
func (o Options) Capacity() int {
	return o.Side * o.Side
}
