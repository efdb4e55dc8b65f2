package universe

import (
	"context"
	"errors"
	"image"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"pixlife/src/render"
)

type frameRecorder struct {
	mu     sync.Mutex
	frames int
	last   []byte
}

func (r *frameRecorder) Present(img *image.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	r.last = append(r.last[:0], img.Pix...)
}

func (r *frameRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

type reportRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *reportRecorder) Report(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, text)
}

func (r *reportRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func testOptions(side int) Options {
	o := DefaultOptions()
	o.Side = side
	o.ImageSide = side * 4
	o.TickRate = 4
	o.SeedCount = 0
	o.ReportEvery = 0
	o.RandSeed = 99
	o.RandomBackground = false
	return o
}

func newTestScheduler(t *testing.T, o Options) (*Scheduler, *frameRecorder, *reportRecorder, *VirtualClock) {
	frames := &frameRecorder{}
	reports := &reportRecorder{}
	clock := NewVirtualClock(time.Unix(1000, 0))
	s, err := NewScheduler(o, frames, reports, clock)
	if err != nil {
		t.Fatal(err)
	}
	return s, frames, reports, clock
}

func TestNewSchedulerInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(o *Options)
	}{
		{"zero side", func(o *Options) { o.Side = 0 }},
		{"negative side", func(o *Options) { o.Side = -3 }},
		{"zero rate", func(o *Options) { o.TickRate = 0 }},
		{"negative rate", func(o *Options) { o.TickRate = -1 }},
		{"NaN rate", func(o *Options) { o.TickRate = math.NaN() }},
		{"infinite rate", func(o *Options) { o.TickRate = math.Inf(1) }},
		{"negative seed", func(o *Options) { o.SeedCount = -1 }},
		{"image smaller than grid", func(o *Options) { o.ImageSide = o.Side - 1 }},
		{"negative report", func(o *Options) { o.ReportEvery = -1 }},
		{"negative max ticks", func(o *Options) { o.MaxTicks = -1 }},
		{"unknown engine", func(o *Options) { o.Engine = "nope" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := testOptions(8)
			tt.modify(&o)
			s, err := NewScheduler(o, nil, nil, nil)
			if !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("got %v, want ErrInvalidOptions", err)
			}
			if s != nil {
				t.Fatalf("no scheduler must be created on error")
			}
		})
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		rate float64
		want time.Duration
	}{
		{1, time.Second},
		{4, 250 * time.Millisecond},
		{400, 2500 * time.Microsecond},
		{1000, time.Millisecond},
	}
	for _, tt := range tests {
		o := Options{TickRate: tt.rate}
		if got := o.Interval(); got != tt.want {
			t.Errorf("rate %v: got %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestTickCensusAgreement(t *testing.T) {
	for _, engine := range EngineNames() {
		t.Run(engine, func(t *testing.T) {
			o := testOptions(48)
			o.Engine = engine
			o.VerifyCensus = true
			s, frames, _, _ := newTestScheduler(t, o)
			s.Seed(48 * 48 / 3)
			for i := 1; i <= 60; i++ {
				st, err := s.Tick()
				if err != nil {
					t.Fatalf("tick %d: %v", i, err)
				}
				if st.Tick != i {
					t.Fatalf("tick number %d, want %d", st.Tick, i)
				}
				if live := Rescan(s.Snapshot()); st.LiveCells != live {
					t.Fatalf("tick %d: status %d, rescan %d", i, st.LiveCells, live)
				}
			}
			if frames.count() != 61 {
				t.Fatalf("got %d frames, want one per tick plus the seeded one", frames.count())
			}
		})
	}
}

func TestRunStopsOnExtinction(t *testing.T) {
	o := testOptions(8)
	o.StopOnExtinction = true
	s, _, reports, clock := newTestScheduler(t, o)
	s.Settle([][]int{{3, 3}})
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := s.Status()
	if st.RunningMode != RunningStateFinished || st.Reason != "extinction" || st.Tick != 1 {
		t.Fatalf("unexpected status %+v", st)
	}
	if waits := clock.Waits(); len(waits) != 1 || waits[0] != 250*time.Millisecond {
		t.Fatalf("unexpected waits %v", waits)
	}
	lines := reports.all()
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "finished (extinction): ") {
		t.Fatalf("unexpected reports %q", lines)
	}
}

func TestRunStopsOnSaturation(t *testing.T) {
	o := testOptions(2)
	o.StopOnSaturation = true
	s, _, _, clock := newTestScheduler(t, o)
	s.Settle([][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := s.Status()
	if st.Reason != "saturation" || st.Tick != 0 || len(clock.Waits()) != 0 {
		t.Fatalf("a saturated grid must finish before the first tick, got %+v", st)
	}
}

func TestRunReportsAndMaxTicks(t *testing.T) {
	o := testOptions(10)
	o.ReportEvery = 5
	o.MaxTicks = 20
	s, frames, reports, clock := newTestScheduler(t, o)
	if err := s.SettleTemplate("block", 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := s.Status()
	if st.Tick != 20 || st.Reason != "max ticks reached" {
		t.Fatalf("unexpected status %+v", st)
	}
	if frames.count() != 21 {
		t.Fatalf("got %d frames, want 21", frames.count())
	}
	waits := clock.Waits()
	if len(waits) != 20 {
		t.Fatalf("got %d waits, want 20", len(waits))
	}
	for _, d := range waits {
		if d != 250*time.Millisecond {
			t.Fatalf("got wait %v, want 250ms", d)
		}
	}
	lines := reports.all()
	if len(lines) != 5 {
		t.Fatalf("got reports %q", lines)
	}
	if want := "time: 1.25s | ticks: 5 | alive: 4 | visited: 4 | rate: 4.00/s"; lines[0] != want {
		t.Fatalf("got %q, want %q", lines[0], want)
	}
	if want := "finished (max ticks reached): time: 5.00s | ticks: 20 | alive: 4 | visited: 4 | rate: 4.00/s"; lines[4] != want {
		t.Fatalf("got %q, want %q", lines[4], want)
	}
}

func TestStopObservedAtTickBoundary(t *testing.T) {
	o := testOptions(10)
	o.ReportEvery = 1
	o.MaxTicks = 100
	var s *Scheduler
	frames := &frameRecorder{}
	stopper := StatusFunc(func(text string) {
		if s.Status().Tick == 3 {
			s.Stop()
		}
	})
	s, err := NewScheduler(o, frames, stopper, NewVirtualClock(time.Unix(0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SettleTemplate("blinker", 0, 0); err != nil {
		t.Fatal(err)
	}
	s.Stop() //a stop before Run is forgotten
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := s.Status()
	if st.Tick != 3 || st.RunningMode != RunningStateManual {
		t.Fatalf("unexpected status %+v", st)
	}
	if frames.count() != 4 {
		t.Fatalf("every started tick must present its frame, got %d", frames.count())
	}
}

func TestRunCanceledContextCompletesTick(t *testing.T) {
	o := testOptions(10)
	s, _, _, _ := newTestScheduler(t, o)
	if err := s.SettleTemplate("blinker", 0, 0); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if st := s.Status(); st.Tick != 1 || st.LiveCells != 3 {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestSchedulerEditing(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, testOptions(6))
	s.InverseCell(2, 3)
	s.InverseCell(-1, 0)
	s.InverseCell(6, 0)
	if st := s.Status(); st.LiveCells != 1 || st.Visited != 1 {
		t.Fatalf("unexpected status %+v", st)
	}
	img := s.Renderer().Image()
	if got := img.RGBAAt(2*4+2, 3*4+2); got != render.DefaultForeground {
		t.Fatalf("the toggled cell must be painted, got %v", got)
	}
	s.InverseCell(2, 3)
	if got := img.RGBAAt(2*4+2, 3*4+2); got == render.DefaultForeground {
		t.Fatalf("the dead cell must be repainted")
	}
	if st := s.Status(); st.LiveCells != 0 || st.Visited != 1 {
		t.Fatalf("unexpected status %+v", st)
	}
	if err := s.SettleTemplate("missing", 0, 0); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("got %v, want ErrUnknownTemplate", err)
	}
	s.AddTemplate(testTemplate)
	if err := s.SettleTemplate("ts1", 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	if st := s.Status(); st.Tick != 0 || st.LiveCells != 0 || st.Visited != 0 {
		t.Fatalf("clear must reset the status, got %+v", st)
	}
	names := s.Templates()
	if len(names) != len(defaultTemplates)+1 {
		t.Fatalf("unexpected templates %v", names)
	}
}

func TestSnapshotWhileRunning(t *testing.T) {
	o := testOptions(32)
	o.MaxTicks = 300
	o.StopOnExtinction = false
	s, _, _, _ := newTestScheduler(t, o)
	s.Seed(400)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()
	for {
		select {
		case err := <-done:
			if err != nil {
				t.Fatal(err)
			}
			return
		default:
			g := s.Snapshot()
			if g.Side() != 32 {
				t.Fatalf("unexpected side %d", g.Side())
			}
			st := s.Status()
			if st.LiveCells < 0 || st.LiveCells > 32*32 {
				t.Fatalf("unexpected live count %d", st.LiveCells)
			}
		}
	}
}
