package view

import (
	"bytes"
	"strings"
	"testing"

	"pixlife/src/universe"
)

func TestConsoleOutReport(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleOut(&buf, false)
	c.Report("ticks: 1")
	c.Report("ticks: 2")
	if got, want := buf.String(), "  ticks: 1\n  ticks: 2\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestConsoleOutStart(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleOut(&buf, false)
	o := universe.DefaultOptions()
	o.Side = 16
	c.Start(o, "double")
	out := buf.String()
	for _, want := range []string{
		"Running configuration:",
		"  Dimension: 16 x 16 cells\n",
		"  Engine: double\n",
		"  Interval: 2.5ms\n",
		"  Total cells: 256\n",
		"Simulation started...",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	//keys are printed sorted
	if strings.Index(out, "Dimension") > strings.Index(out, "Engine") {
		t.Errorf("unsorted output %q", out)
	}
}

func TestConsoleOutColors(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleOut(&buf, true).Report("alive")
	if !strings.Contains(buf.String(), "\x1b[") || !strings.Contains(buf.String(), "alive") {
		t.Fatalf("expected colored output, got %q", buf.String())
	}
}
