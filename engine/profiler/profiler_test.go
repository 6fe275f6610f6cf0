package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestProfiler(buf *bytes.Buffer, clk *fakeClock) *Profiler {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return NewProfiler(WithLogger(logger), WithClock(clk.now))
}

func TestFrameReportsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	clk := &fakeClock{t: time.Unix(0, 0)}
	p := newTestProfiler(&buf, clk)

	for range 49 {
		clk.t = clk.t.Add(20 * time.Millisecond)
		p.Tick()
		if _, logged := p.Frame(); logged {
			t.Fatal("logged before the interval elapsed")
		}
	}
	clk.t = clk.t.Add(20 * time.Millisecond)
	p.Tick()
	st, logged := p.Frame()
	if !logged {
		t.Fatal("expected a report after one second")
	}
	if st.FPS != 50 || st.TPS != 50 {
		t.Errorf("FPS = %v, TPS = %v, want 50", st.FPS, st.TPS)
	}
	if !strings.Contains(buf.String(), "msg=profiler") || !strings.Contains(buf.String(), "fps=") {
		t.Errorf("log line = %q", buf.String())
	}
}

func TestFrameResetsWindow(t *testing.T) {
	var buf bytes.Buffer
	clk := &fakeClock{t: time.Unix(0, 0)}
	p := newTestProfiler(&buf, clk)

	clk.t = clk.t.Add(2 * time.Second)
	p.Frame()

	clk.t = clk.t.Add(time.Second)
	st, logged := p.Frame()
	if !logged || st.FPS != 1 || st.TPS != 0 {
		t.Fatalf("second window = %+v (logged %v), want 1 fps 0 tps", st, logged)
	}
}

func TestRound2(t *testing.T) {
	if got := round2(59.996); got != 60 {
		t.Errorf("round2(59.996) = %v", got)
	}
	if got := round2(1.234); got != 1.23 {
		t.Errorf("round2(1.234) = %v", got)
	}
}
