// Package dashboard renders the periodic ASCII view of the statistics
// aggregator: a mean + confidence-interval line per snippet, and one
// log-scaled CDF histogram for an arbitrary snippet (spec.md §4.6).
package dashboard

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/haldoris/instrbench/internal/benchid"
	"github.com/haldoris/instrbench/stat"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	clearScreen = "\033[2J\033[H"

	histogramPoints = 200
	histogramRows   = 40
)

// Clock abstracts time.Now so render cadence can be driven deterministically
// in tests. Using a clock rather than wall-clock-second truncation avoids
// clock-skew-driven double renders (spec.md §9).
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Dashboard renders an Aggregator snapshot to out, at most once per
// minInterval.
type Dashboard struct {
	out         io.Writer
	clock       Clock
	minInterval time.Duration
	last        time.Time
	rendered    bool
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithClock overrides the clock used for render-cadence gating.
func WithClock(c Clock) Option {
	return func(d *Dashboard) { d.clock = c }
}

// WithMinInterval overrides the minimum time between renders (default 1s).
func WithMinInterval(interval time.Duration) Option {
	return func(d *Dashboard) { d.minInterval = interval }
}

// New constructs a Dashboard writing to out.
func New(out io.Writer, opts ...Option) *Dashboard {
	d := &Dashboard{out: out, clock: realClock{}, minInterval: time.Second}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Render emits the current dashboard if at least minInterval has elapsed
// since the previous render, or none has happened yet. Returns whether it
// actually rendered.
func (d *Dashboard) Render(agg *stat.Aggregator) bool {
	now := d.clock.Now()
	if d.rendered && now.Sub(d.last) < d.minInterval {
		return false
	}
	d.last = now
	d.rendered = true

	fmt.Fprint(d.out, clearScreen)
	fmt.Fprintln(d.out, "=======STAT========")

	ids := agg.Ids()
	for _, id := range ids {
		e, _ := agg.Entry(id)
		ci := e.Stat.ConfidenceInterval()
		ciStr := "undefined"
		if !ci.Undefined() {
			ciStr = fmt.Sprintf("[%.2f, %.2f]", ci.Lower, ci.Upper)
		}
		fmt.Fprintf(d.out, "statistics<%d>:\n", uint64(id))
		fmt.Fprintf(d.out, " - average cpu cycle: %s%.2f%s\n", colorRed, e.Stat.Mean(), colorReset)
		fmt.Fprintf(d.out, " - confidence interval: %s%s%s\n", colorYellow, ciStr, colorReset)
	}

	if len(ids) > 0 {
		d.renderHistogram(agg, ids[0])
	}

	fmt.Fprintln(d.out)
	return true
}

// renderHistogram samples id's CDF at histogramPoints points across
// [min, max], log10-compresses the ratio, and rescales to histogramRows
// text rows.
func (d *Dashboard) renderHistogram(agg *stat.Aggregator, id benchid.Id) {
	e, ok := agg.Entry(id)
	if !ok || e.Stat.N() == 0 {
		return
	}

	lo, hi := e.Stat.Min(), e.Stat.Max()
	if hi <= lo {
		hi = lo + 1
	}

	samples := make([]float64, histogramPoints)
	for i := range samples {
		x := lo + (hi-lo)*float64(i)/float64(histogramPoints-1)
		ratio := e.Digest.CDF(x)
		samples[i] = math.Log10(ratio + 1e-9)
	}

	minV, maxV := samples[0], samples[0]
	for _, v := range samples {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	span := maxV - minV
	if span == 0 {
		span = 1
	}

	rowOf := make([]int, histogramPoints)
	for i, v := range samples {
		rowOf[i] = int(math.Round((v - minV) / span * float64(histogramRows-1)))
	}

	fmt.Fprintf(d.out, "histogram<%d>:\n", uint64(id))
	line := make([]byte, histogramPoints)
	for row := histogramRows - 1; row >= 0; row-- {
		for i, r := range rowOf {
			if r >= row {
				line[i] = '*'
			} else {
				line[i] = ' '
			}
		}
		fmt.Fprintln(d.out, string(line))
	}
}
