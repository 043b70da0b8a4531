// Package calib picks the smallest power-of-two trampoline repeat count that
// makes a candidate's measured cost clear the noise floor, relative to a
// baseline (spec.md §4.3).
package calib

import (
	"fmt"

	"github.com/haldoris/instrbench/internal/obs"
	"github.com/haldoris/instrbench/trampoline"
)

// SignalThreshold is the minimum (candidate − baseline) cycle delta, at the
// current repeat count, that counts as a usable signal.
const SignalThreshold = 100

// MaxCount caps the repeat count so a snippet whose per-iteration cost is
// truly zero (dead-code-eliminated by the CPU front end) cannot calibrate
// forever (spec.md §9, open question: infinite calibration).
const MaxCount uint64 = 1 << 40

// ErrCalibrationCapped is returned when a candidate still fails to clear
// SignalThreshold once count has reached MaxCount.
var ErrCalibrationCapped = fmt.Errorf("calib: repeat count reached %d cap without clearing signal threshold", MaxCount)

// Region is the subset of region.Region the calibrator needs: a stable
// address to hand the trampoline. Declared locally so calib does not import
// region, keeping the dependency direction the same as the rest of the
// core (calib is a pure algorithm over addresses, not memory lifetime).
type Region interface {
	Addr() uintptr
}

// Calibrator owns the single, process-wide repeat count and the baseline
// region every candidate is calibrated against. It is not safe for
// concurrent use — spec.md §9 keeps this state owned exclusively by the
// Executor's single maintenance goroutine.
type Calibrator struct {
	invoke   trampoline.Invoker
	count    uint64
	baseline Region
	pending  []Region
}

// New constructs a Calibrator with count initialized to 1 and no baseline.
func New(invoke trampoline.Invoker) *Calibrator {
	return &Calibrator{invoke: invoke, count: 1}
}

// GetCount returns the current repeat count.
func (c *Calibrator) GetCount() uint64 {
	return c.count
}

// SetBaseline records the control-group region, then calibrates every
// region buffered by prior AddCase calls against it.
func (c *Calibrator) SetBaseline(baseline Region) error {
	c.baseline = baseline
	pending := c.pending
	c.pending = nil
	for _, r := range pending {
		if err := c.calibrate(r); err != nil {
			return err
		}
	}
	return nil
}

// AddCase registers a candidate region. If no baseline has been set yet, it
// is buffered for when SetBaseline arrives; otherwise it is calibrated
// immediately.
func (c *Calibrator) AddCase(r Region) error {
	if c.baseline == nil {
		c.pending = append(c.pending, r)
		return nil
	}
	return c.calibrate(r)
}

// calibrate doubles count until (candidate − baseline) ≥ SignalThreshold at
// that count, or the cap is hit. count never shrinks, and measurements
// taken for one candidate's calibration pass are discarded — only the fact
// that the threshold was cleared matters, not their value.
func (c *Calibrator) calibrate(r Region) error {
	for {
		b := c.invoke.Invoke(c.baseline.Addr(), c.count)
		raw := c.invoke.Invoke(r.Addr(), c.count)
		delta := raw - b
		if delta >= SignalThreshold {
			return nil
		}
		if c.count >= MaxCount {
			obs.L().Warn().Uint64("count", c.count).Msg("calibration capped without clearing signal threshold")
			return ErrCalibrationCapped
		}
		c.count *= 2
	}
}
