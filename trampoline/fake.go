package trampoline

import "sync/atomic"

// Fake is a deterministic, portable stand-in for Native. Higher-level
// packages (calib, exec) depend on the Invoker interface rather than Native
// directly so their tests can run on any host and any architecture.
//
// Fake models per-call cost as Base cycles plus PerCall cycles, so that a
// repeat count of n reports Base + n*PerCall — enough structure for
// calibration and measurement-loop tests to exercise growth and noise
// handling without real hardware.
type Fake struct {
	Base    int64
	PerCall int64

	// Noise, when non-nil, is added to each Invoke result and is the
	// caller's responsibility to vary between calls (e.g. a closure over
	// a seeded rand.Rand) so tests can script specific sequences of
	// measurement noise.
	Noise func() int64

	calls atomic.Int64
}

// Invoke implements Invoker without touching memory, mmap, or assembly.
func (f *Fake) Invoke(codeAddr uintptr, repeat uint64) int64 {
	f.calls.Add(1)
	result := f.Base + int64(repeat)*f.PerCall
	if f.Noise != nil {
		result += f.Noise()
	}
	return result
}

// Calls reports how many times Invoke has been called, for tests asserting
// on warm-up and measurement-round call counts.
func (f *Fake) Calls() int64 {
	return f.calls.Load()
}
