// Package exec implements the Executor: it drains the producer's input
// queues, maintains the registry of live executable regions, and runs
// randomized measurement rounds against the calibrated repeat count
// (spec.md §4.4).
package exec

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"github.com/haldoris/instrbench/calib"
	"github.com/haldoris/instrbench/internal/benchid"
	"github.com/haldoris/instrbench/internal/obs"
	"github.com/haldoris/instrbench/queue"
	"github.com/haldoris/instrbench/region"
	"github.com/haldoris/instrbench/stat"
	"github.com/haldoris/instrbench/trampoline"
)

const (
	// gateSleep is how long RunOnce waits before retrying when no
	// control-group baseline has been registered yet.
	gateSleep = 100 * time.Millisecond

	// roundsPerCycle amortizes the per-cycle shuffle cost across several
	// randomized measurement passes.
	roundsPerCycle = 4

	// warmupCalls is how many times each measurement invokes the
	// trampoline before keeping a result.
	warmupCalls = 3
)

// Executor owns the registry of live ExecutableRegions and the single,
// process-wide RepeatCountCalibrator. It is meant to run on exactly one
// goroutine — spec.md §5 keeps all Executor state thread-local to its
// owning worker, with the three queues as the only shared state.
type Executor struct {
	invoke trampoline.Invoker
	calib  *calib.Calibrator

	machineCode *queue.Queue[benchid.Snippet]
	cancels     *queue.Queue[benchid.Id]
	samples     *queue.Queue[stat.Sample]

	registry map[benchid.Id]*region.Region
	rng      *rand.Rand
}

// New constructs an Executor. machineCode and cancels are drained by the
// maintenance phase; samples receives bulk-pushed measurement batches.
func New(invoke trampoline.Invoker, machineCode *queue.Queue[benchid.Snippet], cancels *queue.Queue[benchid.Id], samples *queue.Queue[stat.Sample]) *Executor {
	return &Executor{
		invoke:      invoke,
		calib:       calib.New(invoke),
		machineCode: machineCode,
		cancels:     cancels,
		samples:     samples,
		registry:    make(map[benchid.Id]*region.Region),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run drives the maintenance loop until ctx is canceled.
func (e *Executor) Run(ctx context.Context) {
	for ctx.Err() == nil {
		e.RunOnce(ctx)
	}
}

// RunOnce performs exactly one maintenance pass — draining both input
// queues into the registry and the calibrator — then, if a control-group
// baseline is registered, samples that baseline once, runs roundsPerCycle
// measurement rounds against it, and bulk-pushes the resulting samples in
// one operation.
func (e *Executor) RunOnce(ctx context.Context) {
	e.maintain()

	if _, ok := e.registry[benchid.Control]; !ok {
		select {
		case <-ctx.Done():
		case <-time.After(gateSleep):
		}
		return
	}

	count := e.calib.GetCount()
	baseline := e.warmupInvoke(e.registry[benchid.Control].Addr(), count)

	batch := make([]stat.Sample, 0, roundsPerCycle*len(e.registry))
	for round := 0; round < roundsPerCycle; round++ {
		batch = append(batch, e.measureRound(count, baseline)...)
	}
	e.samples.PushAll(batch)
}

// maintain drains machineCode into the registry (constructing a Region and
// feeding the calibrator per new/replaced snippet) and drains cancels,
// unmapping and removing the corresponding registry entries.
func (e *Executor) maintain() {
	for _, snip := range e.machineCode.PopAll() {
		if existing, ok := e.registry[snip.Id]; ok {
			_ = existing.Close()
		}

		r := region.New(snip.Bytes)
		e.registry[snip.Id] = r

		var err error
		if snip.IsControl() {
			err = e.calib.SetBaseline(r)
		} else {
			err = e.calib.AddCase(r)
		}
		if err != nil {
			obs.L().Warn().Uint64("id", uint64(snip.Id)).Err(err).Msg("snippet failed to calibrate")
		}
	}

	for _, id := range e.cancels.PopAll() {
		if r, ok := e.registry[id]; ok {
			_ = r.Close()
			delete(e.registry, id)
		}
	}
}

// measureRound shuffles the current candidates and measures each one
// against baseline, deriving per-iteration cycles. Every round of a
// maintenance cycle is handed the same baseline sample.
func (e *Executor) measureRound(count uint64, baseline int64) []stat.Sample {
	candidates := make([]benchid.Id, 0, len(e.registry))
	for id := range e.registry {
		if id == benchid.Control {
			continue
		}
		candidates = append(candidates, id)
	}
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	samples := make([]stat.Sample, 0, len(candidates))
	for _, id := range candidates {
		r, ok := e.registry[id]
		if !ok {
			continue // canceled between the shuffle and this measurement
		}
		raw := e.warmupInvoke(r.Addr(), count)
		cycles := float64(raw-baseline) / float64(count)
		samples = append(samples, stat.Sample{Id: id, Cycles: cycles})
	}
	return samples
}

// warmupInvoke calls the trampoline warmupCalls times and keeps only the
// last result, yielding the scheduler between the second and third call to
// bleed off any scheduling pressure accumulated by the first two.
func (e *Executor) warmupInvoke(addr uintptr, count uint64) int64 {
	var result int64
	for i := 0; i < warmupCalls; i++ {
		result = e.invoke.Invoke(addr, count)
		if i == warmupCalls-2 {
			runtime.Gosched()
		}
	}
	return result
}

// Close unmaps every region still held by the registry. Call once on
// shutdown.
func (e *Executor) Close() {
	for _, r := range e.registry {
		_ = r.Close()
	}
}
