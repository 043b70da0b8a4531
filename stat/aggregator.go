package stat

import "github.com/haldoris/instrbench/internal/benchid"

// Sample is one (Id, per-iteration cycles) measurement emitted by the
// Executor for a single (candidate, round) pair.
type Sample struct {
	Id     benchid.Id
	Cycles float64
}

// Entry bundles the running Welford state and quantile sketch kept for one
// snippet.
type Entry struct {
	Stat   *Stat
	Digest *TDigest
}

// Aggregator owns per-Id Stat and TDigest state. It is meant for exclusive
// use by a single consumer goroutine draining the sample queue — the same
// single-threaded-statistics-owner topology the rest of the core follows.
type Aggregator struct {
	entries map[benchid.Id]*Entry
	order   []benchid.Id
}

// NewAggregator constructs an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{entries: make(map[benchid.Id]*Entry)}
}

// Ingest folds one sample into its Id's Stat and TDigest, creating both
// lazily on first sight of an Id. Stat is updated before TDigest, matching
// the per-sample ordering the rest of the core relies on — there is no
// observable dependency between the two, but the order is fixed so
// behavior is reproducible.
func (a *Aggregator) Ingest(s Sample) {
	e, ok := a.entries[s.Id]
	if !ok {
		e = &Entry{Stat: &Stat{}, Digest: NewTDigest(DefaultCompression)}
		a.entries[s.Id] = e
		a.order = append(a.order, s.Id)
	}
	e.Stat.Update(s.Cycles)
	e.Digest.Insert(s.Cycles)
}

// Ids returns every Id seen so far, in first-seen order.
func (a *Aggregator) Ids() []benchid.Id {
	return append([]benchid.Id(nil), a.order...)
}

// Entry returns the Stat/TDigest pair for id, if any sample has arrived
// for it yet.
func (a *Aggregator) Entry(id benchid.Id) (*Entry, bool) {
	e, ok := a.entries[id]
	return e, ok
}
