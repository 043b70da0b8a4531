package stat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/haldoris/instrbench/internal/benchid"
	"github.com/haldoris/instrbench/stat"
)

var _ = Describe("Aggregator", func() {
	It("lazily creates Stat/TDigest state per Id", func() {
		agg := stat.NewAggregator()
		_, ok := agg.Entry(benchid.Id(7))
		Expect(ok).To(BeFalse())

		agg.Ingest(stat.Sample{Id: benchid.Id(7), Cycles: 12})
		e, ok := agg.Entry(benchid.Id(7))
		Expect(ok).To(BeTrue())
		Expect(e.Stat.N()).To(Equal(uint64(1)))
		Expect(e.Stat.Mean()).To(Equal(12.0))
	})

	It("keeps each Id's statistics independent", func() {
		agg := stat.NewAggregator()
		for i := 0; i < 5; i++ {
			agg.Ingest(stat.Sample{Id: benchid.Id(1), Cycles: 10})
			agg.Ingest(stat.Sample{Id: benchid.Id(2), Cycles: 1000})
		}

		e1, _ := agg.Entry(benchid.Id(1))
		e2, _ := agg.Entry(benchid.Id(2))
		Expect(e1.Stat.Mean()).To(Equal(10.0))
		Expect(e2.Stat.Mean()).To(Equal(1000.0))
	})

	It("tracks Ids in first-seen order", func() {
		agg := stat.NewAggregator()
		agg.Ingest(stat.Sample{Id: benchid.Id(3), Cycles: 1})
		agg.Ingest(stat.Sample{Id: benchid.Id(1), Cycles: 1})
		agg.Ingest(stat.Sample{Id: benchid.Id(3), Cycles: 1})

		Expect(agg.Ids()).To(Equal([]benchid.Id{3, 1}))
	})
})
