package stat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/haldoris/instrbench/stat"
)

var _ = Describe("Stat", func() {
	It("matches the reference mean and variance for 1..10", func() {
		var s stat.Stat
		for _, v := range []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10} {
			s.Update(v)
		}

		Expect(s.Mean()).To(BeNumerically("~", 5.5, 1e-9))
		Expect(s.Variance()).To(BeNumerically("~", 9.166666666, 1e-6))
	})

	It("leaves the confidence interval undefined for n<=30", func() {
		var s stat.Stat
		for i := 0; i < 30; i++ {
			s.Update(float64(i))
		}
		Expect(s.ConfidenceInterval().Undefined()).To(BeTrue())
	})

	It("produces a finite confidence interval once n>30", func() {
		var s stat.Stat
		for i := 0; i < 1000; i++ {
			s.Update(100 + float64(i%5))
		}
		ci := s.ConfidenceInterval()
		Expect(ci.Undefined()).To(BeFalse())
		Expect(ci.Lower).To(BeNumerically("<", s.Mean()))
		Expect(ci.Upper).To(BeNumerically(">", s.Mean()))
	})

	It("tracks running min and max", func() {
		var s stat.Stat
		for _, v := range []float64{5, -3, 10, 2} {
			s.Update(v)
		}
		Expect(s.Min()).To(Equal(-3.0))
		Expect(s.Max()).To(Equal(10.0))
	})
})
