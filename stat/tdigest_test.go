package stat_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/haldoris/instrbench/stat"
)

var _ = Describe("TDigest", func() {
	It("estimates the median of a uniform sample", func() {
		td := stat.NewTDigest(stat.DefaultCompression)
		r := rand.New(rand.NewSource(1))
		for i := 0; i < 10000; i++ {
			td.Insert(r.Float64() * 100)
		}

		Expect(td.Quantile(0.5)).To(BeNumerically("~", 50, 5))
	})

	It("keeps quantile non-decreasing across q (I6)", func() {
		td := stat.NewTDigest(stat.DefaultCompression)
		r := rand.New(rand.NewSource(2))
		for i := 0; i < 5000; i++ {
			td.Insert(r.NormFloat64()*10 + 500)
		}

		prev := td.Quantile(0.0)
		for q := 0.01; q <= 1.0; q += 0.01 {
			cur := td.Quantile(q)
			Expect(cur).To(BeNumerically(">=", prev))
			prev = cur
		}
	})

	It("bounds the number of centroids roughly to the compression factor", func() {
		td := stat.NewTDigest(100)
		r := rand.New(rand.NewSource(3))
		for i := 0; i < 200000; i++ {
			td.Insert(r.Float64() * 1000)
		}

		Expect(td.NumCentroids()).To(BeNumerically("<", 2000))
	})

	It("reports a CDF consistent with an inserted value's rank", func() {
		td := stat.NewTDigest(stat.DefaultCompression)
		for i := 1; i <= 100; i++ {
			td.Insert(float64(i))
		}

		Expect(td.CDF(1)).To(BeNumerically("<", 0.1))
		Expect(td.CDF(100)).To(BeNumerically("~", 0.99, 1e-9))
	})
})
