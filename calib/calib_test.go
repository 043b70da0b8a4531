package calib_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/haldoris/instrbench/calib"
)

// costInvoker is a trampoline.Invoker keyed by region address, so a test can
// give the baseline and each candidate an independent, deterministic
// per-call cost without any real memory or assembly.
type costInvoker struct {
	perCall map[uintptr]int64
}

func (c costInvoker) Invoke(addr uintptr, repeat uint64) int64 {
	return c.perCall[addr] * int64(repeat)
}

type fakeRegion uintptr

func (r fakeRegion) Addr() uintptr { return uintptr(r) }

var _ = Describe("Calibrator", func() {
	const (
		baselineAddr fakeRegion = 0x1000
		candidateA   fakeRegion = 0x2000
		candidateB   fakeRegion = 0x3000
	)

	It("buffers candidates added before a baseline exists", func() {
		inv := costInvoker{perCall: map[uintptr]int64{
			uintptr(baselineAddr): 5,
			uintptr(candidateA):   6,
		}}
		c := calib.New(inv)

		Expect(c.AddCase(candidateA)).To(Succeed())
		Expect(c.GetCount()).To(Equal(uint64(1)), "nothing calibrates until a baseline exists")

		Expect(c.SetBaseline(baselineAddr)).To(Succeed())
		Expect(c.GetCount()).To(BeNumerically(">=", 100))
	})

	It("doubles count until the delta clears the signal threshold", func() {
		inv := costInvoker{perCall: map[uintptr]int64{
			uintptr(baselineAddr): 5,
			uintptr(candidateA):   6, // delta = 1 * count
		}}
		c := calib.New(inv)
		Expect(c.SetBaseline(baselineAddr)).To(Succeed())

		Expect(c.AddCase(candidateA)).To(Succeed())

		Expect(c.GetCount()).To(Equal(uint64(128)), "first power of two with delta >= 100")
	})

	It("never shrinks count once grown", func() {
		inv := costInvoker{perCall: map[uintptr]int64{
			uintptr(baselineAddr): 5,
			uintptr(candidateA):   6,  // needs count=128 to clear threshold
			uintptr(candidateB):   55, // clears threshold at count=2, well below the grown count
		}}
		c := calib.New(inv)
		Expect(c.SetBaseline(baselineAddr)).To(Succeed())
		Expect(c.AddCase(candidateA)).To(Succeed())
		grown := c.GetCount()
		Expect(grown).To(BeNumerically(">", 1))

		Expect(c.AddCase(candidateB)).To(Succeed())
		Expect(c.GetCount()).To(Equal(grown), "count must be monotonically non-decreasing")
	})

	It("caps calibration and reports an error for a truly zero-cost candidate", func() {
		inv := costInvoker{perCall: map[uintptr]int64{
			uintptr(baselineAddr): 5,
			uintptr(candidateA):   5, // delta is always 0
		}}
		c := calib.New(inv)
		Expect(c.SetBaseline(baselineAddr)).To(Succeed())

		err := c.AddCase(candidateA)
		Expect(err).To(MatchError(calib.ErrCalibrationCapped))
		Expect(c.GetCount()).To(Equal(calib.MaxCount))
	})
})
