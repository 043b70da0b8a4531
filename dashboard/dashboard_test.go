package dashboard_test

import (
	"bytes"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/haldoris/instrbench/dashboard"
	"github.com/haldoris/instrbench/internal/benchid"
	"github.com/haldoris/instrbench/stat"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

var _ = Describe("Dashboard", func() {
	var (
		clk *fakeClock
		buf *bytes.Buffer
		d   *dashboard.Dashboard
		agg *stat.Aggregator
	)

	BeforeEach(func() {
		clk = &fakeClock{now: time.Unix(0, 0)}
		buf = &bytes.Buffer{}
		d = dashboard.New(buf, dashboard.WithClock(clk))
		agg = stat.NewAggregator()
		agg.Ingest(stat.Sample{Id: benchid.Id(1), Cycles: 42})
	})

	It("renders on the first call regardless of clock", func() {
		Expect(d.Render(agg)).To(BeTrue())
		Expect(buf.String()).To(ContainSubstring("statistics<1>"))
	})

	It("suppresses a render within the minimum interval", func() {
		Expect(d.Render(agg)).To(BeTrue())
		buf.Reset()

		clk.Advance(500 * time.Millisecond)
		Expect(d.Render(agg)).To(BeFalse())
		Expect(buf.String()).To(BeEmpty())
	})

	It("renders again once the interval has elapsed", func() {
		Expect(d.Render(agg)).To(BeTrue())
		clk.Advance(time.Second)
		Expect(d.Render(agg)).To(BeTrue())
	})

	It("reports undefined CI below the sample threshold", func() {
		d.Render(agg)
		Expect(buf.String()).To(ContainSubstring("confidence interval"))
		Expect(buf.String()).To(ContainSubstring("undefined"))
	})

	It("draws a histogram block for the first-seen Id", func() {
		for i := 0; i < 50; i++ {
			agg.Ingest(stat.Sample{Id: benchid.Id(1), Cycles: float64(i)})
		}
		d.Render(agg)
		Expect(buf.String()).To(ContainSubstring("histogram<1>"))
		Expect(strings.Count(buf.String(), "*")).To(BeNumerically(">", 0))
	})
})
