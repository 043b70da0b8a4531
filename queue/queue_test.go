package queue_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/haldoris/instrbench/queue"
)

var _ = Describe("Queue", func() {
	It("returns a pushed item unchanged (R1)", func() {
		q := queue.New[string]()
		q.Push("snippet-bytes")
		Expect(q.Pop()).To(Equal("snippet-bytes"))
	})

	It("preserves order across PushAll/PopAll (R2)", func() {
		q := queue.New[int]()
		q.PushAll([]int{1, 2, 3})
		Expect(q.PopAll()).To(Equal([]int{1, 2, 3}))
	})

	It("reports empty via TryPop without blocking", func() {
		q := queue.New[int]()
		_, ok := q.TryPop()
		Expect(ok).To(BeFalse())
	})

	It("returns nil from PopAll on an empty queue", func() {
		q := queue.New[int]()
		Expect(q.PopAll()).To(BeNil())
	})

	It("wakes a blocked Pop when an item is pushed", func() {
		q := queue.New[int]()
		done := make(chan int, 1)
		go func() {
			done <- q.Pop()
		}()

		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())

		q.Push(42)
		Eventually(done, time.Second).Should(Receive(Equal(42)))
	})

	It("drains concurrently pushed items with no loss", func() {
		q := queue.New[int]()
		const n = 200
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(v int) {
				defer wg.Done()
				q.Push(v)
			}(i)
		}
		wg.Wait()

		Eventually(func() int { return q.Len() }).Should(Equal(n))
		Expect(q.PopAll()).To(HaveLen(n))
	})
})
