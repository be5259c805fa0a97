package events

import (
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("buffer", func() {
	It("adds successfully", func() {
		buffer := newBuffer()

		Expect(buffer.PushBack(&message{Kind: AuditMessageKind, Data: []byte("msg1")})).To(Equal(1))
		Expect(buffer.head).NotTo(BeNil())
		Expect(buffer.head).To(Equal(buffer.tail))

		Expect(buffer.PushBack(&message{Kind: AuditMessageKind, Data: []byte("msg2")})).To(Equal(2))
		Expect(buffer.PushBack(&message{Kind: AuditMessageKind, Data: []byte("msg3")})).To(Equal(3))

		Expect(buffer.Size()).To(Equal(3))
		Expect(buffer.head.Data).To(Equal([]byte("msg1")))
		Expect(buffer.tail.Data).To(Equal([]byte("msg3")))
	})

	It("pops in insertion order", func() {
		buffer := newBuffer()
		for i := 1; i <= 3; i++ {
			buffer.PushBack(&message{Kind: NotificationMessageKind, Data: []byte(fmt.Sprintf("msg%d", i))})
		}

		for i := 1; i <= 3; i++ {
			m := buffer.Pop()
			Expect(m).NotTo(BeNil())
			Expect(m.Data).To(Equal([]byte(fmt.Sprintf("msg%d", i))))
			Expect(buffer.Size()).To(Equal(3 - i))
		}

		Expect(buffer.head).To(BeNil())
		Expect(buffer.tail).To(BeNil())
		Expect(buffer.Pop()).To(BeNil())
	})

	It("accepts concurrent writers", func() {
		buffer := newBuffer()
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					buffer.PushBack(&message{Kind: AuditMessageKind})
				}
			}()
		}
		wg.Wait()
		Expect(buffer.Size()).To(Equal(1000))
	})
})
