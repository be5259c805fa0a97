package events

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("producer", func() {
	Context("write", func() {
		It("writes successfully", func() {
			w := newTestWriter()
			kp := NewEventProducer(w, WithOutputTopic("jobs"))

			err := kp.Write(context.TODO(), NotificationMessageKind, bytes.NewReader([]byte(`{"a":1}`)))
			Expect(err).To(BeNil())
			err = kp.Write(context.TODO(), AuditMessageKind, bytes.NewReader([]byte(`{"b":2}`)))
			Expect(err).To(BeNil())

			Eventually(w.Events).Should(HaveLen(2))
			events := w.Events()
			Expect(events[0].Type()).To(Equal(NotificationMessageKind))
			Expect(events[1].Type()).To(Equal(AuditMessageKind))
			Expect(events[0].Source()).To(Equal(defaultSource))
			Expect(w.Topic()).To(Equal("jobs"))

			Expect(kp.Close()).To(BeNil())
			Expect(w.Closed()).To(BeTrue())
		})

		It("closes twice without blocking", func() {
			kp := NewEventProducer(newTestWriter())
			Expect(kp.Close()).To(BeNil())
			Expect(kp.Close()).To(BeNil())
		})
	})

	Context("sinks", func() {
		It("publishes notifications and audit records", func() {
			w := newTestWriter()
			kp := NewEventProducer(w)
			defer kp.Close()

			NewNotificationSink(kp).Notify(context.TODO(), "requester-1", "New request", "provider-1 wants your job")
			NewAuditSink(kp).Record(context.TODO(), "provider-1", "accept_public_job", "success", "job 42")

			Eventually(w.Events).Should(HaveLen(2))
			events := w.Events()

			notification := NotificationEvent{}
			Expect(json.Unmarshal(events[0].Data(), &notification)).To(Succeed())
			Expect(notification.UserID).To(Equal("requester-1"))
			Expect(notification.Title).To(Equal("New request"))

			audit := AuditEvent{}
			Expect(json.Unmarshal(events[1].Data(), &audit)).To(Succeed())
			Expect(audit.ActorID).To(Equal("provider-1"))
			Expect(audit.Action).To(Equal("accept_public_job"))
			Expect(audit.Status).To(Equal("success"))
		})
	})
})

type testwriter struct {
	mu       sync.Mutex
	messages []cloudevents.Event
	topic    string
	closed   bool
}

func newTestWriter() *testwriter {
	return &testwriter{messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.topic = topic
	t.messages = append(t.messages, e)
	return nil
}

func (t *testwriter) Close(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *testwriter) Events() []cloudevents.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]cloudevents.Event(nil), t.messages...)
}

func (t *testwriter) Topic() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.topic
}

func (t *testwriter) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
