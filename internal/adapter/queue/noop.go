package queue

// NoopQueue drops every message. It keeps a single-register deployment
// working without a broker; subscribers simply never fire.
type NoopQueue struct{}

func NewNoopQueue() MessageQueue {
	return NoopQueue{}
}

func (NoopQueue) Publish(subject string, data []byte) error { return nil }

func (NoopQueue) Subscribe(subject string, handler func(data []byte) error) error { return nil }

func (NoopQueue) Close() error { return nil }
