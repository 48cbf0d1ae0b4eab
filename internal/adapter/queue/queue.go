package queue

// MessageQueue carries the store's domain events (shift.opened,
// shift.closed, transaction.recorded) to interested workers such as the
// report mailer and the websocket hub.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}
