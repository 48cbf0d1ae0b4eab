package payment

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/ports"
)

// BreakerProvider wraps a PaymentProvider with a circuit breaker so a
// flapping processor stops eating poll latency. An open breaker reports
// the payment as unpaid rather than failing the session.
type BreakerProvider struct {
	inner ports.PaymentProvider
	cb    *gobreaker.CircuitBreaker
	log   *zap.Logger
}

func NewBreakerProvider(inner ports.PaymentProvider, log *zap.Logger) ports.PaymentProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "payment-provider",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BreakerProvider{inner: inner, cb: cb, log: log}
}

func (p *BreakerProvider) CheckPayment(ctx context.Context, sessionID string, amount float64) (bool, error) {
	result, err := p.cb.Execute(func() (interface{}, error) {
		return p.inner.CheckPayment(ctx, sessionID, amount)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		p.log.Warn("payment check skipped, breaker open", zap.String("session_id", sessionID))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}
