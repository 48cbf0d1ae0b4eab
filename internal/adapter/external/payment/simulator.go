package payment

import (
	"context"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/ports"
)

// Simulator stands in for the QRIS processor in development and demos.
// Each poll reports paid with the configured probability; a probability of
// 1 makes every check succeed immediately.
type Simulator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	probability float64
	log         *zap.Logger
}

func NewSimulator(probability float64, seed int64, log *zap.Logger) ports.PaymentProvider {
	if probability < 0 || probability > 1 {
		probability = 1
	}
	return &Simulator{
		rng:         rand.New(rand.NewSource(seed)),
		probability: probability,
		log:         log,
	}
}

func (s *Simulator) CheckPayment(ctx context.Context, sessionID string, amount float64) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	s.mu.Lock()
	paid := s.rng.Float64() < s.probability
	s.mu.Unlock()

	s.log.Debug("simulated payment check",
		zap.String("session_id", sessionID),
		zap.Float64("amount", amount),
		zap.Bool("paid", paid),
	)
	return paid, nil
}
