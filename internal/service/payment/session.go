package payment

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/observability/telemetry"
	"github.com/seu-repo/quickpos/internal/ports"
)

// Config tunes the session timings. Production values model the original
// flow: a 5-minute QR expiry, 2 seconds of simulated provider latency and
// a 1-second countdown tick. Tests shrink all three.
type Config struct {
	Expiry      time.Duration
	PollLatency time.Duration
	Tick        time.Duration
}

func (c Config) withDefaults() Config {
	if c.Expiry <= 0 {
		c.Expiry = 300 * time.Second
	}
	if c.PollLatency <= 0 {
		c.PollLatency = 2 * time.Second
	}
	if c.Tick <= 0 {
		c.Tick = time.Second
	}
	return c
}

// Manager drives one QRIS payment session at a time through
// Idle -> Pending -> {Confirming -> Confirmed} | Expired | Cancelled.
//
// Every timer callback carries the generation it was armed for; Start and
// Cancel bump the generation, so a late callback from a superseded session
// can never mutate the current one.
type Manager struct {
	mu  sync.Mutex
	cfg Config

	provider ports.PaymentProvider
	clock    ports.Clock
	ids      ports.IDGenerator
	log      *zap.Logger

	session      *domain.PaymentSession
	gen          uint64
	expiryTimer  *time.Timer
	tickStop     chan struct{}
	confirmFired bool

	onState     []func(domain.PaymentSession)
	onConfirmed func(domain.PaymentSession)
}

func NewManager(cfg Config, provider ports.PaymentProvider, clock ports.Clock, ids ports.IDGenerator, log *zap.Logger) *Manager {
	return &Manager{
		cfg:      cfg.withDefaults(),
		provider: provider,
		clock:    clock,
		ids:      ids,
		log:      log,
	}
}

// OnState registers an observer for every state change, including the
// autonomous Pending -> Expired transition the UI must react to.
func (m *Manager) OnState(fn func(session domain.PaymentSession)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onState = append(m.onState, fn)
}

// OnConfirmed registers the downstream commit hook. It fires exactly once
// per session no matter how often the session is polled.
func (m *Manager) OnConfirmed(fn func(session domain.PaymentSession)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onConfirmed = fn
}

// Start opens a fresh Pending session, superseding and silencing any
// previous one.
func (m *Manager) Start(ctx context.Context, amount float64) (*domain.PaymentSession, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	m.mu.Lock()
	m.invalidateLocked()

	now := m.clock.Now()
	id := m.ids.NewID()
	m.session = &domain.PaymentSession{
		ID:        id,
		Amount:    amount,
		Code:      BuildPayload(amount, id),
		State:     domain.SessionStatePending,
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.Expiry),
	}
	m.confirmFired = false

	gen := m.gen
	m.expiryTimer = time.AfterFunc(m.cfg.Expiry, func() { m.expire(gen) })
	m.tickStop = make(chan struct{})
	go m.tickLoop(gen, m.tickStop)

	telemetry.ActivePaymentSessions.Set(1)
	snap := *m.session
	notify := m.notifiersLocked()
	m.mu.Unlock()

	m.log.Info("payment session started",
		zap.String("session_id", snap.ID),
		zap.Float64("amount", snap.Amount),
	)
	emit(notify, snap)
	return &snap, nil
}

// CheckStatus polls the external processor. The transition to Confirming
// is synchronous; the provider round-trip finishes on a timer so no lock
// is held while "on the wire". Polling a Confirming or Confirmed session
// is idempotent.
func (m *Manager) CheckStatus(ctx context.Context) (*domain.PaymentSession, error) {
	m.mu.Lock()
	s := m.session
	if s == nil {
		m.mu.Unlock()
		return nil, domain.ErrInvalidTransition
	}

	switch s.State {
	case domain.SessionStateExpired:
		m.mu.Unlock()
		return nil, domain.ErrSessionExpired
	case domain.SessionStateCancelled:
		m.mu.Unlock()
		return nil, domain.ErrInvalidTransition
	case domain.SessionStateConfirmed, domain.SessionStateConfirming:
		snap := *s
		m.mu.Unlock()
		return &snap, nil
	}

	// Pending -> Confirming
	s.State = domain.SessionStateConfirming
	gen := m.gen
	snap := *s
	notify := m.notifiersLocked()
	m.mu.Unlock()

	emit(notify, snap)
	time.AfterFunc(m.cfg.PollLatency, func() { m.finishPoll(gen, snap.ID, snap.Amount) })

	return &snap, nil
}

func (m *Manager) finishPoll(gen uint64, sessionID string, amount float64) {
	start := time.Now()
	paid, err := m.provider.CheckPayment(context.Background(), sessionID, amount)
	telemetry.ProviderPollLatency.Observe(time.Since(start).Seconds())

	m.mu.Lock()
	if gen != m.gen || m.session == nil || m.session.State != domain.SessionStateConfirming {
		m.mu.Unlock()
		return
	}

	if err != nil || !paid {
		if err != nil {
			m.log.Warn("provider poll failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		// Back to Pending so the cashier can poll again, unless the QR
		// ran out while we were waiting.
		if m.clock.Now().Before(m.session.ExpiresAt) {
			m.session.State = domain.SessionStatePending
		} else {
			m.expireLocked()
		}
		snap := *m.session
		notify := m.notifiersLocked()
		m.mu.Unlock()
		emit(notify, snap)
		return
	}

	m.confirmLockedAndEmit()
}

// ForceConfirm is the webhook stand-in: Pending (or Confirming) straight
// to Confirmed. Confirming twice is a no-op.
func (m *Manager) ForceConfirm(ctx context.Context) (*domain.PaymentSession, error) {
	m.mu.Lock()
	s := m.session
	if s == nil {
		m.mu.Unlock()
		return nil, domain.ErrInvalidTransition
	}

	switch s.State {
	case domain.SessionStateExpired:
		m.mu.Unlock()
		return nil, domain.ErrSessionExpired
	case domain.SessionStateCancelled:
		m.mu.Unlock()
		return nil, domain.ErrInvalidTransition
	case domain.SessionStateConfirmed:
		snap := *s
		m.mu.Unlock()
		return &snap, nil
	}

	snap := m.confirmLockedAndEmit()
	return &snap, nil
}

// Cancel abandons a non-terminal session. It never partially commits and
// leaves cart and shift untouched.
func (m *Manager) Cancel(ctx context.Context) error {
	m.mu.Lock()
	s := m.session
	if s == nil || s.State.Terminal() {
		m.mu.Unlock()
		return domain.ErrInvalidTransition
	}

	m.invalidateLocked()
	s.State = domain.SessionStateCancelled
	telemetry.ActivePaymentSessions.Set(0)
	telemetry.PaymentSessionOutcomes.WithLabelValues("cancelled").Inc()
	snap := *s
	notify := m.notifiersLocked()
	m.mu.Unlock()

	m.log.Info("payment session cancelled", zap.String("session_id", snap.ID))
	emit(notify, snap)
	return nil
}

// Current returns a copy of the session, or nil before the first Start.
func (m *Manager) Current() *domain.PaymentSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	snap := *m.session
	return &snap
}

func (m *Manager) SecondsRemaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return 0
	}
	return m.session.SecondsRemaining(m.clock.Now())
}

// confirmLockedAndEmit seals the session as Confirmed and fires the
// downstream hook exactly once. The caller must hold the lock; it is
// released on return.
func (m *Manager) confirmLockedAndEmit() domain.PaymentSession {
	m.invalidateLocked()
	m.session.State = domain.SessionStateConfirmed
	telemetry.ActivePaymentSessions.Set(0)
	telemetry.PaymentSessionOutcomes.WithLabelValues("confirmed").Inc()

	snap := *m.session
	notify := m.notifiersLocked()
	var confirmed func(domain.PaymentSession)
	if !m.confirmFired && m.onConfirmed != nil {
		m.confirmFired = true
		confirmed = m.onConfirmed
	}
	m.mu.Unlock()

	m.log.Info("payment confirmed", zap.String("session_id", snap.ID))
	emit(notify, snap)
	if confirmed != nil {
		confirmed(snap)
	}
	return snap
}

func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.session == nil || m.session.State != domain.SessionStatePending {
		// Confirming sessions are left to the in-flight poll.
		m.mu.Unlock()
		return
	}
	m.expireLocked()
	snap := *m.session
	notify := m.notifiersLocked()
	m.mu.Unlock()

	m.log.Info("payment session expired", zap.String("session_id", snap.ID))
	emit(notify, snap)
}

func (m *Manager) expireLocked() {
	m.invalidateLocked()
	m.session.State = domain.SessionStateExpired
	telemetry.ActivePaymentSessions.Set(0)
	telemetry.PaymentSessionOutcomes.WithLabelValues("expired").Inc()
}

// invalidateLocked bumps the generation and stops any armed timers so
// stale callbacks become no-ops.
func (m *Manager) invalidateLocked() {
	m.gen++
	if m.expiryTimer != nil {
		m.expiryTimer.Stop()
		m.expiryTimer = nil
	}
	if m.tickStop != nil {
		close(m.tickStop)
		m.tickStop = nil
	}
}

// tickLoop emits a state notification once per tick while the session is
// Pending so the UI countdown stays live.
func (m *Manager) tickLoop(gen uint64, stop chan struct{}) {
	ticker := time.NewTicker(m.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			if gen != m.gen || m.session == nil || m.session.State != domain.SessionStatePending {
				m.mu.Unlock()
				return
			}
			snap := *m.session
			notify := m.notifiersLocked()
			m.mu.Unlock()
			emit(notify, snap)
		}
	}
}

func (m *Manager) notifiersLocked() []func(domain.PaymentSession) {
	out := make([]func(domain.PaymentSession), len(m.onState))
	copy(out, m.onState)
	return out
}

func emit(fns []func(domain.PaymentSession), snap domain.PaymentSession) {
	for _, fn := range fns {
		fn(snap)
	}
}
