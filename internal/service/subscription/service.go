package subscription

import (
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
)

// Service is the process-wide subscription gate: active plan, feature
// flags, and the rolling monthly transaction counter. Check and increment
// share one mutex so callers that hold the commit path see a consistent
// quota even under concurrent terminals.
type Service struct {
	mu   sync.RWMutex
	plan domain.SubscriptionPlan
	used int
	log  *zap.Logger
}

func NewService(initial domain.SubscriptionPlan, log *zap.Logger) ports.SubscriptionService {
	if initial == "" {
		initial = domain.PlanFree
	}
	return &Service{plan: initial, log: log}
}

func (s *Service) CurrentPlan() domain.SubscriptionPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan
}

// SetPlan switches plans immediately. Downgrades take effect with no grace
// period; the next CanTransact call already sees the new limit.
func (s *Service) SetPlan(plan domain.SubscriptionPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = plan
	s.log.Info("subscription plan changed", zap.String("plan", string(plan)))
}

func (s *Service) Features() domain.PlanFeatures {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FeaturesFor(s.plan)
}

func (s *Service) HasFeature(flag domain.FeatureFlag) bool {
	return s.Features().Enabled(flag)
}

// CanTransact reports whether the plan still has quota this month.
// Unlimited plans always pass.
func (s *Service) CanTransact() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	limit := domain.FeaturesFor(s.plan).TransactionLimit
	if limit == nil {
		return true
	}
	return s.used < *limit
}

// Remaining returns limit - used floored at zero, or nil when unlimited.
func (s *Service) Remaining() *int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	limit := domain.FeaturesFor(s.plan).TransactionLimit
	if limit == nil {
		return nil
	}
	left := *limit - s.used
	if left < 0 {
		left = 0
	}
	return &left
}

func (s *Service) UsedThisMonth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}

// RecordUsage advances the monthly counter. It is the only mutator and is
// invoked exactly once per committed transaction, never per attempt.
func (s *Service) RecordUsage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used++
}

// ResetMonthlyCount is the external monthly-rollover trigger.
func (s *Service) ResetMonthlyCount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used = 0
	s.log.Info("monthly transaction counter reset")
}
